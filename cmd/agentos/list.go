package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/jingkaihe/agentos/pkg/importer"
	"github.com/jingkaihe/agentos/pkg/picker"
	"github.com/jingkaihe/agentos/pkg/skills"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the skills available for import",
		Long: `List the skills in the source directory in the order they are numbered
in the selection menu. Skills that already exist in the destination are
marked as installed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return listSkills(cmd, v)
		},
	}
}

func listSkills(cmd *cobra.Command, v *viper.Viper) error {
	discovery, err := skills.NewDiscovery(skills.WithSourceDir(v.GetString("skills.source")))
	if err != nil {
		return err
	}

	registry, err := discovery.Discover(cmd.Context())
	if err != nil {
		return err
	}

	dest, err := filepath.Abs(v.GetString("skills.destination"))
	if err != nil {
		return errors.Wrap(err, "failed to resolve destination directory")
	}
	imp, err := importer.New(dest)
	if err != nil {
		return err
	}
	installed := make(map[string]bool)
	for _, id := range imp.Conflicts(registry.IDs()) {
		installed[id] = true
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tNAME\tSTATUS\tDESCRIPTION")
	fmt.Fprintln(tw, "-\t--\t----\t------\t-----------")

	for i, bundle := range registry {
		status := "available"
		if installed[bundle.ID] {
			status = "installed"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			i+1, bundle.ID, bundle.Name, status, picker.Truncate(bundle.Description, picker.MaxDescriptionWidth))
	}
	return tw.Flush()
}
