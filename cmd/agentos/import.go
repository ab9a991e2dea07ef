package main

import (
	"path/filepath"

	"github.com/jingkaihe/agentos/pkg/importer"
	"github.com/jingkaihe/agentos/pkg/logger"
	"github.com/jingkaihe/agentos/pkg/picker"
	"github.com/jingkaihe/agentos/pkg/presenter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func addImportFlags(flags *pflag.FlagSet) {
	flags.Bool("all", false, "import every available skill without showing the menu")
	flags.Bool("overwrite", false, "overwrite skills that already exist without asking")
	flags.Bool("tui", false, "use the full-screen picker instead of the numbered menu")
	flags.Bool("dry-run", false, "show what would be imported without copying anything")
}

func getImportOptions(cmd *cobra.Command, v *viper.Viper) (importer.Options, error) {
	dest, err := filepath.Abs(v.GetString("skills.destination"))
	if err != nil {
		return importer.Options{}, errors.Wrap(err, "failed to resolve destination directory")
	}

	source := v.GetString("skills.source")
	if source == "" {
		return importer.Options{}, errors.New("skills source directory is not set and the home directory is unknown")
	}

	p := presenter.NewForIO(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	p.SetQuiet(v.GetBool("quiet"))

	return importer.Options{
		SourceDir: source,
		DestDir:   dest,
		Ignore:    v.GetStringSlice("skills.ignore"),
		All:       v.GetBool("all"),
		Overwrite: v.GetBool("overwrite"),
		Verbose:   v.GetBool("verbose"),
		DryRun:    v.GetBool("dry_run"),
		TUI:       v.GetBool("tui"),
		Redraw:    picker.IsTerminal(cmd.OutOrStdout()),
		TUIInput:  cmd.InOrStdin(),
		Presenter: p,
	}, nil
}

func runImport(cmd *cobra.Command, v *viper.Viper) error {
	ctx := cmd.Context()
	opts, err := getImportOptions(cmd, v)
	if err != nil {
		return err
	}

	logger.G(ctx).
		WithField("source", opts.SourceDir).
		WithField("destination", opts.DestDir).
		WithField("config", v.ConfigFileUsed()).
		Debug("starting skill import")

	_, err = importer.Run(ctx, opts)
	return err
}
