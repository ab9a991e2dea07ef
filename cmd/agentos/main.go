package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jingkaihe/agentos/pkg/logger"
	"github.com/jingkaihe/agentos/pkg/presenter"
	"github.com/jingkaihe/agentos/pkg/skills"
	"github.com/jingkaihe/agentos/pkg/version"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "AGENTOS"

func newRootCmd() *cobra.Command {
	v := viper.New()
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "agentos",
		Short: "Import Agent OS skills into the current project",
		Long: `agentos copies skill bundles from the global Agent OS install
(~/agent-os/.claude/skills) into .claude/skills in the current directory.

Without flags it shows a numbered menu of the available skills. Enter a
number to toggle a skill, a to select all, n to select none and d when done.
Skills that already exist in the project can be overwritten, skipped, or the
import cancelled.

Examples:
  agentos
  agentos --all
  agentos --all --overwrite --verbose
  agentos --source ./skills --dest ~/work/app/.claude/skills`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(v, cfgFile); err != nil {
				return err
			}
			return logger.Configure(v.GetString("log_level"), v.GetString("log_format"))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runImport(cmd, v)
		},
	}

	rootCmd.Version = version.Get().String()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/agent-os/config.yaml)")
	flags.String("source", "", "skills source directory (default is $HOME/agent-os/.claude/skills)")
	flags.String("dest", "", "destination directory (default is ./.claude/skills)")
	flags.Bool("verbose", false, "print progress for every step and skill")
	flags.Bool("quiet", false, "only print errors, prompts and dry-run results")
	flags.String("log-level", "info", "log level (panic, fatal, error, warn, info, debug, trace)")
	flags.String("log-format", "fmt", "log format (fmt or json)")

	addImportFlags(rootCmd.Flags())

	bindFlags(v, flags, map[string]string{
		"skills.source":      "source",
		"skills.destination": "dest",
		"verbose":            "verbose",
		"quiet":              "quiet",
		"log_level":          "log-level",
		"log_format":         "log-format",
	})
	bindFlags(v, rootCmd.Flags(), map[string]string{
		"all":       "all",
		"overwrite": "overwrite",
		"tui":       "tui",
		"dry_run":   "dry-run",
	})

	rootCmd.AddCommand(newListCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

// loadConfig layers env vars (AGENTOS_*) and an optional YAML config file
// under the flags bound to v.
func loadConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if source, err := skills.DefaultSourceDir(); err == nil {
		v.SetDefault("skills.source", source)
	}
	v.SetDefault("skills.destination", filepath.FromSlash(skills.SkillsDir))
	v.SetDefault("skills.ignore", []string{})

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "failed to read config file %s", cfgFile)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, skills.DefaultInstallDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "failed to read config file")
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		presenter.Error(err, "")
		os.Exit(1)
	}
}
