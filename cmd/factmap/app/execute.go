package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/factmap/cmd/factmap/cmd/classify"
	"github.com/agentstation/factmap/cmd/factmap/cmd/hash"
	"github.com/agentstation/factmap/cmd/factmap/cmd/merge"
	"github.com/agentstation/factmap/cmd/factmap/cmd/resolve"
	"github.com/agentstation/factmap/internal/cmd/output"
)

// Execute runs the factmap CLI with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "factmap",
		Short:   "Reconcile facts reported by many sources",
		Version: a.version,
		Long: `Factmap reconciles what independent sources report about the same
event or point of interest. It weighs each source by reliability, finds the
fields the sources disagree on, classifies how far the entity can be trusted
and builds one canonical record from the weighted majority.

Entity files are YAML or JSON. Source weights, compared fields and
classification thresholds come from .factmap.yaml and FACTMAP_* variables.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	rootCmd.PersistentFlags().StringVar(&a.flags.ConfigFile, "config", "", "config file (default is ./.factmap.yaml or $HOME/.factmap.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.Verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolVarP(&a.flags.Quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().BoolVar(&a.flags.NoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVarP(&a.flags.Format, "format", "o", "", "output format: table, json, yaml (default table on a terminal, json otherwise)")
	rootCmd.PersistentFlags().StringVar(&a.flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("factmap {{.Version}}\n")

	rootCmd.AddCommand(classify.NewCommand(a))
	rootCmd.AddCommand(merge.NewCommand(a))
	rootCmd.AddCommand(resolve.NewCommand(a))
	rootCmd.AddCommand(hash.NewCommand(a))

	return rootCmd
}

// setupCommand validates global flags and rebuilds the logger from the
// flags and the loaded configuration before any command runs.
func (a *App) setupCommand(_ *cobra.Command, _ []string) error {
	if _, err := output.ParseFormat(a.flags.Format); err != nil {
		return err
	}

	cfg, err := a.Config()
	if err != nil {
		return err
	}

	if !a.fixedLogger {
		logger := NewLogger(a.flags, &cfg.Log)
		a.logger = &logger
	}
	return nil
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
