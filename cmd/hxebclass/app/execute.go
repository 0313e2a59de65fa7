package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/internal/cmd/output"
	"github.com/hxeb/hxebclass/pkg/logging"
)

// Execute runs the hxebclass CLI application with the given arguments.
// This is the main entry point called from main.go.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "hxebclass",
		Short:   "Sync org class arrangements to Google Classroom",
		Version: a.version,
		Long: `hxebclass keeps Google Classroom courses in step with the class
arrangements of a season in the org database.

Each arrangement maps to one course through the alias p:{season}-{class}.
Sync creates missing courses, updates existing ones and, on request,
reconciles the course teachers against the org record.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands:",
	})

	rootCmd.PersistentFlags().String("config", "", "config file (default is $HOME/.hxebclass.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("format", "o", "", "output format: table, json, yaml, wide")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("hxebclass {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	config, format, logLevel string
	verbose, quiet, noColor  bool
}

func readGlobalFlags(cmd *cobra.Command) globalFlags {
	return globalFlags{
		config:   mustGetString(cmd, "config"),
		format:   mustGetString(cmd, "format"),
		logLevel: mustGetString(cmd, "log-level"),
		verbose:  mustGetBool(cmd, "verbose"),
		quiet:    mustGetBool(cmd, "quiet"),
		noColor:  mustGetBool(cmd, "no-color"),
	}
}

// setupCommand reloads config when --config is given, applies the global
// flags and installs the resulting logger on the command context.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	f := readGlobalFlags(cmd)

	if _, err := output.ParseFormat(f.format); err != nil {
		return err
	}

	if f.config != "" {
		cfg, err := LoadConfig(f.config)
		if err != nil {
			return err
		}
		a.config = cfg
	}
	a.config.UpdateFromFlags(f.verbose, f.quiet, f.noColor, f.format, f.logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// ExitOnError prints err and exits with status 1. A nil err is a no-op.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// Persistent flags are registered in createRootCommand; a lookup failure is a bug.
func mustGetBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("flag %s: %v", name, err))
	}
	return v
}

func mustGetString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag %s: %v", name, err))
	}
	return v
}
