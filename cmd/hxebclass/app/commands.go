package app

import (
	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/hxebclass/cmd/auth"
	"github.com/hxeb/hxebclass/cmd/hxebclass/cmd/org"
	"github.com/hxeb/hxebclass/cmd/hxebclass/cmd/remote"
	"github.com/hxeb/hxebclass/cmd/hxebclass/cmd/sync"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(sync.NewCommand(a))
	rootCmd.AddCommand(remote.NewCommand(a))
	rootCmd.AddCommand(org.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(auth.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("hxebclass %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
