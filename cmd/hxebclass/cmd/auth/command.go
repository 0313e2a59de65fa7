// Package auth provides commands that manage Google Classroom credentials.
package auth

import (
	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/application"
)

// NewCommand creates the auth command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "auth",
		GroupID: "management",
		Short:   "Manage Google Classroom credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(NewStatusCommand(app))
	cmd.AddCommand(NewLoginCommand(app))

	return cmd
}
