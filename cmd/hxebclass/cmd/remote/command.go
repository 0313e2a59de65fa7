// Package remote provides commands that inspect and manage Classroom courses.
package remote

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/application"
)

// NewCommand creates the remote command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remote",
		GroupID: "core",
		Short:   "Inspect and manage Google Classroom courses",
		Long: `Remote works on the courses owned by the authenticated account.

Available subcommands:
  list       - courses, flagging ones with no matching org class
  describe   - one course with its teachers and students
  archive    - archive a course
  state      - change a course state
  delete     - delete a course, or all of them`,
		Example: `  hxebclass remote list
  hxebclass remote describe p:12-301
  hxebclass remote state 123456 --state ACTIVE
  hxebclass remote delete 123456 --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown subcommand: %s", args[0])
		},
	}

	cmd.AddCommand(NewListCommand(app))
	cmd.AddCommand(NewDescribeCommand(app))
	cmd.AddCommand(NewArchiveCommand(app))
	cmd.AddCommand(NewStateCommand(app))
	cmd.AddCommand(NewDeleteCommand(app))

	return cmd
}
