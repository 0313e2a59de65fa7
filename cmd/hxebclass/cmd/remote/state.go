package remote

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/application"
	"github.com/hxeb/hxebclass/internal/cmd/emoji"
	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/logging"
)

// NewArchiveCommand creates the remote archive subcommand.
func NewArchiveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id|alias>",
		Short: "Archive a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setState(cmd, app, args[0], classroom.StateArchived)
		},
	}
}

// NewStateCommand creates the remote state subcommand.
func NewStateCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state <id|alias> --state STATE",
		Short: "Change a course state",
		Long: `Change the state of a course.

STATE is one of PROVISIONED, ACTIVE, ARCHIVED or DECLINED.`,
		Example: `  hxebclass remote state 123456 --state ACTIVE`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, _ := cmd.Flags().GetString("state")
			state, err := classroom.ParseState(value)
			if err != nil {
				return err
			}
			return setState(cmd, app, args[0], state)
		},
	}
	cmd.Flags().String("state", "", "Target state: PROVISIONED, ACTIVE, ARCHIVED, DECLINED")
	_ = cmd.MarkFlagRequired("state")
	return cmd
}

func setState(cmd *cobra.Command, app application.Application, id string, state classroom.CourseState) error {
	ctx := cmd.Context()
	gw, err := app.Gateway(ctx)
	if err != nil {
		return err
	}

	course, err := gw.SetCourseState(ctx, id, state)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Info().
		Str("course_id", course.ID).
		Str("state", string(course.CourseState)).
		Msg("Course state changed")
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s is now %s\n", emoji.Success, course.ID, course.Name, course.CourseState)
	return nil
}
