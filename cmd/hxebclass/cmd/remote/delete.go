package remote

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/application"
	"github.com/hxeb/hxebclass/internal/cmd/emoji"
	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/logging"
)

// NewDeleteCommand creates the remote delete subcommand.
func NewDeleteCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete [<id|alias>] [--all] [--force]",
		Aliases: []string{"rm"},
		Short:   "Delete a course, or every course",
		Long: `Delete a course. Classroom only deletes archived courses; --force
archives the course first.

With --all every course of the authenticated account is deleted. A
failure on one course is reported and the others are still processed.`,
		Example: `  hxebclass remote delete 123456
  hxebclass remote delete p:12-301 --force
  hxebclass remote delete --all --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			force, _ := cmd.Flags().GetBool("force")

			switch {
			case all && len(args) > 0:
				return errors.NewValidationError("all", args[0], "give either a course id or --all, not both")
			case !all && len(args) == 0:
				return errors.NewValidationError("id", nil, "a course id or --all is required")
			}

			ctx := cmd.Context()
			gw, err := app.Gateway(ctx)
			if err != nil {
				return err
			}

			if !all {
				if err := deleteCourse(ctx, gw, args[0], force); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s\n", emoji.Success, args[0])
				return nil
			}
			return deleteAll(cmd, gw, force)
		},
	}
	cmd.Flags().Bool("all", false, "Delete every course")
	cmd.Flags().Bool("force", false, "Archive courses before deleting them")
	return cmd
}

func deleteAll(cmd *cobra.Command, gw classroom.Gateway, force bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	courses, err := gw.ListCourses(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, course := range courses {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := deleteCourse(ctx, gw, course.ID, force); err != nil {
			failed++
			fmt.Fprintf(out, "%s %s %s: %v\n", emoji.Error, course.ID, course.Name, err)
			continue
		}
		fmt.Fprintf(out, "%s Deleted %s %s\n", emoji.Success, course.ID, course.Name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d courses could not be deleted", failed, len(courses))
	}
	return nil
}

func deleteCourse(ctx context.Context, gw classroom.Gateway, id string, force bool) error {
	logger := logging.FromContext(ctx).With().Str("course_id", id).Logger()

	if force {
		if _, err := gw.SetCourseState(ctx, id, classroom.StateArchived); err != nil {
			return err
		}
		logger.Debug().Msg("Course archived before delete")
	}

	if err := gw.DeleteCourse(ctx, id); err != nil {
		if errors.IsPreconditionFailed(err) && !force {
			return fmt.Errorf("%w (archive it first or use --force)", err)
		}
		return err
	}
	logger.Info().Msg("Course deleted")
	return nil
}
