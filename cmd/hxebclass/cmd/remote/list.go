package remote

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/application"
	"github.com/hxeb/hxebclass/internal/cmd/output"
	"github.com/hxeb/hxebclass/internal/cmd/table"
	"github.com/hxeb/hxebclass/pkg/alias"
	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/report"
	"github.com/hxeb/hxebclass/pkg/roster"
)

// NewListCommand creates the remote list subcommand.
func NewListCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List remote courses",
		Long: `List the Classroom courses of the authenticated account.

A course is flagged stale when its name matches no active class
arrangement of the configured season. When the org database cannot be
reached the listing is still shown and nothing is flagged. Courses created
by sync carry the org season and class they came from.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			staleOnly, _ := cmd.Flags().GetBool("stale")
			return runList(cmd, app, staleOnly)
		},
	}
	cmd.Flags().Bool("stale", false, "Only show courses with no matching org class")
	return cmd
}

func runList(cmd *cobra.Command, app application.Application, staleOnly bool) error {
	ctx := cmd.Context()

	gw, err := app.Gateway(ctx)
	if err != nil {
		return err
	}
	courses, err := gw.ListCourses(ctx)
	if err != nil {
		return err
	}

	orgNames := orgClassNames(ctx, app)
	if staleOnly && orgNames != nil {
		courses = report.FindStale(courses, orgNames)
	}
	rows := report.Annotate(courses, orgNames)
	for i := range rows {
		rows[i] = report.WithOrigin(rows[i], courseAlias(ctx, app, gw, rows[i].Course.ID))
	}

	return output.Render(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), rows,
		func(wide bool) table.Data { return table.CoursesToTableData(rows, wide) })
}

// courseAlias returns the first org alias of courseID, or "" when it has
// none or the aliases cannot be listed.
func courseAlias(ctx context.Context, app application.Application, gw classroom.Gateway, courseID string) string {
	aliases, err := gw.ListAliases(ctx, courseID)
	if err != nil {
		app.Logger().Debug().Err(err).Str("course_id", courseID).Msg("Course origin unknown")
		return ""
	}
	for _, a := range aliases {
		if alias.IsAlias(a) {
			return a
		}
	}
	return ""
}

// orgClassNames returns the class names of the configured season, or nil
// when they cannot be loaded.
func orgClassNames(ctx context.Context, app application.Application) []string {
	logger := app.Logger()

	seasonID, err := app.SeasonID()
	if err != nil {
		logger.Warn().Err(err).Msg("Stale check skipped")
		return nil
	}
	src, err := app.Roster(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Stale check skipped, org database unavailable")
		return nil
	}
	arrs, err := src.Arrangements(ctx, roster.Query{SeasonID: seasonID})
	if err != nil {
		logger.Warn().Err(err).Msg("Stale check skipped, org query failed")
		return nil
	}
	return roster.ClassNames(arrs)
}
