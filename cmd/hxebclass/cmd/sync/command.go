// Package sync provides the sync command, which pushes org class
// arrangements to Google Classroom.
package sync

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hxeb/hxebclass/cmd/application"
	"github.com/hxeb/hxebclass/internal/cmd/output"
	"github.com/hxeb/hxebclass/internal/cmd/table"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/logging"
	"github.com/hxeb/hxebclass/pkg/metrics"
	"github.com/hxeb/hxebclass/pkg/payload"
	"github.com/hxeb/hxebclass/pkg/roster"
	coursesync "github.com/hxeb/hxebclass/pkg/sync"
)

// Flags holds the sync command flags.
type Flags struct {
	ClassID      int
	All          bool
	SyncTeachers bool
	SyncStudents bool
	DryRun       bool
}

// NewCommand creates the sync command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "sync",
		GroupID: "core",
		Short:   "Create or update Classroom courses from org arrangements",
		Long: `Sync pushes the active class arrangements of the configured season to
Google Classroom. Each arrangement maps to the course with alias
p:{season}-{class}: a missing course is created, an existing one is
updated. Nothing is ever deleted by sync.

With --sync-teacher the course teachers are reconciled against the
arrangement teacher. Teachers on sync.teacher_whitelist are never removed.

A failure on one course is reported and the remaining courses are still
synced. The command exits non-zero when any course failed.`,
		Example: `  hxebclass sync --id 301                  # Sync one class
  hxebclass sync --all --sync-teacher      # Sync the season with teachers
  hxebclass sync --all --dry-run           # Show what would change`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().IntVar(&flags.ClassID, "id", 0, "Sync the arrangement of this class ID")
	cmd.Flags().BoolVar(&flags.All, "all", false, "Sync every active arrangement of the season")
	cmd.Flags().BoolVar(&flags.SyncTeachers, "sync-teacher", false, "Reconcile course teachers")
	cmd.Flags().BoolVar(&flags.SyncStudents, "sync-student", false, "Reconcile course students (not supported yet)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Look up courses but make no changes")
	cmd.MarkFlagsMutuallyExclusive("id", "all")

	return cmd
}

// Validate checks that exactly one scope was selected.
func (f *Flags) Validate() error {
	if f.ClassID < 0 {
		return errors.NewValidationError("id", f.ClassID, "must be a positive class ID")
	}
	if f.ClassID == 0 && !f.All {
		return errors.NewValidationError("id", nil, "either --id or --all is required")
	}
	return nil
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	if err := flags.Validate(); err != nil {
		return err
	}

	ctx := logging.WithLogger(cmd.Context(), app.Logger())

	seasonID, err := app.SeasonID()
	if err != nil {
		return err
	}
	src, err := app.Roster(ctx)
	if err != nil {
		return err
	}
	arrs, err := src.Arrangements(ctx, roster.Query{SeasonID: seasonID, ClassID: flags.ClassID})
	if err != nil {
		return err
	}
	if flags.ClassID > 0 && len(arrs) == 0 {
		return errors.NewNotFoundError("active arrangement for class", strconv.Itoa(flags.ClassID))
	}

	gw, err := app.Gateway(ctx)
	if err != nil {
		return err
	}

	settings := app.SyncSettings()
	m := metrics.New()
	engine := coursesync.NewEngine(gw,
		coursesync.NewPolicy(settings.TeacherWhitelist...),
		coursesync.WithMetrics(m),
	)
	builder := payload.Builder{DescriptionHeading: settings.DescriptionHeading}
	if flags.SyncTeachers {
		logging.FromContext(ctx).Debug().
			Strs("whitelist", engine.Policy().Whitelist()).
			Msg("Teachers kept besides the org teacher and the course owner")
	}

	result := engine.Run(ctx, builder.BuildMany(arrs),
		coursesync.WithDryRun(flags.DryRun),
		coursesync.WithTeachers(flags.SyncTeachers),
		coursesync.WithStudents(flags.SyncStudents),
	)

	if settings.MetricsFile != "" {
		if err := m.WriteTextfile(settings.MetricsFile); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("path", settings.MetricsFile).Msg("Failed to write metrics file")
		}
	}

	format := output.DetectFormat(app.OutputFormat())
	out := cmd.OutOrStdout()
	if err := output.Render(out, format, result,
		func(wide bool) table.Data { return table.SyncResultToTableData(result, wide) }); err != nil {
		return err
	}
	if format.IsTable() {
		fmt.Fprintln(out, result.Summary())
	}

	switch {
	case result.Canceled:
		return errors.ErrCanceled
	case result.HasFailures():
		return fmt.Errorf("%d of %d courses failed to sync", result.Counts().Failed, len(result.Items))
	}
	return nil
}
