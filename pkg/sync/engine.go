package sync

import (
	"context"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hxeb/hxebclass/pkg/classroom"
	"github.com/hxeb/hxebclass/pkg/errors"
	"github.com/hxeb/hxebclass/pkg/logging"
	"github.com/hxeb/hxebclass/pkg/metrics"
	"github.com/hxeb/hxebclass/pkg/payload"
)

// Engine reconciles course payloads against a remote gateway. It holds no
// remote state between calls.
type Engine struct {
	gateway classroom.Gateway
	policy  Policy
	metrics *metrics.Metrics
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithMetrics records outcomes on m.
func WithMetrics(m *metrics.Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine creates an engine over gw using policy for teacher reconciliation.
func NewEngine(gw classroom.Gateway, policy Policy, opts ...EngineOption) *Engine {
	e := &Engine{gateway: gw, policy: policy}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy returns the engine's teacher policy.
func (e *Engine) Policy() Policy {
	return e.policy
}

// Run syncs every item in order. Build errors and per-course failures are
// recorded on their item and the run continues. Cancellation stops the run
// before the next item.
func (e *Engine) Run(ctx context.Context, items iter.Seq2[payload.Item, error], opts ...Option) *Result {
	options := Defaults().Apply(opts...)
	result := &Result{
		RunID:     uuid.NewString(),
		DryRun:    options.DryRun,
		StartedAt: time.Now(),
	}
	ctx = logging.WithRunID(ctx, result.RunID)
	logger := logging.FromContext(ctx)
	logger.Info().
		Bool("dry_run", options.DryRun).
		Bool("sync_teachers", options.SyncTeachers).
		Bool("sync_students", options.SyncStudents).
		Msg("Starting course sync")

	for item, err := range items {
		if ctx.Err() != nil {
			result.Canceled = true
			logger.Warn().Err(ctx.Err()).Msg("Sync canceled, remaining courses skipped")
			break
		}
		if err != nil {
			res := ItemResult{
				Alias:    item.Meta.Alias,
				SeasonID: item.Meta.SeasonID,
				ClassID:  item.Meta.ClassID,
				Action:   ActionFailed,
			}
			res.fail(StageBuild, err)
			e.recordFailure(ctx, &res)
			result.Items = append(result.Items, res)
			continue
		}
		result.Items = append(result.Items, e.sync(ctx, item.Payload, item.Meta, options))
	}

	result.FinishedAt = time.Now()
	e.metrics.RunFinished(result.Duration())
	logger.Info().
		Dur("duration", result.Duration()).
		Msg(result.Summary())
	return result
}

// Sync reconciles a single payload: one lookup, then exactly one create or
// patch, then optional teacher reconciliation.
func (e *Engine) Sync(ctx context.Context, p classroom.CoursePayload, meta payload.Meta, opts ...Option) ItemResult {
	return e.sync(ctx, p, meta, Defaults().Apply(opts...))
}

func (e *Engine) sync(ctx context.Context, p classroom.CoursePayload, meta payload.Meta, opts *Options) ItemResult {
	key := p.Alias()
	ctx = logging.WithClass(logging.WithAlias(ctx, key), meta.SeasonID, meta.ClassID)
	logger := logging.FromContext(ctx)

	res := ItemResult{
		Alias:    key,
		SeasonID: meta.SeasonID,
		ClassID:  meta.ClassID,
		Name:     p.Name,
	}

	var owner string
	existing, err := e.gateway.GetCourse(ctx, key)
	switch {
	case err == nil:
		res.CourseID = existing.ID
		owner = existing.OwnerID
		res.Action = e.patch(ctx, &res, p, opts.DryRun)
	case errors.IsNotFound(err):
		res.Action, owner = e.create(ctx, &res, p, opts.DryRun)
	default:
		res.Action = ActionFailed
		res.fail(StageLookup, errors.NewSyncError(key, StageLookup, err))
	}
	if res.Failed() {
		e.recordFailure(ctx, &res)
		return res
	}
	logger.Info().
		Str("action", string(res.Action)).
		Str("course_id", res.CourseID).
		Msg("Course synced")

	if opts.SyncTeachers {
		var terr error
		teachers, ok := desiredTeacher(ctx, meta.TeacherEmail)
		switch {
		case !ok:
		case res.Action == ActionWouldCreate:
			// A course that a dry run would create has no roster yet.
			teachers.Status = TeachersPlanned
			teachers.Added = []string{teachers.Desired}
		default:
			teachers, terr = e.reconcileTeachers(ctx, teachers, key, owner, opts.DryRun)
		}
		res.Teachers = teachers
		if terr != nil {
			res.fail(StageTeachers, errors.NewSyncError(key, StageTeachers, terr))
			e.recordFailure(ctx, &res)
			return res
		}
	}
	if opts.SyncStudents {
		res.Students = "not supported"
		logger.Warn().Msg("Student roster sync is not supported, skipping")
	}
	e.metrics.CourseSynced(string(res.Action))
	return res
}

func (e *Engine) create(ctx context.Context, res *ItemResult, p classroom.CoursePayload, dryRun bool) (Action, string) {
	if dryRun {
		logging.FromContext(ctx).Info().Msg("Would create course")
		return ActionWouldCreate, ""
	}
	course, err := e.gateway.CreateCourse(ctx, p)
	if err != nil {
		res.fail(StageCreate, errors.NewSyncError(p.Alias(), StageCreate, err))
		return ActionFailed, ""
	}
	res.CourseID = course.ID
	return ActionCreated, course.OwnerID
}

func (e *Engine) patch(ctx context.Context, res *ItemResult, p classroom.CoursePayload, dryRun bool) Action {
	if dryRun {
		logging.FromContext(ctx).Info().Msg("Would update course")
		return ActionWouldUpdate
	}
	if _, err := e.gateway.PatchCourse(ctx, p.Alias(), p); err != nil {
		res.fail(StagePatch, errors.NewSyncError(p.Alias(), StagePatch, err))
		return ActionFailed
	}
	return ActionUpdated
}

// ReconcileTeachers makes desired the course's single managed teacher.
// Current teachers other than desired are removed unless the policy
// protects them or they own the course. A missing or implausible desired
// address leaves the roster untouched.
func (e *Engine) ReconcileTeachers(ctx context.Context, courseID, desired string, dryRun bool) (TeacherResult, error) {
	res, ok := desiredTeacher(ctx, desired)
	if !ok {
		return res, nil
	}
	course, err := e.gateway.GetCourse(ctx, courseID)
	if err != nil {
		res.Status = TeachersFailed
		return res, err
	}
	return e.reconcileTeachers(ctx, res, courseID, course.OwnerID, dryRun)
}

// desiredTeacher normalizes the org teacher address. ok is false when
// reconciliation must be skipped; res then carries the skipped status.
func desiredTeacher(ctx context.Context, email string) (res TeacherResult, ok bool) {
	res.Desired = classroom.NormalizeEmail(email)
	if !plausibleEmail(res.Desired) {
		res.Status = TeachersSkipped
		res.Note = "no valid teacher email in org record"
		logging.FromContext(ctx).Info().Str("teacher", res.Desired).Msg("No valid teacher email, leaving teachers unchanged")
		return res, false
	}
	return res, true
}

func (e *Engine) reconcileTeachers(ctx context.Context, res TeacherResult, courseID, ownerID string, dryRun bool) (TeacherResult, error) {
	logger := logging.FromContext(ctx)
	desired := res.Desired

	members, err := e.gateway.ListTeachers(ctx, courseID)
	if err != nil {
		res.Status = TeachersFailed
		return res, err
	}

	var current, remove []string
	for _, m := range members {
		email := m.Email()
		if email == "" {
			continue
		}
		current = append(current, email)
		switch {
		case email == desired:
		case ownerID != "" && m.UserID == ownerID:
			res.Kept = append(res.Kept, email)
		case e.policy.Protected(email):
			res.Kept = append(res.Kept, email)
		default:
			remove = append(remove, email)
		}
	}
	add := !slices.Contains(current, desired)

	if dryRun {
		res.Status = TeachersPlanned
		res.Removed = remove
		if add {
			res.Added = []string{desired}
		}
		logger.Info().
			Strs("remove", remove).
			Bool("add", add).
			Msg("Would reconcile teachers")
		return res, nil
	}

	for _, email := range remove {
		err := e.gateway.RemoveTeacher(ctx, courseID, email)
		switch {
		case err == nil:
			res.Removed = append(res.Removed, email)
			e.metrics.TeacherChanged("remove")
			logger.Info().Str("teacher", email).Msg("Removed teacher")
		case errors.IsNotMember(err):
			res.Conflicts = append(res.Conflicts, email)
			logger.Info().Str("teacher", email).Msg("Teacher already removed")
		default:
			res.Status = TeachersFailed
			return res, err
		}
	}

	if add {
		err := e.gateway.AddTeacher(ctx, courseID, desired)
		switch {
		case err == nil:
			res.Added = append(res.Added, desired)
			e.metrics.TeacherChanged("add")
			logger.Info().Str("teacher", desired).Msg("Added teacher")
		case errors.IsAlreadyMember(err):
			res.Conflicts = append(res.Conflicts, desired)
			logger.Info().Str("teacher", desired).Msg("Teacher already a member")
		default:
			res.Status = TeachersFailed
			return res, err
		}
	}

	res.Status = TeachersSynced
	return res, nil
}

func (e *Engine) recordFailure(ctx context.Context, res *ItemResult) {
	e.metrics.SyncFailed(errors.Kind(res.Err))
	logging.FromContext(ctx).Error().
		Err(res.Err).
		Str("alias", res.Alias).
		Str("stage", res.Stage).
		Msg("Course sync failed")
}

func plausibleEmail(email string) bool {
	return email != "" && strings.Contains(email, "@")
}
