// Package sync reconciles org class arrangements with remote courses.
//
// Courses are processed one at a time: the course is looked up by alias,
// created when it is absent or patched when present, and then its teacher
// roster is optionally reconciled against the org's assigned teacher. A
// failure aborts only the course being processed.
package sync

// Options controls a sync run.
type Options struct {
	DryRun       bool // Look up remote state but do not change it
	SyncTeachers bool // Reconcile the teacher roster after create or patch
	SyncStudents bool // Requested student reconciliation; reported as unsupported
}

// Option is a function that configures sync Options.
type Option func(*Options)

// Defaults returns the default sync options.
func Defaults() *Options {
	return &Options{
		DryRun:       false,
		SyncTeachers: false,
		SyncStudents: false,
	}
}

// Apply applies the given options to the sync options.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDryRun configures dry run mode.
func WithDryRun(dryRun bool) Option {
	return func(opts *Options) {
		opts.DryRun = dryRun
	}
}

// WithTeachers configures teacher roster reconciliation.
func WithTeachers(enabled bool) Option {
	return func(opts *Options) {
		opts.SyncTeachers = enabled
	}
}

// WithStudents configures student roster reconciliation.
func WithStudents(enabled bool) Option {
	return func(opts *Options) {
		opts.SyncStudents = enabled
	}
}
