// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status columns and per-course progress lines.
const (
	// Success marks a completed operation or verified credentials.
	Success = "✓"

	// Error marks a failed operation or missing configuration.
	Error = "✗"

	// Warning marks a non-fatal problem, such as a stale course.
	Warning = "!"

	// Planned marks a change a dry run would make.
	Planned = "~"

	// Optional marks a skipped step or empty cell.
	Optional = "-"
)
