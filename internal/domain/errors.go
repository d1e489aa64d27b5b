package domain

import "errors"

var (
	// ErrValidation indicates malformed or contradictory input, such as an
	// end time before a start time or a task that belongs to another project.
	ErrValidation = errors.New("validation failed")

	// ErrConflict indicates an invariant violation under legal but
	// conflicting state, such as starting a timer while one is running or
	// transitioning a timesheet out of a terminal status.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates the referenced session, entry, or timesheet
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the caller lacks rights over the target record.
	ErrUnauthorized = errors.New("not authorized")

	// ErrTransient indicates the underlying store was unavailable or timed
	// out; the caller may retry.
	ErrTransient = errors.New("store unavailable")
)
