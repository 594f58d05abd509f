package workflow

import (
	"errors"
	"strings"
)

// ErrCancelled is returned when the operator declines a confirmation. It is
// a clean, zero-side-effect termination, not a failure; callers distinguish
// it with errors.Is.
var ErrCancelled = errors.New("cancelled by user")

// NotFoundError reports a missing prerequisite (site, backup file, config
// file).
type NotFoundError struct {
	Resource string
	Path     string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found at " + e.Path
}

// InvalidArchiveError reports a readable archive that is missing required
// entries.
type InvalidArchiveError struct {
	Missing []string
}

func (e *InvalidArchiveError) Error() string {
	return "backup archive is invalid: missing " + strings.Join(e.Missing, ", ")
}
