// Package catalog turns snapshots of bits and users into rankings, owner
// boards and stats, and computes the document writes for user actions.
//
// Nothing in this package talks to storage. Mutating operations return the
// new field values; the caller writes them and the next snapshot reflects them.
package catalog

import "errors"

var (
	// ErrNotAuthorized is returned when a privileged action is attempted
	// without the administrator signal.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrMissingInput is returned when a required text field is empty after trimming.
	ErrMissingInput = errors.New("missing input")

	// ErrAmbiguousUsername is returned when a reassignment target name matches
	// more than one account.
	ErrAmbiguousUsername = errors.New("username matches more than one account")

	// ErrMutationFailed wraps a rejected or unreachable store write. The cause
	// is passed through as-is.
	ErrMutationFailed = errors.New("mutation failed")
)
