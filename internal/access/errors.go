package access

import "errors"

// Engine errors. ErrNotResolved and ErrDenied stay distinct inside the
// package, but the transport layer must surface both as "not found" so
// a caller cannot probe for the existence of boards it cannot see.
var (
	// ErrNotResolved is returned when a resource or its declared parent
	// does not exist
	ErrNotResolved = errors.New("resource could not be resolved to a board")

	// ErrDenied is returned when resolution succeeded but the requester's
	// effective level is below the required threshold
	ErrDenied = errors.New("access denied")
)
