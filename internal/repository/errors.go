package repository

import "errors"

// Common repository errors
var (
	// ErrDuplicateAccess is returned when a (user, board) pair already
	// holds an access grant
	ErrDuplicateAccess = errors.New("access already granted for this user and board")
)
