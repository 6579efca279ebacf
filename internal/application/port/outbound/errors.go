package outbound

import "errors"

var (
	// ErrNotFound is returned by repositories when a single-row lookup or a
	// keyed update matches nothing.
	ErrNotFound = errors.New("record not found")

	ErrConfiguration = errors.New("data source is not configured")
	ErrConnection    = errors.New("unable to open database connection")

	// ErrInvalidState signals misuse of a unit of work, such as committing a
	// non-transactional unit or resolving the same transaction twice.
	ErrInvalidState = errors.New("invalid unit of work state")
)

// ErrDuplicate reports a unique constraint violation, such as a login id
// that is already taken.
var ErrDuplicate = errors.New("record already exists")
