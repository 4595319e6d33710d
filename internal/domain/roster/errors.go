package roster

import "errors"

// Sentinel kinds for roster errors.
var (
	ErrDuplicateOrEmptyName = errors.New("invalid name or name already exists")
	ErrNotFound             = errors.New("player not found")
)
