package ladder

import (
	"errors"
	"fmt"

	"github.com/okian/ladder/internal/domain/roster"
)

// Sentinel kinds for ladder operations. Roster kinds are re-exported so
// callers can match every failure against this package.
var (
	ErrDuplicateOrEmptyName = roster.ErrDuplicateOrEmptyName
	ErrNotFound             = roster.ErrNotFound
	ErrMissingTimestamp     = errors.New("please select a time")
	ErrSelfMatch            = errors.New("winner and loser cannot be the same person")
	ErrUnknownPlayer        = errors.New("unknown player")
	ErrAuthorizationDenied  = errors.New("incorrect reset password")
	ErrPersist              = errors.New("persist ladder state failed")
)

// Error codes, stable for UI message lookup.
const (
	CodeDuplicateOrEmptyName = "duplicate_or_empty_name"
	CodeNotFound             = "not_found"
	CodeMissingTimestamp     = "missing_timestamp"
	CodeSelfMatch            = "self_match"
	CodeUnknownPlayer        = "unknown_player"
	CodeAuthorizationDenied  = "authorization_denied"
	CodePersist              = "persist_failed"
	CodeInternal             = "internal_error"
)

// Code maps err to its stable code. nil maps to "".
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDuplicateOrEmptyName):
		return CodeDuplicateOrEmptyName
	case errors.Is(err, ErrUnknownPlayer):
		return CodeUnknownPlayer
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrMissingTimestamp):
		return CodeMissingTimestamp
	case errors.Is(err, ErrSelfMatch):
		return CodeSelfMatch
	case errors.Is(err, ErrAuthorizationDenied):
		return CodeAuthorizationDenied
	case errors.Is(err, ErrPersist):
		return CodePersist
	default:
		return CodeInternal
	}
}

// IsValidation reports whether err is a precondition failure that left
// state untouched.
func IsValidation(err error) bool {
	switch Code(err) {
	case CodeDuplicateOrEmptyName, CodeNotFound, CodeMissingTimestamp,
		CodeSelfMatch, CodeUnknownPlayer, CodeAuthorizationDenied:
		return true
	}
	return false
}

func wrapPersist(collection string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersist, collection, err)
}
