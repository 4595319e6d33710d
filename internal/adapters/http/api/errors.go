package api

import (
	"errors"
	"net/http"

	"github.com/okian/ladder/internal/domain/ladder"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// CodeBadRequest marks malformed or oversized request bodies.
const CodeBadRequest = "bad_request"

// Error records the handler op, the error kind and the underlying cause.
type Error struct {
	Op   string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Kind != nil && e.Err != nil:
		return e.Op + ": " + e.Kind.Error() + ": " + e.Err.Error()
	case e.Kind != nil:
		return e.Op + ": " + e.Kind.Error()
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	default:
		return e.Op
	}
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewKind returns an error of kind raised by op.
func NewKind(op string, kind error) error {
	return &Error{Op: op, Kind: kind}
}

// WrapKind tags err with op and kind.
func WrapKind(op string, kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Wrap tags err with op, keeping its own kind.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// statusFor maps an error to its HTTP status and stable code.
func statusFor(err error) (int, string) {
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest, CodeBadRequest
	}
	code := ladder.Code(err)
	switch code {
	case ladder.CodeDuplicateOrEmptyName:
		return http.StatusConflict, code
	case ladder.CodeNotFound:
		return http.StatusNotFound, code
	case ladder.CodeMissingTimestamp, ladder.CodeSelfMatch:
		return http.StatusBadRequest, code
	case ladder.CodeUnknownPlayer:
		return http.StatusUnprocessableEntity, code
	case ladder.CodeAuthorizationDenied:
		return http.StatusForbidden, code
	case ladder.CodePersist:
		return http.StatusInternalServerError, code
	default:
		return http.StatusInternalServerError, ladder.CodeInternal
	}
}
