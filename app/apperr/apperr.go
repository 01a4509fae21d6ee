// Package apperr defines the error kinds surfaced by the catalog core and
// their mapping to HTTP statuses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindBadRequest Kind = "bad_request"
	KindInternal   Kind = "internal_error"
)

// Sentinels for errors.Is checks against a kind.
var (
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrBadRequest = &Error{Kind: KindBadRequest}
	ErrInternal   = &Error{Kind: KindInternal}
)

// Error is a classified business error. IDs lists offending entity ids for
// BadRequest errors raised on unresolved id sets.
type Error struct {
	Kind    Kind
	Message string
	IDs     []uint
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Status returns the HTTP status for the error kind.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...any) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

// MissingIDs reports ids of a supplied set that did not resolve.
func MissingIDs(what string, ids []uint) *Error {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return &Error{
		Kind:    KindBadRequest,
		Message: fmt.Sprintf("%s not found: [%s]", what, strings.Join(parts, ", ")),
		IDs:     ids,
	}
}

// Internal wraps an unexpected failure, keeping the cause message.
func Internal(err error, action string) *Error {
	msg := action
	if err != nil {
		msg = fmt.Sprintf("%s: %s", action, err.Error())
	}
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// Wrap passes classified errors through unchanged. Unique-constraint
// violations become Conflict and everything else becomes InternalError.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	if IsUniqueViolation(err) {
		return &Error{Kind: KindConflict, Message: fmt.Sprintf("%s: duplicate value", action), Err: err}
	}
	return Internal(err, action)
}

// KindOf classifies any error. Unclassified errors are internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// As returns err as *Error, wrapping unclassified errors as internal.
func As(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err, "unexpected error")
}
