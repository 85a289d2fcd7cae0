// Package apperror defines the error kinds shared by every module and their
// mapping onto HTTP status codes and machine readable codes.
package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidState      = errors.New("invalid state")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrSignatureMismatch = errors.New("signature mismatch")
	ErrGateway           = errors.New("gateway error")
	ErrUnavailable       = errors.New("service unavailable")
)

// Error is a module level error that carries a human readable message and
// unwraps to one of the kinds above.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

type kindInfo struct {
	status int
	code   string
}

var kinds = []struct {
	kind error
	info kindInfo
}{
	{ErrNotFound, kindInfo{http.StatusNotFound, "NOT_FOUND"}},
	{ErrInvalidArgument, kindInfo{http.StatusBadRequest, "INVALID_ARGUMENT"}},
	{ErrInvalidState, kindInfo{http.StatusConflict, "INVALID_STATE"}},
	{ErrConflict, kindInfo{http.StatusConflict, "CONFLICT"}},
	{ErrForbidden, kindInfo{http.StatusForbidden, "FORBIDDEN"}},
	{ErrUnauthorized, kindInfo{http.StatusUnauthorized, "UNAUTHORIZED"}},
	{ErrSignatureMismatch, kindInfo{http.StatusBadRequest, "SIGNATURE_MISMATCH"}},
	{ErrGateway, kindInfo{http.StatusBadGateway, "GATEWAY_ERROR"}},
	{ErrUnavailable, kindInfo{http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"}},
}

func lookup(err error) (kindInfo, bool) {
	for _, k := range kinds {
		if errors.Is(err, k.kind) {
			return k.info, true
		}
	}
	return kindInfo{}, false
}

// HTTPStatus returns the status code for err, 500 for unclassified errors.
func HTTPStatus(err error) int {
	if info, ok := lookup(err); ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Code returns the machine readable code for err.
func Code(err error) string {
	if info, ok := lookup(err); ok {
		return info.code
	}
	return "INTERNAL_ERROR"
}

// Message returns a message that is safe to show to the caller.
// Unclassified errors never leak their text.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	if _, ok := lookup(err); ok {
		return err.Error()
	}
	return "Internal error"
}

// IsInternal reports whether err falls outside every known kind.
func IsInternal(err error) bool {
	_, ok := lookup(err)
	return !ok
}
