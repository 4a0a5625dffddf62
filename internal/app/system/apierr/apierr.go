// Package apierr defines the closed set of error kinds the API reports.
//
// Handlers and stores classify failures into one of six kinds; the HTTP layer
// maps the kind to a status code and carries the free-text message as detail.
// Clients branch on kind, not on message strings.
package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-distinguishable error category.
type Kind string

const (
	NotFound         Kind = "not_found"
	ValidationFailed Kind = "validation_failed"
	Unauthorized     Kind = "unauthorized"
	Forbidden        Kind = "forbidden"
	Conflict         Kind = "conflict"
	Internal         Kind = "internal"
)

// Error pairs a Kind with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New returns an Error of the given kind.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf returns an Error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, defaulting to Internal for errors that
// were never classified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Status maps an error kind to its HTTP status code.
func Status(kind Kind) int {
	switch kind {
	case NotFound:
		return http.StatusNotFound
	case ValidationFailed:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
