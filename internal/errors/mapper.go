// internal/errors/mapper.go
package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/ydvSajal/Vibe-beats/internal/utils/pagination"
)

// Error is a service error carrying the HTTP status it should surface
// with. Handlers pass any error through Map to obtain the wire shape.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Map converts repo/infra errors into an *Error with an HTTP status.
// Keeps handler code clean by centralizing the mapping.
func Map(err error) *Error {
	if err == nil {
		return nil
	}

	var svcErr *Error
	switch {
	case errors.As(err, &svcErr):
		return svcErr

	case errors.Is(err, pagination.ErrInvalidToken):
		return &Error{Status: http.StatusBadRequest, Message: err.Error()}

	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Status: http.StatusNotFound, Message: "record not found"}

	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Status: http.StatusGatewayTimeout, Message: "request timed out"}

	case errors.Is(err, context.Canceled):
		return &Error{Status: http.StatusServiceUnavailable, Message: "request was canceled"}

	default:
		// fallback → bubble up error message for debugging
		return &Error{Status: http.StatusInternalServerError, Message: err.Error()}
	}
}

// InvalidArgument creates a 400 error.
// Use this in service layer for bad input validation.
func InvalidArgument(msg string) error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Unauthorized creates a 401 error.
func Unauthorized(msg string) error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

// NotFound creates a 404 error.
func NotFound(msg string) error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// AlreadyExists creates a 400 error for duplicate registrations.
func AlreadyExists(msg string) error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

// Internal creates a 500 error.
func Internal(msg string) error {
	return &Error{Status: http.StatusInternalServerError, Message: msg}
}
