// Package apierror defines the error kinds the API surfaces and the single
// translation point that maps them onto HTTP responses.
package apierror

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Error is a request-terminating failure with an HTTP status and a message
// safe to show to clients. The wrapped cause, if any, stays server-side.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports missing or malformed input.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// Auth reports a missing, invalid, or insufficient credential.
func Auth(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NotFound reports an unknown resource id.
func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// Upload reports a remote asset upload failure.
func Upload(message string, err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message, Err: err}
}

// Store wraps a persistence collaborator failure.
func Store(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "database operation failed", Err: err}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Write renders err as the shared {success:false, message} body. Errors that
// are not *Error default to a generic 500.
func Write(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var apiErr *Error
	if errors.As(err, &apiErr) {
		status = apiErr.Status
		message = apiErr.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{Success: false, Message: message})
}
