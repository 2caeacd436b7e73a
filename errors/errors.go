// Package errors defines the error taxonomy shared by the service and handler
// layers. Services return (or wrap) these sentinels; the HTTP boundary maps
// them to a status code and a {"error": message} body.
package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation covers malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrMissingCredential is returned when no user identifier accompanies a request.
	ErrMissingCredential = errors.New("user identifier missing")
	// ErrUnknownUser is returned when a supplied identifier resolves to no user.
	ErrUnknownUser = errors.New("unknown user")
	// ErrAuthentication covers an invalid or expired external identity assertion.
	ErrAuthentication = errors.New("authentication failed")
	// ErrForbidden covers ownership violations.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound covers lookups of absent entities.
	ErrNotFound = errors.New("not found")
	// ErrConflict covers uniqueness violations.
	ErrConflict = errors.New("conflict")
	// ErrDependencyUnavailable is returned when the persistence layer or an
	// external provider is unreachable; callers may retry.
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Validation wraps ErrValidation with a human-readable reason.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// StatusCode maps an error from the taxonomy to its HTTP status. Anything
// outside the taxonomy maps to 500.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingCredential), errors.Is(err, ErrUnknownUser), errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrDependencyUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteJSON writes err as a {"error": message} response with the mapped
// status. Internal errors are not echoed to the client.
func WriteJSON(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
