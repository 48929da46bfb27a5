package domain

import "errors"

var (
	// ErrDuplicateUsername is returned when a username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthenticated is returned when no identity is established for a request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrNotFound is returned by store lookups that match no row.
	ErrNotFound = errors.New("record not found")
)

// ValidationError reports malformed user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Invalid builds a ValidationError for field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
