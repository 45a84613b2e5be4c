package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: a referenced user, group, or post does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: a viewer tried to edit someone else's post. Handlers
	// translate this into a redirect to the read view, not an error page.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials: login with a wrong username or password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a rejected field so the form can be redisplayed
// with the message next to the field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
