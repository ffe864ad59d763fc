package models

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every client-side input check failure.
var ErrValidation = errors.New("validation failed")

// FieldError reports an invalid input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

func Invalid(field, msg string) error {
	return &FieldError{Field: field, Message: msg}
}
