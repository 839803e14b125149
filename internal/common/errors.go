package common

import (
	"errors"
	"fmt"
)

// ValidationError describes a single invalid input field. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError returns a *ValidationError for field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UserMessage maps an error returned by the services to text suitable for
// showing to the user. Validation problems are reported verbatim; credential
// and storage failures get a generic message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.Is(err, ErrCascadeIncomplete):
		return "done, but album membership could not be fully updated"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid name/e-mail or password"
	case errors.Is(err, ErrDuplicateUser):
		return "name or e-mail already registered"
	case errors.Is(err, ErrNotFound):
		return "item not found"
	case errors.Is(err, ErrQuotaExceeded), errors.Is(err, ErrStorage):
		return "could not save data, please try again"
	default:
		return "internal error, please try again"
	}
}
