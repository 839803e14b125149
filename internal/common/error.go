// Package common defines shared constants and sentinel errors used across
// the memories services and repositories. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrStorage       = errors.New("storage error")
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// Service-level errors.
	ErrInternal           = errors.New("internal error")
	ErrValidation         = errors.New("validation error")
	ErrDuplicateUser      = errors.New("name or email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrCascadeIncomplete marks an operation whose primary effect was persisted
	// while a follow-up cascade step failed.
	ErrCascadeIncomplete = errors.New("cascade incomplete")
)
