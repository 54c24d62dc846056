// Package common defines shared constants, sentinel errors, and small
// utilities used across the StudyHub client. Callers should use errors.Is
// to match sentinel values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrInvalidInput = errors.New("invalid input")
)
