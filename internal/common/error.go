// Package common defines shared constants and sentinel errors used across
// client layers of contactdir. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Local validation errors, raised before anything is sent.
	ErrInvalidUsername = errors.New("username must be 3 to 150 characters")
	ErrInvalidPassword = errors.New("password must be 8 to 100 characters and contain a letter and a digit")
	ErrEmptyField      = errors.New("field must not be empty")

	// Presentation-level refusals.
	ErrActionNotAvailable = errors.New("action not available")
	ErrCancelled          = errors.New("cancelled by user")
)
