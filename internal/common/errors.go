// Package common defines sentinel errors shared by the EduTalk stores and the
// terminal client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Session errors.
	ErrNoSession  = errors.New("no active session")
	ErrEmailTaken = errors.New("email already registered")

	// ErrNotInitialized is returned by writes issued before Initialize.
	ErrNotInitialized = errors.New("store not initialized")

	// Validation errors raised by the terminal client before a store is called.
	ErrValidation = errors.New("validation error")
)
