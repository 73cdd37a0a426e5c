// Package common holds errors and helpers shared by the domain packages.
package common

import "errors"

var (
	// ErrAccessDenied is returned when the caller does not own the record it tries to read or change.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidInput is returned when request data breaks a domain rule (non-positive amount, inverted window, ...).
	ErrInvalidInput = errors.New("invalid input")
)
