package investment

import "errors"

var (
	ErrNotFound = errors.New("investment not found")

	// ErrSchedulingUnavailable marks an investment that was stored but whose
	// schedule could not be registered. No deposits fire for it until it is.
	ErrSchedulingUnavailable = errors.New("scheduling unavailable")
)
