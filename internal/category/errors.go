package category

import "errors"

var (
	ErrNotFound = errors.New("category not found")
	// ErrDuplicate is returned by the store when an insert loses the race on (owner, name, icon).
	ErrDuplicate = errors.New("category already exists")
)
