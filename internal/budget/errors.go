package budget

import "errors"

var (
	ErrNotFound = errors.New("budget not found")
	// ErrConflictingBudget is returned when a window overlaps another budget of the same owner and category.
	ErrConflictingBudget = errors.New("conflicting budget")
)
