package common

import "time"

// DateOnly truncates t to its calendar day at UTC midnight.
// Budget windows and transaction dates are compared as calendar days.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
