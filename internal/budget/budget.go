package budget

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/common"
)

// Budget caps spending in one category over an inclusive window of calendar days.
type Budget struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	CategoryID    uuid.UUID
	Name          string
	LimitAmount   int64 // Amount in cents
	CurrentAmount int64 // Sum of linked transactions, in cents
	StartingDate  time.Time
	LimitDate     time.Time
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// Contains reports whether date falls inside the budget window.
func (b *Budget) Contains(date time.Time) bool {
	d := common.DateOnly(date)
	return !d.Before(b.StartingDate) && !d.After(b.LimitDate)
}

// Overlaps reports whether [start, limit] shares at least one day with the budget window.
func (b *Budget) Overlaps(start, limit time.Time) bool {
	return !b.StartingDate.After(common.DateOnly(limit)) && !b.LimitDate.Before(common.DateOnly(start))
}

// Remaining is what is left before the limit is reached. It is negative once the budget is exceeded.
func (b *Budget) Remaining() int64 {
	return b.LimitAmount - b.CurrentAmount
}

// PickActive chooses the budget a transaction belongs to among the budgets
// whose window contains its date. Non-overlapping windows leave at most one
// candidate; if a race ever left more, the one ending first wins so the
// choice stays deterministic.
func PickActive(candidates []*Budget) *Budget {
	var active *Budget

	for _, b := range candidates {
		if active == nil || b.LimitDate.Before(active.LimitDate) ||
			(b.LimitDate.Equal(active.LimitDate) && b.StartingDate.Before(active.StartingDate)) {
			active = b
		}
	}

	return active
}
