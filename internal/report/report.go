package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

// Filter narrows an aggregation. Nil bounds are open, bounds are inclusive and
// an empty CategoryIDs means every category of the owner.
type Filter struct {
	OwnerID     uuid.UUID
	CategoryIDs []uuid.UUID
	From        *time.Time
	Until       *time.Time
	Kind        *transaction.Kind
}

type CategoryTotal struct {
	CategoryID uuid.UUID
	Name       string
	IconID     int
	Total      int64 // Amount in cents
}

type YearTotal struct {
	Year  int
	Total int64 // Amount in cents
}
