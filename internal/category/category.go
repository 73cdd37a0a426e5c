package category

import (
	"time"

	"github.com/google/uuid"
)

// Category groups transactions, budgets and investments of one owner.
// It is identified by (owner, name, icon) and never changes once created.
type Category struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	IconID    int
	CreatedAt time.Time
}
