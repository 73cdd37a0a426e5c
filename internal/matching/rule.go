package matching

import (
	"time"

	"github.com/google/uuid"
)

// Rule maps concepts containing RawPattern (case-insensitive) to a category.
type Rule struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	RawPattern   string
	CategoryName string
	IconID       int
	CreatedAt    time.Time
}
