package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pocket/internal/report"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

func TestWhere(t *testing.T) {
	owner := uuid.New()
	cat := uuid.New()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   report.Filter
		wantCond string
		wantArgs []any
	}{
		{
			name:     "NoBounds",
			filter:   report.Filter{OwnerID: owner},
			wantCond: " WHERE t.owner_id = $1",
			wantArgs: []any{owner},
		},
		{
			name:     "OnlyUntil",
			filter:   report.Filter{OwnerID: owner, Until: &until},
			wantCond: " WHERE t.owner_id = $1 AND t.date <= $2",
			wantArgs: []any{owner, until},
		},
		{
			name:     "OnlyFrom",
			filter:   report.Filter{OwnerID: owner, From: &from},
			wantCond: " WHERE t.owner_id = $1 AND t.date >= $2",
			wantArgs: []any{owner, from},
		},
		{
			name:     "Everything",
			filter:   report.Filter{OwnerID: owner, CategoryIDs: []uuid.UUID{cat}, From: &from, Until: &until, Kind: new(transaction.KindDeposit)},
			wantCond: " WHERE t.owner_id = $1 AND t.category_id = ANY($2) AND t.date >= $3 AND t.date <= $4 AND t.kind = $5",
			wantArgs: []any{owner, []uuid.UUID{cat}, from, until, "deposit"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, args := where(tt.filter)
			assert.Equal(t, tt.wantCond, cond)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
