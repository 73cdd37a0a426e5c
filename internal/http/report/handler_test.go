package report

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

func TestParseFilter(t *testing.T) {
	owner := uuid.New()
	a, b := uuid.New(), uuid.New()

	t.Run("All", func(t *testing.T) {
		q := url.Values{
			"category_id": {a.String() + "," + b.String()},
			"from":        {"2026-01-01"},
			"until":       {"2026-12-31"},
			"kind":        {"deposit"},
		}

		f, err := parseFilter(owner, q)
		require.NoError(t, err)

		assert.Equal(t, owner, f.OwnerID)
		assert.Equal(t, []uuid.UUID{a, b}, f.CategoryIDs)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *f.From)
		assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), *f.Until)
		assert.Equal(t, transaction.KindDeposit, *f.Kind)
	})

	t.Run("Empty", func(t *testing.T) {
		f, err := parseFilter(owner, url.Values{})
		require.NoError(t, err)

		assert.Nil(t, f.CategoryIDs)
		assert.Nil(t, f.From)
		assert.Nil(t, f.Kind)
	})

	for name, q := range map[string]url.Values{
		"BadCategory": {"category_id": {"food"}},
		"BadDate":     {"from": {"01/01/2026"}},
		"BadKind":     {"kind": {"income"}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := parseFilter(owner, q)
			assert.Error(t, err)
		})
	}
}
