package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocket/internal/common"
	"github.com/MrJamesThe3rd/pocket/internal/matching"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

func TestService_Learn(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name     string
		pattern  string
		category string
		setup    func(repo *matching.MockRepository)
		wantErr  error
	}{
		{
			name:     "Stores",
			pattern:  "  CONTINENTE ",
			category: "Groceries",
			setup: func(repo *matching.MockRepository) {
				repo.EXPECT().CreateRule(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, r *matching.Rule) error {
						assert.Equal(t, "CONTINENTE", r.RawPattern)
						assert.Equal(t, owner, r.OwnerID)
						r.ID = uuid.New()

						return nil
					})
			},
		},
		{
			name:     "EmptyPattern",
			pattern:  " ",
			category: "Groceries",
			wantErr:  common.ErrInvalidInput,
		},
		{
			name:     "EmptyCategory",
			pattern:  "UBER",
			category: "",
			wantErr:  common.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := matching.NewMockRepository(ctrl)

			if tt.setup != nil {
				tt.setup(repo)
			}

			r, err := matching.NewService(repo).Learn(context.Background(), owner, tt.pattern, tt.category, 4)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, r.ID)
			assert.Equal(t, 4, r.IconID)
		})
	}
}

func TestService_Categorize(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := matching.NewMockRepository(ctrl)
	owner := uuid.New()

	repo.EXPECT().FindMatch(gomock.Any(), owner, "COMPRA CONTINENTE LISBOA").
		Return(&matching.Rule{CategoryName: "Groceries", IconID: 2}, nil)
	repo.EXPECT().FindMatch(gomock.Any(), owner, "MB WAY").Return(nil, nil)

	params := []transaction.ExpenseParams{
		{Concept: "COMPRA CONTINENTE LISBOA", Amount: 1000},
		{Concept: "Cinema", Amount: 800, CategoryName: "Leisure", IconID: 7},
		{Concept: "MB WAY", Amount: 500},
	}

	require.NoError(t, matching.NewService(repo).Categorize(context.Background(), owner, params))

	assert.Equal(t, "Groceries", params[0].CategoryName)
	assert.Equal(t, 2, params[0].IconID)
	assert.Equal(t, "Leisure", params[1].CategoryName)
	assert.Equal(t, 7, params[1].IconID)
	assert.Equal(t, matching.DefaultCategoryName, params[2].CategoryName)
	assert.Equal(t, matching.DefaultIconID, params[2].IconID)
}

func TestService_Categorize_StoreFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := matching.NewMockRepository(ctrl)
	boom := errors.New("boom")

	repo.EXPECT().FindMatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, boom)

	err := matching.NewService(repo).Categorize(context.Background(), uuid.New(), []transaction.ExpenseParams{{Concept: "x"}})
	assert.ErrorIs(t, err, boom)
}
