package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocket/internal/report"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

func TestService_SumByCategory(t *testing.T) {
	owner := uuid.New()
	food := report.CategoryTotal{CategoryID: uuid.New(), Name: "Food", Total: 5000}
	rent := report.CategoryTotal{CategoryID: uuid.New(), Name: "Rent", Total: 90000}
	gym := report.CategoryTotal{CategoryID: uuid.New(), Name: "Gym", Total: 5000}

	ctrl := gomock.NewController(t)
	repo := report.NewMockRepository(ctrl)
	svc := report.NewService(repo, report.NewMockTransactionLister(ctrl))

	// No categories and no bounds: every category the owner transacted in.
	repo.EXPECT().SumByCategory(gomock.Any(), report.Filter{OwnerID: owner}).
		Return([]report.CategoryTotal{food, rent, gym}, nil)

	got, err := svc.SumByCategory(context.Background(), report.Filter{OwnerID: owner})
	require.NoError(t, err)
	assert.Equal(t, []report.CategoryTotal{rent, food, gym}, got)
}

func TestService_SumByYear(t *testing.T) {
	owner := uuid.New()
	from := time.Date(2022, 3, 4, 15, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	repo := report.NewMockRepository(ctrl)
	svc := report.NewService(repo, report.NewMockTransactionLister(ctrl))

	repo.EXPECT().SumByYear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f report.Filter) ([]report.YearTotal, error) {
			assert.Equal(t, time.Date(2022, 3, 4, 0, 0, 0, 0, time.UTC), *f.From)
			assert.Nil(t, f.Until)
			return []report.YearTotal{{Year: 2024, Total: 10}, {Year: 2022, Total: 30}, {Year: 2023, Total: 20}}, nil
		})

	got, err := svc.SumByYear(context.Background(), report.Filter{OwnerID: owner, From: &from})
	require.NoError(t, err)
	assert.Equal(t, []report.YearTotal{{Year: 2022, Total: 30}, {Year: 2023, Total: 20}, {Year: 2024, Total: 10}}, got)
}

func TestService_InvalidRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := report.NewService(report.NewMockRepository(ctrl), report.NewMockTransactionLister(ctrl))

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	filter := report.Filter{OwnerID: uuid.New(), From: &from, Until: &until}

	_, err := svc.SumByCategory(context.Background(), filter)
	assert.ErrorIs(t, err, report.ErrInvalidRange)

	_, err = svc.SumByYear(context.Background(), filter)
	assert.ErrorIs(t, err, report.ErrInvalidRange)

	_, err = svc.ListTransactions(context.Background(), filter)
	assert.ErrorIs(t, err, report.ErrInvalidRange)
}

func TestService_ListTransactions(t *testing.T) {
	owner := uuid.New()
	cat := uuid.New()
	day := time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC)

	ctrl := gomock.NewController(t)
	lister := report.NewMockTransactionLister(ctrl)
	svc := report.NewService(report.NewMockRepository(ctrl), lister)

	want := []*transaction.Transaction{{ID: uuid.New()}}

	lister.EXPECT().List(gomock.Any(), transaction.ListFilter{
		OwnerID: owner, CategoryIDs: []uuid.UUID{cat}, From: &day, Until: &day,
	}).Return(want, nil)

	got, err := svc.ListTransactions(context.Background(), report.Filter{
		OwnerID: owner, CategoryIDs: []uuid.UUID{cat}, From: &day, Until: &day,
	})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
