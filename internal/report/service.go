package report

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/MrJamesThe3rd/pocket/internal/common"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	SumByCategory(ctx context.Context, filter Filter) ([]CategoryTotal, error)
	SumByYear(ctx context.Context, filter Filter) ([]YearTotal, error)
}

type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	repo         Repository
	transactions TransactionLister
}

func NewService(repo Repository, transactions TransactionLister) *Service {
	return &Service{repo: repo, transactions: transactions}
}

func normalize(filter Filter) (Filter, error) {
	if filter.From != nil {
		filter.From = new(common.DateOnly(*filter.From))
	}

	if filter.Until != nil {
		filter.Until = new(common.DateOnly(*filter.Until))
	}

	if filter.From != nil && filter.Until != nil && filter.From.After(*filter.Until) {
		return Filter{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange,
			filter.From.Format("2006-01-02"), filter.Until.Format("2006-01-02"))
	}

	return filter, nil
}

// SumByCategory totals transaction amounts per category, largest first.
// Equal totals are ordered by category name.
func (s *Service) SumByCategory(ctx context.Context, filter Filter) ([]CategoryTotal, error) {
	filter, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.SumByCategory(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("summing by category: %w", err)
	}

	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return cmp.Or(cmp.Compare(b.Total, a.Total), cmp.Compare(a.Name, b.Name))
	})

	return totals, nil
}

// SumByYear totals transaction amounts per calendar year, oldest first.
func (s *Service) SumByYear(ctx context.Context, filter Filter) ([]YearTotal, error) {
	filter, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.SumByYear(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("summing by year: %w", err)
	}

	slices.SortFunc(totals, func(a, b YearTotal) int { return cmp.Compare(a.Year, b.Year) })

	return totals, nil
}

func (s *Service) ListTransactions(ctx context.Context, filter Filter) ([]*transaction.Transaction, error) {
	filter, err := normalize(filter)
	if err != nil {
		return nil, err
	}

	return s.transactions.List(ctx, transaction.ListFilter{
		OwnerID:     filter.OwnerID,
		CategoryIDs: filter.CategoryIDs,
		From:        filter.From,
		Until:       filter.Until,
		Kind:        filter.Kind,
	})
}
