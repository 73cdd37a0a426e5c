package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/common"
)

type ImportResult struct {
	Imported  []*Transaction
	New       []ExpenseParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming ExpenseParams
	Existing *Transaction
}

type dupKey struct {
	Date    string
	Amount  int64
	Concept string
}

func keyOf(date time.Time, amount int64, concept string) dupKey {
	return dupKey{
		Date:    date.Format(time.DateOnly),
		Amount:  amount,
		Concept: strings.ToLower(strings.TrimSpace(concept)),
	}
}

// ImportExpenses records a batch of expenses in one store transaction. When
// any row looks like an expense already in the ledger (same day, amount and
// concept) nothing is written and the batch comes back split into new rows
// and conflicts for the caller to confirm.
func (s *Service) ImportExpenses(ctx context.Context, owner uuid.UUID, params []ExpenseParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	txs, err := s.prepareBatch(ctx, owner, params)
	if err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(txs)

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	existing, err := tx.ListInDateRange(ctx, owner, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Transaction, len(existing))
	for _, e := range existing {
		lookup[keyOf(e.Date, e.Amount, e.Concept)] = e
	}

	var newParams []ExpenseParams

	var conflicts []Conflict

	for i, t := range txs {
		if e, found := lookup[keyOf(t.Date, t.Amount, t.Concept)]; found {
			conflicts = append(conflicts, Conflict{Incoming: params[i], Existing: e})
			continue
		}

		newParams = append(newParams, params[i])
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	if err := s.recordBatch(ctx, tx, owner, txs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// CreateExpenses records a confirmed batch without duplicate detection.
func (s *Service) CreateExpenses(ctx context.Context, owner uuid.UUID, params []ExpenseParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs, err := s.prepareBatch(ctx, owner, params)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	if err := s.recordBatch(ctx, tx, owner, txs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

// prepareBatch resolves the categories of a batch once per distinct key and
// validates every row before anything is written.
func (s *Service) prepareBatch(ctx context.Context, owner uuid.UUID, params []ExpenseParams) ([]*Transaction, error) {
	type catKey struct {
		Name   string
		IconID int
	}

	resolved := make(map[catKey]uuid.UUID)
	txs := make([]*Transaction, len(params))

	for i, p := range params {
		k := catKey{Name: strings.TrimSpace(p.CategoryName), IconID: p.IconID}

		categoryID, ok := resolved[k]
		if !ok {
			cat, err := s.categories.ResolveOrCreate(ctx, owner, k.Name, k.IconID)
			if err != nil {
				return nil, fmt.Errorf("row %d: resolving category: %w", i+1, err)
			}

			categoryID = cat.ID
			resolved[k] = categoryID
		}

		t := NewExpense(owner, categoryID, p.Concept, p.Amount, p.Date)
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		txs[i] = t
	}

	return txs, nil
}

func (s *Service) recordBatch(ctx context.Context, tx Tx, owner uuid.UUID, txs []*Transaction) error {
	categoryIDs := make([]uuid.UUID, len(txs))
	for i, t := range txs {
		categoryIDs[i] = t.CategoryID
	}

	if err := lockCategories(ctx, tx, owner, categoryIDs...); err != nil {
		return err
	}

	for _, t := range txs {
		if err := s.Record(ctx, tx, t); err != nil {
			return fmt.Errorf("create transactions: %w", err)
		}
	}

	return nil
}

func dateRange(txs []*Transaction) (time.Time, time.Time) {
	minDate := txs[0].Date
	maxDate := txs[0].Date

	for _, t := range txs[1:] {
		if t.Date.Before(minDate) {
			minDate = t.Date
		}

		if t.Date.After(maxDate) {
			maxDate = t.Date
		}
	}

	return common.DateOnly(minDate), common.DateOnly(maxDate)
}
