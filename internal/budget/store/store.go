package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, owner_id, category_id, name, limit_amount,
// current_amount, starting_date, limit_date, created_at, updated_at
func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget
	if err := s.Scan(
		&b.ID, &b.OwnerID, &b.CategoryID, &b.Name, &b.LimitAmount,
		&b.CurrentAmount, &b.StartingDate, &b.LimitDate, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	b.StartingDate = b.StartingDate.UTC()
	b.LimitDate = b.LimitDate.UTC()

	return &b, nil
}

const selectBudgetColumns = `
	id, owner_id, category_id, name, limit_amount,
	current_amount, starting_date, limit_date, created_at, updated_at
`

func queryBudgets(ctx context.Context, q database.Querier, query string, args ...any) ([]*budget.Budget, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*budget.Budget

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget rows: %w", err)
	}

	return budgets, nil
}

func getBudget(ctx context.Context, q database.Querier, query string, id uuid.UUID) (*budget.Budget, error) {
	b, err := scanBudget(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	return getBudget(ctx, s.db, `SELECT `+selectBudgetColumns+` FROM budgets WHERE id = $1`, id)
}

func (s *Store) FindBudgetsContainingDate(ctx context.Context, owner, categoryID uuid.UUID, date time.Time) ([]*budget.Budget, error) {
	return BudgetsContainingDate(ctx, s.db, owner, categoryID, date)
}

// BudgetsContainingDate lists the budgets of (owner, category) whose window
// includes date.
func BudgetsContainingDate(ctx context.Context, q database.Querier, owner, categoryID uuid.UUID, date time.Time) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets
		WHERE owner_id = $1 AND category_id = $2 AND starting_date <= $3 AND limit_date >= $3
		ORDER BY limit_date ASC, starting_date ASC`

	budgets, err := queryBudgets(ctx, q, query, owner, categoryID, date)
	if err != nil {
		return nil, fmt.Errorf("finding budgets containing %s: %w", date.Format(time.DateOnly), err)
	}

	return budgets, nil
}

// AdjustAmount adds delta to the running total of a budget.
func AdjustAmount(ctx context.Context, q database.Querier, budgetID uuid.UUID, delta int64) error {
	query := `
		UPDATE budgets
		SET current_amount = current_amount + $1, updated_at = NOW()
		WHERE id = $2`

	res, err := q.ExecContext(ctx, query, delta, budgetID)
	if err != nil {
		return fmt.Errorf("adjusting budget amount: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

// LockOwnerCategory takes the transaction-scoped advisory lock of (owner, category).
func LockOwnerCategory(ctx context.Context, q database.Querier, owner, categoryID uuid.UUID) error {
	if _, err := q.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", database.OwnerCategoryLockKey(owner, categoryID)); err != nil {
		return fmt.Errorf("acquiring category lock: %w", err)
	}

	return nil
}

type Tx struct {
	tx *sql.Tx
}

func (s *Store) Begin(ctx context.Context) (budget.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning budget tx: %w", err)
	}

	return &Tx{tx: dbTx}, nil
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

func (t *Tx) LockOwnerCategory(ctx context.Context, owner, categoryID uuid.UUID) error {
	return LockOwnerCategory(ctx, t.tx, owner, categoryID)
}

func (t *Tx) GetBudgetForUpdate(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	return getBudget(ctx, t.tx, `SELECT `+selectBudgetColumns+` FROM budgets WHERE id = $1 FOR UPDATE`, id)
}

func (t *Tx) FindOverlappingBudgets(ctx context.Context, owner, categoryID uuid.UUID, start, limit time.Time) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets
		WHERE owner_id = $1 AND category_id = $2 AND starting_date <= $4 AND limit_date >= $3
		ORDER BY starting_date ASC`

	budgets, err := queryBudgets(ctx, t.tx, query, owner, categoryID, start, limit)
	if err != nil {
		return nil, fmt.Errorf("finding overlapping budgets: %w", err)
	}

	return budgets, nil
}

func (t *Tx) CreateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (owner_id, category_id, name, limit_amount, current_amount, starting_date, limit_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at`

	err := t.tx.QueryRowContext(ctx, query,
		b.OwnerID,
		b.CategoryID,
		b.Name,
		b.LimitAmount,
		b.CurrentAmount,
		b.StartingDate,
		b.LimitDate,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating budget: %w", err)
	}

	return nil
}

func (t *Tx) UpdateBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		UPDATE budgets
		SET name = $1, limit_amount = $2, current_amount = $3, starting_date = $4, limit_date = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	err := t.tx.QueryRowContext(ctx, query,
		b.Name,
		b.LimitAmount,
		b.CurrentAmount,
		b.StartingDate,
		b.LimitDate,
		b.ID,
	).Scan(&b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return budget.ErrNotFound
		}

		return fmt.Errorf("updating budget: %w", err)
	}

	return nil
}

func (t *Tx) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	return nil
}

func (t *Tx) FindUnlinkedTransactions(ctx context.Context, owner, categoryID uuid.UUID, start, limit time.Time) ([]budget.LinkCandidate, error) {
	query := `
		SELECT id, amount
		FROM transactions
		WHERE owner_id = $1 AND category_id = $2 AND budget_id IS NULL AND date >= $3 AND date <= $4
		ORDER BY date ASC
		FOR UPDATE`

	rows, err := t.tx.QueryContext(ctx, query, owner, categoryID, start, limit)
	if err != nil {
		return nil, fmt.Errorf("finding unlinked transactions: %w", err)
	}
	defer rows.Close()

	var candidates []budget.LinkCandidate

	for rows.Next() {
		var c budget.LinkCandidate
		if err := rows.Scan(&c.ID, &c.Amount); err != nil {
			return nil, fmt.Errorf("scanning unlinked transaction: %w", err)
		}

		candidates = append(candidates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating unlinked transactions: %w", err)
	}

	return candidates, nil
}

func (t *Tx) LinkTransactions(ctx context.Context, budgetID uuid.UUID, transactionIDs []uuid.UUID) error {
	query := `
		UPDATE transactions
		SET budget_id = $1, updated_at = NOW()
		WHERE id = ANY($2) AND budget_id IS NULL`

	res, err := t.tx.ExecContext(ctx, query, budgetID, transactionIDs)
	if err != nil {
		return fmt.Errorf("linking transactions: %w", err)
	}

	if n, _ := res.RowsAffected(); n != int64(len(transactionIDs)) {
		return fmt.Errorf("linking transactions: %d of %d rows updated", n, len(transactionIDs))
	}

	return nil
}

func (t *Tx) UnlinkTransactions(ctx context.Context, budgetID uuid.UUID) error {
	query := `UPDATE transactions SET budget_id = NULL, updated_at = NOW() WHERE budget_id = $1`

	if _, err := t.tx.ExecContext(ctx, query, budgetID); err != nil {
		return fmt.Errorf("unlinking transactions: %w", err)
	}

	return nil
}

func (t *Tx) UnlinkTransactionsOutside(ctx context.Context, budgetID uuid.UUID, start, limit time.Time) error {
	query := `
		UPDATE transactions
		SET budget_id = NULL, updated_at = NOW()
		WHERE budget_id = $1 AND (date < $2 OR date > $3)`

	if _, err := t.tx.ExecContext(ctx, query, budgetID, start, limit); err != nil {
		return fmt.Errorf("unlinking transactions outside window: %w", err)
	}

	return nil
}

func (t *Tx) SumLinkedAmounts(ctx context.Context, budgetID uuid.UUID) (int64, error) {
	var total int64

	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE budget_id = $1`
	if err := t.tx.QueryRowContext(ctx, query, budgetID).Scan(&total); err != nil {
		return 0, fmt.Errorf("summing linked amounts: %w", err)
	}

	return total, nil
}
