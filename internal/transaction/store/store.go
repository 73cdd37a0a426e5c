package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	budgetstore "github.com/MrJamesThe3rd/pocket/internal/budget/store"
	"github.com/MrJamesThe3rd/pocket/internal/database"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
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

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, owner_id, category_id, kind, concept, amount, date, budget_id,
// source_investment_id, created_at, updated_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var t transaction.Transaction

	var kind string

	var sourceID *uuid.UUID

	if err := s.Scan(
		&t.ID, &t.OwnerID, &t.CategoryID, &kind, &t.Concept, &t.Amount, &t.Date,
		&t.BudgetID, &sourceID, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Kind = transaction.Kind(kind)
	t.Date = t.Date.UTC()

	if sourceID != nil {
		t.Deposit = &transaction.Deposit{SourceInvestmentID: *sourceID}
	}

	return &t, nil
}

const selectTransactionColumns = `
	t.id, t.owner_id, t.category_id, t.kind, t.concept, t.amount, t.date,
	t.budget_id, t.source_investment_id, t.created_at, t.updated_at
`

func queryTransactions(ctx context.Context, q database.Querier, query string, args ...any) ([]*transaction.Transaction, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func getTransaction(ctx context.Context, q database.Querier, query string, id uuid.UUID) (*transaction.Transaction, error) {
	t, err := scanTransaction(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return t, nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return getTransaction(ctx, s.db, `SELECT `+selectTransactionColumns+` FROM transactions t WHERE t.id = $1`, id)
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.owner_id = $1`

	args := []any{filter.OwnerID}
	argIdx := 2

	if len(filter.CategoryIDs) > 0 {
		query += fmt.Sprintf(" AND t.category_id = ANY($%d)", argIdx)

		args = append(args, filter.CategoryIDs)
		argIdx++
	}

	if filter.From != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.From)
		argIdx++
	}

	if filter.Until != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.Until)
		argIdx++
	}

	if filter.Kind != nil {
		query += fmt.Sprintf(" AND t.kind = $%d", argIdx)

		args = append(args, string(*filter.Kind))
		argIdx++
	}

	if filter.SourceInvestmentID != nil {
		query += fmt.Sprintf(" AND t.source_investment_id = $%d", argIdx)

		args = append(args, *filter.SourceInvestmentID)
	}

	query += " ORDER BY t.date ASC, t.created_at ASC"

	txs, err := queryTransactions(ctx, s.db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) Begin(ctx context.Context) (transaction.Tx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction tx: %w", err)
	}

	return Wrap(dbTx), nil
}

// Tx implements transaction.Tx on top of a *sql.Tx. Other stores embed it to
// write ledger entries inside their own database transaction.
type Tx struct {
	tx *sql.Tx
}

func Wrap(tx *sql.Tx) *Tx {
	return &Tx{tx: tx}
}

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }

func (t *Tx) LockOwnerCategory(ctx context.Context, owner, categoryID uuid.UUID) error {
	return budgetstore.LockOwnerCategory(ctx, t.tx, owner, categoryID)
}

func (t *Tx) FindBudgetsContainingDate(ctx context.Context, owner, categoryID uuid.UUID, date time.Time) ([]*budget.Budget, error) {
	return budgetstore.BudgetsContainingDate(ctx, t.tx, owner, categoryID, date)
}

func (t *Tx) AdjustBudgetAmount(ctx context.Context, budgetID uuid.UUID, delta int64) error {
	return budgetstore.AdjustAmount(ctx, t.tx, budgetID, delta)
}

func (t *Tx) GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return getTransaction(ctx, t.tx, `SELECT `+selectTransactionColumns+` FROM transactions t WHERE t.id = $1 FOR UPDATE`, id)
}

func (t *Tx) CreateTransaction(ctx context.Context, tr *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (owner_id, category_id, kind, concept, amount, date, budget_id, source_investment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at`

	var sourceID *uuid.UUID
	if id, ok := tr.SourceInvestmentID(); ok {
		sourceID = &id
	}

	err := t.tx.QueryRowContext(ctx, query,
		tr.OwnerID,
		tr.CategoryID,
		string(tr.Kind),
		tr.Concept,
		tr.Amount,
		tr.Date,
		tr.BudgetID,
		sourceID,
	).Scan(&tr.ID, &tr.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (t *Tx) UpdateTransaction(ctx context.Context, tr *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET category_id = $1, concept = $2, amount = $3, date = $4, budget_id = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at`

	err := t.tx.QueryRowContext(ctx, query,
		tr.CategoryID,
		tr.Concept,
		tr.Amount,
		tr.Date,
		tr.BudgetID,
		tr.ID,
	).Scan(&tr.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return transaction.ErrNotFound
		}

		return fmt.Errorf("updating transaction: %w", err)
	}

	return nil
}

func (t *Tx) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if _, err := t.tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return nil
}

func (t *Tx) ListInDateRange(ctx context.Context, owner uuid.UUID, from, until time.Time) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.owner_id = $1 AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date ASC`

	txs, err := queryTransactions(ctx, t.tx, query, owner, from, until)
	if err != nil {
		return nil, fmt.Errorf("listing transactions in range: %w", err)
	}

	return txs, nil
}

// SQL exposes the underlying database transaction.
func (t *Tx) SQL() *sql.Tx {
	return t.tx
}
