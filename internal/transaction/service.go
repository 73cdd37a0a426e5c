package transaction

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/common"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is a store transaction. A ledger write and the budget amount adjustment
// it causes always go through the same Tx.
type Tx interface {
	LockOwnerCategory(ctx context.Context, owner, categoryID uuid.UUID) error
	FindBudgetsContainingDate(ctx context.Context, owner, categoryID uuid.UUID, date time.Time) ([]*budget.Budget, error)
	AdjustBudgetAmount(ctx context.Context, budgetID uuid.UUID, delta int64) error

	GetTransactionForUpdate(ctx context.Context, id uuid.UUID) (*Transaction, error)
	CreateTransaction(ctx context.Context, t *Transaction) error
	UpdateTransaction(ctx context.Context, t *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListInDateRange(ctx context.Context, owner uuid.UUID, from, until time.Time) ([]*Transaction, error)

	Commit() error
	Rollback() error
}

type CategoryResolver interface {
	ResolveOrCreate(ctx context.Context, owner uuid.UUID, name string, iconID int) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryResolver
}

func NewService(repo Repository, categories CategoryResolver) *Service {
	return &Service{repo: repo, categories: categories}
}

type ExpenseParams struct {
	Concept      string
	Amount       int64
	Date         time.Time
	CategoryName string
	IconID       int
}

type CategoryRef struct {
	Name   string
	IconID int
}

// EditParams carries a partial edit; nil fields keep their current value.
type EditParams struct {
	Concept  *string
	Amount   *int64
	Date     *time.Time
	Category *CategoryRef
}

type ListFilter struct {
	OwnerID            uuid.UUID
	CategoryIDs        []uuid.UUID
	From               *time.Time
	Until              *time.Time
	Kind               *Kind
	SourceInvestmentID *uuid.UUID
}

// AddExpense records a user expense and links it to the budget active at its date.
func (s *Service) AddExpense(ctx context.Context, owner uuid.UUID, params ExpenseParams) (*Transaction, error) {
	cat, err := s.categories.ResolveOrCreate(ctx, owner, params.CategoryName, params.IconID)
	if err != nil {
		return nil, fmt.Errorf("resolving category: %w", err)
	}

	t := NewExpense(owner, cat.ID, params.Concept, params.Amount, params.Date)
	if err := t.validate(); err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin add expense: %w", err)
	}
	defer tx.Rollback()

	if err := s.Record(ctx, tx, t); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add expense: %w", err)
	}

	return t, nil
}

// Record inserts t inside a store transaction owned by the caller, linking it
// to the active budget of its category and adding its amount to that budget.
func (s *Service) Record(ctx context.Context, tx Tx, t *Transaction) error {
	if err := t.validate(); err != nil {
		return err
	}

	if err := tx.LockOwnerCategory(ctx, t.OwnerID, t.CategoryID); err != nil {
		return fmt.Errorf("locking category: %w", err)
	}

	b, err := activeBudget(ctx, tx, t)
	if err != nil {
		return err
	}

	t.BudgetID = budgetID(b)

	if err := tx.CreateTransaction(ctx, t); err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	if b != nil {
		if err := tx.AdjustBudgetAmount(ctx, b.ID, t.Amount); err != nil {
			return fmt.Errorf("adjusting budget %s: %w", b.ID, err)
		}
	}

	return nil
}

func activeBudget(ctx context.Context, tx Tx, t *Transaction) (*budget.Budget, error) {
	candidates, err := tx.FindBudgetsContainingDate(ctx, t.OwnerID, t.CategoryID, t.Date)
	if err != nil {
		return nil, fmt.Errorf("finding active budget: %w", err)
	}

	return budget.PickActive(candidates), nil
}

func budgetID(b *budget.Budget) *uuid.UUID {
	if b == nil {
		return nil
	}

	return &b.ID
}

func sameBudget(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}

// Edit applies a partial edit. A change of amount, date or category moves the
// transaction to the budget active for the new values and keeps both
// budgets' running totals in step.
func (s *Service) Edit(ctx context.Context, owner, id uuid.UUID, params EditParams) (*Transaction, error) {
	current, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	categoryID := current.CategoryID

	if params.Category != nil {
		cat, err := s.categories.ResolveOrCreate(ctx, owner, params.Category.Name, params.Category.IconID)
		if err != nil {
			return nil, fmt.Errorf("resolving category: %w", err)
		}

		categoryID = cat.ID
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin edit transaction: %w", err)
	}
	defer tx.Rollback()

	if err := lockCategories(ctx, tx, owner, current.CategoryID, categoryID); err != nil {
		return nil, err
	}

	t, err := lockedTransaction(ctx, tx, owner, id, current.CategoryID, categoryID)
	if err != nil {
		return nil, err
	}

	if params.Category == nil {
		categoryID = t.CategoryID
	}

	old := *t

	if params.Concept != nil {
		t.Concept = strings.TrimSpace(*params.Concept)
	}

	if params.Amount != nil {
		t.Amount = *params.Amount
	}

	if params.Date != nil {
		t.Date = common.DateOnly(*params.Date)
	}

	t.CategoryID = categoryID

	if err := t.validate(); err != nil {
		return nil, err
	}

	if err := relink(ctx, tx, t, &old); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit edit transaction: %w", err)
	}

	return t, nil
}

// relink persists the edited t and moves its amount between budgets when the
// edit changed which budget it belongs to.
func relink(ctx context.Context, tx Tx, t, old *Transaction) error {
	if t.Amount == old.Amount && t.Date.Equal(old.Date) && t.CategoryID == old.CategoryID {
		if err := tx.UpdateTransaction(ctx, t); err != nil {
			return fmt.Errorf("updating transaction: %w", err)
		}

		return nil
	}

	b, err := activeBudget(ctx, tx, t)
	if err != nil {
		return err
	}

	newBudgetID := budgetID(b)

	if sameBudget(old.BudgetID, newBudgetID) {
		if err := tx.UpdateTransaction(ctx, t); err != nil {
			return fmt.Errorf("updating transaction: %w", err)
		}

		if delta := t.Amount - old.Amount; delta != 0 && old.BudgetID != nil {
			if err := tx.AdjustBudgetAmount(ctx, *old.BudgetID, delta); err != nil {
				return fmt.Errorf("adjusting budget %s: %w", *old.BudgetID, err)
			}
		}

		return nil
	}

	if old.BudgetID != nil {
		if err := tx.AdjustBudgetAmount(ctx, *old.BudgetID, -old.Amount); err != nil {
			return fmt.Errorf("adjusting budget %s: %w", *old.BudgetID, err)
		}
	}

	t.BudgetID = newBudgetID

	if err := tx.UpdateTransaction(ctx, t); err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if newBudgetID != nil {
		if err := tx.AdjustBudgetAmount(ctx, *newBudgetID, t.Amount); err != nil {
			return fmt.Errorf("adjusting budget %s: %w", *newBudgetID, err)
		}
	}

	return nil
}

// Delete removes a transaction and takes its amount off its budget.
func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	current, err := s.Get(ctx, owner, id)
	if err != nil {
		return err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if err := tx.LockOwnerCategory(ctx, owner, current.CategoryID); err != nil {
		return fmt.Errorf("locking category: %w", err)
	}

	t, err := lockedTransaction(ctx, tx, owner, id, current.CategoryID)
	if err != nil {
		return err
	}

	if t.BudgetID != nil {
		if err := tx.AdjustBudgetAmount(ctx, *t.BudgetID, -t.Amount); err != nil {
			return fmt.Errorf("adjusting budget %s: %w", *t.BudgetID, err)
		}
	}

	if err := tx.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete transaction: %w", err)
	}

	return nil
}

// lockedTransaction reads the row under lock. The category is read again from
// the locked row; when a concurrent edit moved it since the unlocked read, the
// category it now belongs to is locked too.
func lockedTransaction(ctx context.Context, tx Tx, owner, id uuid.UUID, locked ...uuid.UUID) (*Transaction, error) {
	t, err := tx.GetTransactionForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.OwnerID != owner {
		return nil, common.ErrAccessDenied
	}

	if !slices.Contains(locked, t.CategoryID) {
		if err := tx.LockOwnerCategory(ctx, owner, t.CategoryID); err != nil {
			return nil, fmt.Errorf("locking category: %w", err)
		}
	}

	return t, nil
}

func (s *Service) Get(ctx context.Context, owner, id uuid.UUID) (*Transaction, error) {
	t, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.OwnerID != owner {
		return nil, common.ErrAccessDenied
	}

	return t, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// lockCategories takes the advisory locks of all given categories in a fixed
// order so two writers touching the same pair cannot deadlock.
func lockCategories(ctx context.Context, tx Tx, owner uuid.UUID, categoryIDs ...uuid.UUID) error {
	ids := slices.Clone(categoryIDs)
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })
	ids = slices.Compact(ids)

	for _, id := range ids {
		if err := tx.LockOwnerCategory(ctx, owner, id); err != nil {
			return fmt.Errorf("locking category: %w", err)
		}
	}

	return nil
}
