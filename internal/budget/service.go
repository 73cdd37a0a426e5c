package budget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/common"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	FindBudgetsContainingDate(ctx context.Context, owner, categoryID uuid.UUID, date time.Time) ([]*Budget, error)

	Begin(ctx context.Context) (Tx, error)
}

// Tx is a store transaction. Window checks, budget writes and transaction
// (un)linking done through one Tx commit or roll back together.
type Tx interface {
	LockOwnerCategory(ctx context.Context, owner, categoryID uuid.UUID) error
	GetBudgetForUpdate(ctx context.Context, id uuid.UUID) (*Budget, error)
	FindOverlappingBudgets(ctx context.Context, owner, categoryID uuid.UUID, start, limit time.Time) ([]*Budget, error)
	CreateBudget(ctx context.Context, b *Budget) error
	UpdateBudget(ctx context.Context, b *Budget) error
	DeleteBudget(ctx context.Context, id uuid.UUID) error

	FindUnlinkedTransactions(ctx context.Context, owner, categoryID uuid.UUID, start, limit time.Time) ([]LinkCandidate, error)
	LinkTransactions(ctx context.Context, budgetID uuid.UUID, transactionIDs []uuid.UUID) error
	UnlinkTransactions(ctx context.Context, budgetID uuid.UUID) error
	UnlinkTransactionsOutside(ctx context.Context, budgetID uuid.UUID, start, limit time.Time) error
	SumLinkedAmounts(ctx context.Context, budgetID uuid.UUID) (int64, error)

	Commit() error
	Rollback() error
}

type CategoryResolver interface {
	ResolveOrCreate(ctx context.Context, owner uuid.UUID, name string, iconID int) (*category.Category, error)
}

// LinkCandidate is a transaction without a budget that may be attached to one.
type LinkCandidate struct {
	ID     uuid.UUID
	Amount int64
}

type Service struct {
	repo       Repository
	categories CategoryResolver
}

func NewService(repo Repository, categories CategoryResolver) *Service {
	return &Service{repo: repo, categories: categories}
}

type CreateParams struct {
	Name         string
	CategoryName string
	IconID       int
	LimitAmount  int64
	StartingDate time.Time
	LimitDate    time.Time
}

// EditParams carries a partial edit; nil fields keep their current value.
type EditParams struct {
	Name         *string
	LimitAmount  *int64
	StartingDate *time.Time
	LimitDate    *time.Time
}

type Summary struct {
	Budget             *Budget
	LinkedTransactions int
}

func validateWindow(limitAmount int64, start, limit time.Time) error {
	if limitAmount <= 0 {
		return fmt.Errorf("%w: limit amount must be positive", common.ErrInvalidInput)
	}

	if limit.Before(start) {
		return fmt.Errorf("%w: limit date %s is before starting date %s",
			common.ErrInvalidInput, limit.Format(time.DateOnly), start.Format(time.DateOnly))
	}

	return nil
}

// Add creates a budget unless its window overlaps another budget of the same
// owner and category. Transactions of that category already dated inside the
// window and not attached to any budget are linked to the new one.
func (s *Service) Add(ctx context.Context, owner uuid.UUID, params CreateParams) (*Summary, error) {
	start := common.DateOnly(params.StartingDate)
	limit := common.DateOnly(params.LimitDate)

	if err := validateWindow(params.LimitAmount, start, limit); err != nil {
		return nil, err
	}

	cat, err := s.categories.ResolveOrCreate(ctx, owner, params.CategoryName, params.IconID)
	if err != nil {
		return nil, fmt.Errorf("resolving category: %w", err)
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin add budget: %w", err)
	}
	defer tx.Rollback()

	if err := tx.LockOwnerCategory(ctx, owner, cat.ID); err != nil {
		return nil, fmt.Errorf("locking category: %w", err)
	}

	overlapping, err := tx.FindOverlappingBudgets(ctx, owner, cat.ID, start, limit)
	if err != nil {
		return nil, fmt.Errorf("finding overlapping budgets: %w", err)
	}

	if len(overlapping) > 0 {
		return nil, conflictError(overlapping[0])
	}

	b := &Budget{
		OwnerID:      owner,
		CategoryID:   cat.ID,
		Name:         strings.TrimSpace(params.Name),
		LimitAmount:  params.LimitAmount,
		StartingDate: start,
		LimitDate:    limit,
	}
	if err := tx.CreateBudget(ctx, b); err != nil {
		return nil, fmt.Errorf("creating budget: %w", err)
	}

	linked, err := linkUnattached(ctx, tx, b)
	if err != nil {
		return nil, err
	}

	if linked > 0 {
		if err := tx.UpdateBudget(ctx, b); err != nil {
			return nil, fmt.Errorf("updating budget amount: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit add budget: %w", err)
	}

	slog.Info("budget created", "budget", b.ID, "owner", owner, "category", cat.ID, "linked", linked)

	return &Summary{Budget: b, LinkedTransactions: linked}, nil
}

// linkUnattached links the unattached transactions inside b's window and adds
// their amounts to b.CurrentAmount.
func linkUnattached(ctx context.Context, tx Tx, b *Budget) (int, error) {
	candidates, err := tx.FindUnlinkedTransactions(ctx, b.OwnerID, b.CategoryID, b.StartingDate, b.LimitDate)
	if err != nil {
		return 0, fmt.Errorf("finding transactions to link: %w", err)
	}

	if len(candidates) == 0 {
		return 0, nil
	}

	ids := make([]uuid.UUID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
		b.CurrentAmount += c.Amount
	}

	if err := tx.LinkTransactions(ctx, b.ID, ids); err != nil {
		return 0, fmt.Errorf("linking transactions: %w", err)
	}

	return len(ids), nil
}

func conflictError(existing *Budget) error {
	return fmt.Errorf("%w: overlaps budget %s (%s to %s)", ErrConflictingBudget, existing.ID,
		existing.StartingDate.Format(time.DateOnly), existing.LimitDate.Format(time.DateOnly))
}

// Edit applies a partial edit. Moving the window re-checks overlaps and
// re-links transactions so the running total keeps matching the linked rows.
func (s *Service) Edit(ctx context.Context, owner, id uuid.UUID, params EditParams) (*Budget, error) {
	current, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin edit budget: %w", err)
	}
	defer tx.Rollback()

	if err := tx.LockOwnerCategory(ctx, owner, current.CategoryID); err != nil {
		return nil, fmt.Errorf("locking category: %w", err)
	}

	b, err := tx.GetBudgetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	oldStart, oldLimit := b.StartingDate, b.LimitDate

	if params.Name != nil {
		b.Name = strings.TrimSpace(*params.Name)
	}

	if params.LimitAmount != nil {
		b.LimitAmount = *params.LimitAmount
	}

	if params.StartingDate != nil {
		b.StartingDate = common.DateOnly(*params.StartingDate)
	}

	if params.LimitDate != nil {
		b.LimitDate = common.DateOnly(*params.LimitDate)
	}

	if err := validateWindow(b.LimitAmount, b.StartingDate, b.LimitDate); err != nil {
		return nil, err
	}

	if !b.StartingDate.Equal(oldStart) || !b.LimitDate.Equal(oldLimit) {
		if err := s.moveWindow(ctx, tx, b); err != nil {
			return nil, err
		}
	}

	if err := tx.UpdateBudget(ctx, b); err != nil {
		return nil, fmt.Errorf("updating budget: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit edit budget: %w", err)
	}

	return b, nil
}

func (s *Service) moveWindow(ctx context.Context, tx Tx, b *Budget) error {
	overlapping, err := tx.FindOverlappingBudgets(ctx, b.OwnerID, b.CategoryID, b.StartingDate, b.LimitDate)
	if err != nil {
		return fmt.Errorf("finding overlapping budgets: %w", err)
	}

	for _, other := range overlapping {
		if other.ID != b.ID {
			return conflictError(other)
		}
	}

	if err := tx.UnlinkTransactionsOutside(ctx, b.ID, b.StartingDate, b.LimitDate); err != nil {
		return fmt.Errorf("unlinking transactions: %w", err)
	}

	if _, err := linkUnattached(ctx, tx, b); err != nil {
		return err
	}

	total, err := tx.SumLinkedAmounts(ctx, b.ID)
	if err != nil {
		return fmt.Errorf("summing linked transactions: %w", err)
	}

	b.CurrentAmount = total

	return nil
}

// Delete removes a budget. Its transactions stay in the ledger, unlinked.
func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	current, err := s.Get(ctx, owner, id)
	if err != nil {
		return err
	}

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete budget: %w", err)
	}
	defer tx.Rollback()

	if err := tx.LockOwnerCategory(ctx, owner, current.CategoryID); err != nil {
		return fmt.Errorf("locking category: %w", err)
	}

	if err := tx.UnlinkTransactions(ctx, id); err != nil {
		return fmt.Errorf("unlinking transactions: %w", err)
	}

	if err := tx.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete budget: %w", err)
	}

	return nil
}

func (s *Service) Get(ctx context.Context, owner, id uuid.UUID) (*Budget, error) {
	b, err := s.repo.GetBudget(ctx, id)
	if err != nil {
		return nil, err
	}

	if b.OwnerID != owner {
		return nil, common.ErrAccessDenied
	}

	return b, nil
}

// Active returns the budget of the category whose window contains date, or nil.
func (s *Service) Active(ctx context.Context, owner, categoryID uuid.UUID, date time.Time) (*Budget, error) {
	candidates, err := s.repo.FindBudgetsContainingDate(ctx, owner, categoryID, common.DateOnly(date))
	if err != nil {
		return nil, fmt.Errorf("finding active budget: %w", err)
	}

	if len(candidates) > 1 {
		slog.Warn("overlapping budgets found", "owner", owner, "category", categoryID, "count", len(candidates))
	}

	return PickActive(candidates), nil
}
