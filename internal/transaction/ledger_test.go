package transaction_test

import (
	"context"
	"maps"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

// memLedger keeps budgets and transactions in memory. Each Begin works on a
// copy that replaces the committed state on Commit.
type memLedger struct {
	mu      sync.Mutex
	budgets map[uuid.UUID]budget.Budget
	txs     map[uuid.UUID]transaction.Transaction
}

func newMemLedger() *memLedger {
	return &memLedger{
		budgets: make(map[uuid.UUID]budget.Budget),
		txs:     make(map[uuid.UUID]transaction.Transaction),
	}
}

func (m *memLedger) begin() *memLedgerTx {
	m.mu.Lock()
	defer m.mu.Unlock()

	return &memLedgerTx{ledger: m, budgets: maps.Clone(m.budgets), txs: maps.Clone(m.txs)}
}

// assertBalanced checks every budget's running total against its linked rows.
func (m *memLedger) assertBalanced(t *testing.T) {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	sums := make(map[uuid.UUID]int64)

	for _, tr := range m.txs {
		if tr.BudgetID == nil {
			continue
		}

		_, ok := m.budgets[*tr.BudgetID]
		require.True(t, ok, "transaction %s linked to missing budget", tr.ID)
		sums[*tr.BudgetID] += tr.Amount
	}

	for id, b := range m.budgets {
		assert.Equal(t, sums[id], b.CurrentAmount, "budget %s", b.Name)
	}
}

func (m *memLedger) currentAmount(id uuid.UUID) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.budgets[id].CurrentAmount
}

func (m *memLedger) linkedBudget(id uuid.UUID) *uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.txs[id].BudgetID
}

type ledgerRepo struct{ *memLedger }

func (r ledgerRepo) GetTransaction(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tr, ok := r.txs[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return &tr, nil
}

func (r ledgerRepo) ListTransactions(context.Context, transaction.ListFilter) ([]*transaction.Transaction, error) {
	return nil, nil
}

func (r ledgerRepo) Begin(context.Context) (transaction.Tx, error) {
	return r.begin(), nil
}

type budgetRepo struct{ *memLedger }

func (r budgetRepo) GetBudget(_ context.Context, id uuid.UUID) (*budget.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.budgets[id]
	if !ok {
		return nil, budget.ErrNotFound
	}

	return &b, nil
}

func (r budgetRepo) FindBudgetsContainingDate(ctx context.Context, owner, categoryID uuid.UUID, date time.Time) ([]*budget.Budget, error) {
	return r.begin().FindBudgetsContainingDate(ctx, owner, categoryID, date)
}

func (r budgetRepo) Begin(context.Context) (budget.Tx, error) {
	return r.begin(), nil
}

// memLedgerTx serves both the ledger and the budget side of a store transaction.
type memLedgerTx struct {
	ledger  *memLedger
	budgets map[uuid.UUID]budget.Budget
	txs     map[uuid.UUID]transaction.Transaction
}

func (t *memLedgerTx) LockOwnerCategory(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (t *memLedgerTx) FindBudgetsContainingDate(_ context.Context, owner, categoryID uuid.UUID, date time.Time) ([]*budget.Budget, error) {
	var found []*budget.Budget

	for _, b := range t.budgets {
		if b.OwnerID == owner && b.CategoryID == categoryID && b.Contains(date) {
			found = append(found, &b)
		}
	}

	return found, nil
}

func (t *memLedgerTx) AdjustBudgetAmount(_ context.Context, id uuid.UUID, delta int64) error {
	b, ok := t.budgets[id]
	if !ok {
		return budget.ErrNotFound
	}

	b.CurrentAmount += delta
	t.budgets[id] = b

	return nil
}

func (t *memLedgerTx) GetTransactionForUpdate(_ context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	tr, ok := t.txs[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}

	return &tr, nil
}

func (t *memLedgerTx) CreateTransaction(_ context.Context, tr *transaction.Transaction) error {
	tr.ID = uuid.New()
	t.txs[tr.ID] = *tr

	return nil
}

func (t *memLedgerTx) UpdateTransaction(_ context.Context, tr *transaction.Transaction) error {
	t.txs[tr.ID] = *tr
	return nil
}

func (t *memLedgerTx) DeleteTransaction(_ context.Context, id uuid.UUID) error {
	delete(t.txs, id)
	return nil
}

func (t *memLedgerTx) ListInDateRange(context.Context, uuid.UUID, time.Time, time.Time) ([]*transaction.Transaction, error) {
	return nil, nil
}

func (t *memLedgerTx) GetBudgetForUpdate(_ context.Context, id uuid.UUID) (*budget.Budget, error) {
	b, ok := t.budgets[id]
	if !ok {
		return nil, budget.ErrNotFound
	}

	return &b, nil
}

func (t *memLedgerTx) FindOverlappingBudgets(_ context.Context, owner, categoryID uuid.UUID, start, limit time.Time) ([]*budget.Budget, error) {
	var found []*budget.Budget

	for _, b := range t.budgets {
		if b.OwnerID == owner && b.CategoryID == categoryID && b.Overlaps(start, limit) {
			found = append(found, &b)
		}
	}

	return found, nil
}

func (t *memLedgerTx) CreateBudget(_ context.Context, b *budget.Budget) error {
	b.ID = uuid.New()
	t.budgets[b.ID] = *b

	return nil
}

func (t *memLedgerTx) UpdateBudget(_ context.Context, b *budget.Budget) error {
	t.budgets[b.ID] = *b
	return nil
}

func (t *memLedgerTx) DeleteBudget(_ context.Context, id uuid.UUID) error {
	delete(t.budgets, id)
	return nil
}

func (t *memLedgerTx) FindUnlinkedTransactions(_ context.Context, owner, categoryID uuid.UUID, start, limit time.Time) ([]budget.LinkCandidate, error) {
	var found []budget.LinkCandidate

	for _, tr := range t.txs {
		if tr.OwnerID == owner && tr.CategoryID == categoryID && tr.BudgetID == nil &&
			!tr.Date.Before(start) && !tr.Date.After(limit) {
			found = append(found, budget.LinkCandidate{ID: tr.ID, Amount: tr.Amount})
		}
	}

	return found, nil
}

func (t *memLedgerTx) LinkTransactions(_ context.Context, budgetID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		tr := t.txs[id]
		tr.BudgetID = &budgetID
		t.txs[id] = tr
	}

	return nil
}

func (t *memLedgerTx) UnlinkTransactions(_ context.Context, budgetID uuid.UUID) error {
	for id, tr := range t.txs {
		if tr.BudgetID != nil && *tr.BudgetID == budgetID {
			tr.BudgetID = nil
			t.txs[id] = tr
		}
	}

	return nil
}

func (t *memLedgerTx) UnlinkTransactionsOutside(_ context.Context, budgetID uuid.UUID, start, limit time.Time) error {
	for id, tr := range t.txs {
		if tr.BudgetID != nil && *tr.BudgetID == budgetID && (tr.Date.Before(start) || tr.Date.After(limit)) {
			tr.BudgetID = nil
			t.txs[id] = tr
		}
	}

	return nil
}

func (t *memLedgerTx) SumLinkedAmounts(_ context.Context, budgetID uuid.UUID) (int64, error) {
	var sum int64

	for _, tr := range t.txs {
		if tr.BudgetID != nil && *tr.BudgetID == budgetID {
			sum += tr.Amount
		}
	}

	return sum, nil
}

func (t *memLedgerTx) Commit() error {
	t.ledger.mu.Lock()
	defer t.ledger.mu.Unlock()

	t.ledger.budgets = t.budgets
	t.ledger.txs = t.txs

	return nil
}

func (t *memLedgerTx) Rollback() error { return nil }

// catalog resolves categories by name, creating them on first use.
type catalog struct {
	mu    sync.Mutex
	byKey map[string]*category.Category
}

func (c *catalog) ResolveOrCreate(_ context.Context, owner uuid.UUID, name string, iconID int) (*category.Category, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.byKey == nil {
		c.byKey = make(map[string]*category.Category)
	}

	key := owner.String() + "/" + name
	if cat, ok := c.byKey[key]; ok {
		return cat, nil
	}

	cat := &category.Category{ID: uuid.New(), OwnerID: owner, Name: name, IconID: iconID}
	c.byKey[key] = cat

	return cat, nil
}

func TestLedger_BudgetTotalsFollowLinkedTransactions(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	ledger := newMemLedger()
	cats := &catalog{}
	txs := transaction.NewService(ledgerRepo{ledger}, cats)
	budgets := budget.NewService(budgetRepo{ledger}, cats)

	lunch, err := txs.AddExpense(ctx, owner, transaction.ExpenseParams{
		Concept: "lunch", Amount: 1200, Date: day(2024, 3, 5), CategoryName: "Food", IconID: 1,
	})
	require.NoError(t, err)
	assert.Nil(t, lunch.BudgetID)

	march, err := budgets.Add(ctx, owner, budget.CreateParams{
		Name: "March food", CategoryName: "Food", IconID: 1, LimitAmount: 50000,
		StartingDate: day(2024, 3, 1), LimitDate: day(2024, 3, 31),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, march.LinkedTransactions)
	assert.Equal(t, int64(1200), ledger.currentAmount(march.Budget.ID))
	ledger.assertBalanced(t)

	rent, err := budgets.Add(ctx, owner, budget.CreateParams{
		Name: "March rent", CategoryName: "Rent", IconID: 2, LimitAmount: 90000,
		StartingDate: day(2024, 3, 1), LimitDate: day(2024, 3, 31),
	})
	require.NoError(t, err)

	dinner, err := txs.AddExpense(ctx, owner, transaction.ExpenseParams{
		Concept: "dinner", Amount: 3000, Date: day(2024, 3, 20), CategoryName: "Food", IconID: 1,
	})
	require.NoError(t, err)
	require.NotNil(t, dinner.BudgetID)
	assert.Equal(t, int64(4200), ledger.currentAmount(march.Budget.ID))
	ledger.assertBalanced(t)

	steps := []struct {
		name string
		run  func() error
	}{
		{
			name: "AmountChange",
			run: func() error {
				_, err := txs.Edit(ctx, owner, lunch.ID, transaction.EditParams{Amount: new(int64(1500))})
				return err
			},
		},
		{
			name: "CategoryChange",
			run: func() error {
				_, err := txs.Edit(ctx, owner, dinner.ID, transaction.EditParams{
					Category: &transaction.CategoryRef{Name: "Rent", IconID: 2},
				})
				return err
			},
		},
		{
			name: "DateOutOfEveryWindow",
			run: func() error {
				_, err := txs.Edit(ctx, owner, lunch.ID, transaction.EditParams{Date: new(day(2024, 5, 2))})
				return err
			},
		},
		{
			name: "DateBackIntoWindow",
			run: func() error {
				_, err := txs.Edit(ctx, owner, lunch.ID, transaction.EditParams{Date: new(day(2024, 3, 30)), Amount: new(int64(800))})
				return err
			},
		},
		{
			name: "BudgetWindowShrinks",
			run: func() error {
				_, err := budgets.Edit(ctx, owner, march.Budget.ID, budget.EditParams{LimitDate: new(day(2024, 3, 15))})
				return err
			},
		},
		{
			name: "DeleteTransaction",
			run: func() error {
				return txs.Delete(ctx, owner, dinner.ID)
			},
		},
		{
			name: "DeleteBudget",
			run: func() error {
				return budgets.Delete(ctx, owner, march.Budget.ID)
			},
		},
	}

	for _, step := range steps {
		require.NoError(t, step.run(), step.name)
		ledger.assertBalanced(t)
	}

	assert.Nil(t, ledger.linkedBudget(lunch.ID))
	assert.Equal(t, int64(0), ledger.currentAmount(rent.Budget.ID))
}
