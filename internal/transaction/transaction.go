package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/common"
)

// Kind tags the variant of a transaction.
type Kind string

const (
	KindExpense Kind = "expense"
	KindDeposit Kind = "deposit"
)

// Deposit is the payload only deposits carry: the investment whose schedule produced them.
type Deposit struct {
	SourceInvestmentID uuid.UUID
}

// Transaction is a ledger entry. Kind selects the variant; Deposit is set
// exactly when Kind is KindDeposit.
type Transaction struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	CategoryID uuid.UUID
	Kind       Kind
	Concept    string
	Amount     int64 // Amount in cents
	Date       time.Time
	BudgetID   *uuid.UUID
	Deposit    *Deposit
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}

func NewExpense(owner, categoryID uuid.UUID, concept string, amount int64, date time.Time) *Transaction {
	return &Transaction{
		OwnerID:    owner,
		CategoryID: categoryID,
		Kind:       KindExpense,
		Concept:    strings.TrimSpace(concept),
		Amount:     amount,
		Date:       common.DateOnly(date),
	}
}

func NewDeposit(owner, categoryID, investmentID uuid.UUID, concept string, amount int64, date time.Time) *Transaction {
	return &Transaction{
		OwnerID:    owner,
		CategoryID: categoryID,
		Kind:       KindDeposit,
		Concept:    strings.TrimSpace(concept),
		Amount:     amount,
		Date:       common.DateOnly(date),
		Deposit:    &Deposit{SourceInvestmentID: investmentID},
	}
}

// SourceInvestmentID returns the investment a deposit came from.
func (t *Transaction) SourceInvestmentID() (uuid.UUID, bool) {
	if t.Deposit == nil {
		return uuid.Nil, false
	}

	return t.Deposit.SourceInvestmentID, true
}

func (t *Transaction) validate() error {
	if t.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", common.ErrInvalidInput)
	}

	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", common.ErrInvalidInput)
	}

	switch t.Kind {
	case KindExpense:
		if t.Deposit != nil {
			return fmt.Errorf("%w: expense carries a deposit payload", common.ErrInvalidInput)
		}
	case KindDeposit:
		if t.Deposit == nil || t.Deposit.SourceInvestmentID == uuid.Nil {
			return fmt.Errorf("%w: deposit without source investment", common.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown transaction kind %q", common.ErrInvalidInput, t.Kind)
	}

	return nil
}
