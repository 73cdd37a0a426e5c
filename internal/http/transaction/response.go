package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/http/api"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

// Response is the wire form of a ledger entry, shared by the handlers that
// return transactions.
type Response struct {
	ID                 uuid.UUID        `json:"id"`
	Kind               transaction.Kind `json:"kind"`
	CategoryID         uuid.UUID        `json:"category_id"`
	Concept            string           `json:"concept"`
	Amount             int64            `json:"amount"`
	Date               api.Date         `json:"date"`
	BudgetID           *uuid.UUID       `json:"budget_id,omitempty"`
	SourceInvestmentID *uuid.UUID       `json:"source_investment_id,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          *time.Time       `json:"updated_at,omitempty"`
}

func ToResponse(tx *transaction.Transaction) Response {
	resp := Response{
		ID:         tx.ID,
		Kind:       tx.Kind,
		CategoryID: tx.CategoryID,
		Concept:    tx.Concept,
		Amount:     tx.Amount,
		Date:       api.Date{Time: tx.Date},
		BudgetID:   tx.BudgetID,
		CreatedAt:  tx.CreatedAt,
		UpdatedAt:  tx.UpdatedAt,
	}

	if id, ok := tx.SourceInvestmentID(); ok {
		resp.SourceInvestmentID = &id
	}

	return resp
}

func ToResponseList(txs []*transaction.Transaction) []Response {
	resp := make([]Response, len(txs))
	for i, tx := range txs {
		resp[i] = ToResponse(tx)
	}

	return resp
}

// ExpenseDTO is an expense that has not been recorded yet.
type ExpenseDTO struct {
	Concept      string   `json:"concept"`
	Amount       int64    `json:"amount"`
	Date         api.Date `json:"date"`
	CategoryName string   `json:"category_name"`
	IconID       int      `json:"icon_id"`
}

func (d ExpenseDTO) Params() transaction.ExpenseParams {
	return transaction.ExpenseParams{
		Concept:      d.Concept,
		Amount:       d.Amount,
		Date:         d.Date.Time,
		CategoryName: d.CategoryName,
		IconID:       d.IconID,
	}
}

func ToExpenseDTO(p transaction.ExpenseParams) ExpenseDTO {
	return ExpenseDTO{
		Concept:      p.Concept,
		Amount:       p.Amount,
		Date:         api.Date{Time: p.Date},
		CategoryName: p.CategoryName,
		IconID:       p.IconID,
	}
}
