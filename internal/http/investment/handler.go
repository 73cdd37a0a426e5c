package investment

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/http/api"
	httptransaction "github.com/MrJamesThe3rd/pocket/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocket/internal/investment"
)

type Handler struct {
	svc *investment.Service
}

func NewHandler(svc *investment.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
	r.Get("/{id}/deposits", h.deposits)
}

type scheduleResponse struct {
	NextFireTime   time.Time `json:"next_fire_time"`
	RemainingCount int       `json:"remaining_count"`
}

type investmentResponse struct {
	ID                    uuid.UUID         `json:"id"`
	CategoryID            uuid.UUID         `json:"category_id"`
	Name                  string            `json:"name"`
	DownPaymentAmount     int64             `json:"down_payment_amount"`
	DownPaymentTimestamp  time.Time         `json:"down_payment_timestamp"`
	DepositAmount         int64             `json:"deposit_amount"`
	MaxNumberOfDeposits   int               `json:"max_number_of_deposits"`
	DepositIntervalInDays int               `json:"deposit_interval_in_days"`
	CreatedAt             time.Time         `json:"created_at"`
	FirstFireTime         time.Time         `json:"first_fire_time"`
	LastFireTime          time.Time         `json:"last_fire_time"`
	Scheduled             *bool             `json:"scheduled,omitempty"`
	Schedule              *scheduleResponse `json:"schedule,omitempty"`
}

func toResponse(inv *investment.Investment) investmentResponse {
	return investmentResponse{
		ID:                    inv.ID,
		CategoryID:            inv.CategoryID,
		Name:                  inv.Name,
		DownPaymentAmount:     inv.DownPaymentAmount,
		DownPaymentTimestamp:  inv.DownPaymentTimestamp,
		DepositAmount:         inv.DepositAmount,
		MaxNumberOfDeposits:   inv.MaxNumberOfDeposits,
		DepositIntervalInDays: inv.DepositIntervalInDays,
		CreatedAt:             inv.CreatedAt,
		FirstFireTime:         inv.FirstFireTime(),
		LastFireTime:          inv.LastFireTime(),
	}
}

type createInvestmentRequest struct {
	Name                  string    `json:"name"`
	CategoryName          string    `json:"category_name"`
	IconID                int       `json:"icon_id"`
	DownPaymentAmount     int64     `json:"down_payment_amount"`
	DownPaymentTimestamp  time.Time `json:"down_payment_timestamp"`
	DepositAmount         int64     `json:"deposit_amount"`
	MaxNumberOfDeposits   int       `json:"max_number_of_deposits"`
	DepositIntervalInDays int       `json:"deposit_interval_in_days"`
}

// create answers 201 even when the schedule could not be registered; the
// response then carries "scheduled": false.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Create(r.Context(), api.Owner(r), investment.CreateParams{
		Name:                  req.Name,
		CategoryName:          req.CategoryName,
		IconID:                req.IconID,
		DownPaymentAmount:     req.DownPaymentAmount,
		DownPaymentTimestamp:  req.DownPaymentTimestamp,
		DepositAmount:         req.DepositAmount,
		MaxNumberOfDeposits:   req.MaxNumberOfDeposits,
		DepositIntervalInDays: req.DepositIntervalInDays,
	})
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp := toResponse(summary.Investment)
	resp.Scheduled = &summary.Scheduled

	api.WriteJSON(w, http.StatusCreated, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	owner := api.Owner(r)

	inv, err := h.svc.Get(r.Context(), owner, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	sched, err := h.svc.Schedule(r.Context(), owner, id)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp := toResponse(inv)

	if sched != nil {
		resp.Schedule = &scheduleResponse{NextFireTime: sched.NextFireTime, RemainingCount: sched.RemainingCount}
	}

	api.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), api.Owner(r), id); err != nil {
		api.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deposits(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	txs, err := h.svc.Deposits(r.Context(), api.Owner(r), id)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, httptransaction.ToResponseList(txs))
}
