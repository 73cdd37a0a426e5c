package budget

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/http/api"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/active", h.active)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type budgetResponse struct {
	ID            uuid.UUID  `json:"id"`
	CategoryID    uuid.UUID  `json:"category_id"`
	Name          string     `json:"name"`
	LimitAmount   int64      `json:"limit_amount"`
	CurrentAmount int64      `json:"current_amount"`
	Remaining     int64      `json:"remaining"`
	StartingDate  api.Date   `json:"starting_date"`
	LimitDate     api.Date   `json:"limit_date"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:            b.ID,
		CategoryID:    b.CategoryID,
		Name:          b.Name,
		LimitAmount:   b.LimitAmount,
		CurrentAmount: b.CurrentAmount,
		Remaining:     b.Remaining(),
		StartingDate:  api.Date{Time: b.StartingDate},
		LimitDate:     api.Date{Time: b.LimitDate},
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

type createBudgetRequest struct {
	Name         string   `json:"name"`
	CategoryName string   `json:"category_name"`
	IconID       int      `json:"icon_id"`
	LimitAmount  int64    `json:"limit_amount"`
	StartingDate api.Date `json:"starting_date"`
	LimitDate    api.Date `json:"limit_date"`
}

type createBudgetResponse struct {
	Budget             budgetResponse `json:"budget"`
	LinkedTransactions int            `json:"linked_transactions"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.svc.Add(r.Context(), api.Owner(r), budget.CreateParams{
		Name:         req.Name,
		CategoryName: req.CategoryName,
		IconID:       req.IconID,
		LimitAmount:  req.LimitAmount,
		StartingDate: req.StartingDate.Time,
		LimitDate:    req.LimitDate.Time,
	})
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, createBudgetResponse{
		Budget:             toResponse(summary.Budget),
		LinkedTransactions: summary.LinkedTransactions,
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), api.Owner(r), id)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, toResponse(b))
}

// active answers 204 when no budget covers the date.
func (h *Handler) active(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := api.ParseID(w, r.URL.Query().Get("category_id"), "category_id")
	if !ok {
		return
	}

	date := time.Now()

	if s := r.URL.Query().Get("date"); s != "" {
		t, err := api.ParseDate(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		date = t
	}

	b, err := h.svc.Active(r.Context(), api.Owner(r), categoryID, date)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	if b == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	api.WriteJSON(w, http.StatusOK, toResponse(b))
}

type updateBudgetRequest struct {
	Name         *string   `json:"name,omitempty"`
	LimitAmount  *int64    `json:"limit_amount,omitempty"`
	StartingDate *api.Date `json:"starting_date,omitempty"`
	LimitDate    *api.Date `json:"limit_date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	var req updateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := budget.EditParams{Name: req.Name, LimitAmount: req.LimitAmount}

	if req.StartingDate != nil {
		params.StartingDate = &req.StartingDate.Time
	}

	if req.LimitDate != nil {
		params.LimitDate = &req.LimitDate.Time
	}

	b, err := h.svc.Edit(r.Context(), api.Owner(r), id, params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, toResponse(b))
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
