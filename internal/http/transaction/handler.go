package transaction

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocket/internal/http/api"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.AddExpense(r.Context(), api.Owner(r), req.Params())
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, ToResponse(tx))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), api.Owner(r), id)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, ToResponse(tx))
}

type categoryRequest struct {
	Name   string `json:"name"`
	IconID int    `json:"icon_id"`
}

type updateTransactionRequest struct {
	Concept  *string          `json:"concept,omitempty"`
	Amount   *int64           `json:"amount,omitempty"`
	Date     *api.Date        `json:"date,omitempty"`
	Category *categoryRequest `json:"category,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := api.ParseID(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := transaction.EditParams{Concept: req.Concept, Amount: req.Amount}

	if req.Date != nil {
		params.Date = &req.Date.Time
	}

	if req.Category != nil {
		params.Category = &transaction.CategoryRef{Name: req.Category.Name, IconID: req.Category.IconID}
	}

	tx, err := h.svc.Edit(r.Context(), api.Owner(r), id, params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, ToResponse(tx))
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
