package report

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/http/api"
	httptransaction "github.com/MrJamesThe3rd/pocket/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocket/internal/report"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/categories", h.sumByCategory)
	r.Get("/years", h.sumByYear)
	r.Get("/transactions", h.listTransactions)
}

type categoryTotalResponse struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	IconID     int       `json:"icon_id"`
	Total      int64     `json:"total"`
}

type yearTotalResponse struct {
	Year  int   `json:"year"`
	Total int64 `json:"total"`
}

// parseFilter reads category_id (repeatable or comma separated), from, until
// and kind from the query string.
func parseFilter(owner uuid.UUID, q url.Values) (report.Filter, error) {
	filter := report.Filter{OwnerID: owner}

	for _, raw := range q["category_id"] {
		for part := range strings.SplitSeq(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return report.Filter{}, fmt.Errorf("invalid category_id %q", part)
			}

			filter.CategoryIDs = append(filter.CategoryIDs, id)
		}
	}

	if s := q.Get("from"); s != "" {
		t, err := api.ParseDate(s)
		if err != nil {
			return report.Filter{}, err
		}

		filter.From = &t
	}

	if s := q.Get("until"); s != "" {
		t, err := api.ParseDate(s)
		if err != nil {
			return report.Filter{}, err
		}

		filter.Until = &t
	}

	switch k := transaction.Kind(q.Get("kind")); k {
	case "":
	case transaction.KindExpense, transaction.KindDeposit:
		filter.Kind = &k
	default:
		return report.Filter{}, fmt.Errorf("invalid kind %q", k)
	}

	return filter, nil
}

func (h *Handler) sumByCategory(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(api.Owner(r), r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	totals, err := h.svc.SumByCategory(r.Context(), filter)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp := make([]categoryTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = categoryTotalResponse{CategoryID: t.CategoryID, Name: t.Name, IconID: t.IconID, Total: t.Total}
	}

	api.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) sumByYear(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(api.Owner(r), r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	totals, err := h.svc.SumByYear(r.Context(), filter)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	resp := make([]yearTotalResponse, len(totals))
	for i, t := range totals {
		resp[i] = yearTotalResponse{Year: t.Year, Total: t.Total}
	}

	api.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(api.Owner(r), r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	txs, err := h.svc.ListTransactions(r.Context(), filter)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, httptransaction.ToResponseList(txs))
}
