package matching

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/http/api"
	"github.com/MrJamesThe3rd/pocket/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type ruleResponse struct {
	ID           uuid.UUID `json:"id"`
	RawPattern   string    `json:"raw_pattern"`
	CategoryName string    `json:"category_name"`
	IconID       int       `json:"icon_id"`
}

type suggestResponse struct {
	Concept string        `json:"concept"`
	Rule    *ruleResponse `json:"rule"`
}

func toRuleResponse(r *matching.Rule) *ruleResponse {
	if r == nil {
		return nil
	}

	return &ruleResponse{ID: r.ID, RawPattern: r.RawPattern, CategoryName: r.CategoryName, IconID: r.IconID}
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	concept := r.URL.Query().Get("concept")
	if concept == "" {
		http.Error(w, "concept query parameter is required", http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Suggest(r.Context(), api.Owner(r), concept)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, suggestResponse{Concept: concept, Rule: toRuleResponse(rule)})
}

type learnRequest struct {
	RawPattern   string `json:"raw_pattern"`
	CategoryName string `json:"category_name"`
	IconID       int    `json:"icon_id"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rule, err := h.svc.Learn(r.Context(), api.Owner(r), req.RawPattern, req.CategoryName, req.IconID)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, toRuleResponse(rule))
}
