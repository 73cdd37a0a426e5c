// Package api holds what every v1 handler shares: caller identity, JSON
// encoding and the mapping of domain errors to status codes.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/common"
	"github.com/MrJamesThe3rd/pocket/internal/importer"
	"github.com/MrJamesThe3rd/pocket/internal/investment"
	"github.com/MrJamesThe3rd/pocket/internal/report"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

// OwnerHeader carries the caller id, set by the authentication gateway.
const OwnerHeader = "X-Owner-ID"

type ownerKey struct{}

// RequireOwner rejects requests without a valid owner header and stores the
// owner in the request context.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, err := uuid.Parse(r.Header.Get(OwnerHeader))
		if err != nil {
			http.Error(w, "missing or invalid "+OwnerHeader+" header", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey{}, owner)))
	})
}

// Owner returns the caller set by RequireOwner, or uuid.Nil outside it.
func Owner(r *http.Request) uuid.UUID {
	owner, _ := r.Context().Value(ownerKey{}).(uuid.UUID)
	return owner
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError maps err to a status code. Unknown errors are logged and hidden
// behind a 500.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

func StatusOf(err error) int {
	switch {
	case errors.Is(err, budget.ErrConflictingBudget):
		return http.StatusConflict
	case errors.Is(err, budget.ErrNotFound),
		errors.Is(err, transaction.ErrNotFound),
		errors.Is(err, category.ErrNotFound),
		errors.Is(err, investment.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, report.ErrInvalidRange),
		errors.Is(err, importer.ErrUnknownFormat):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// ParseID reads a uuid path or query value, writing a 400 when it is invalid.
func ParseID(w http.ResponseWriter, raw, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}
