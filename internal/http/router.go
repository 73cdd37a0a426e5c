package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/pocket/internal/http/api"
	"github.com/MrJamesThe3rd/pocket/internal/http/budget"
	"github.com/MrJamesThe3rd/pocket/internal/http/importcsv"
	"github.com/MrJamesThe3rd/pocket/internal/http/investment"
	"github.com/MrJamesThe3rd/pocket/internal/http/matching"
	"github.com/MrJamesThe3rd/pocket/internal/http/report"
	"github.com/MrJamesThe3rd/pocket/internal/http/transaction"
)

type Handlers struct {
	Budgets      *budget.Handler
	Transactions *transaction.Handler
	Investments  *investment.Handler
	Reports      *report.Handler
	Import       *importcsv.Handler
	Rules        *matching.Handler
}

// New builds the router. authenticate resolves the caller of every /api/v1
// request, see api.RequireOwner and api.RequireToken.
func New(h Handlers, allowedOrigins []string, authenticate func(http.Handler) http.Handler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", api.OwnerHeader},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Budgets.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/investments", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Investments.Routes(r)
		})

		r.Route("/reports", h.Reports.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/rules", h.Rules.Routes)
	})

	return router
}
