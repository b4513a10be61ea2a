package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fastprodman/lucksy/internal/catalog"
)

// Deps is everything the HTTP layer calls into.
type Deps struct {
	Wallet              Wallet
	Entries             Entries
	Draws               Draws
	Catalog             *catalog.Catalog
	JWTSecret           string
	StripeWebhookSecret string
}

// NewRouter registers all API endpoints. User routes take the account from
// the bearer token; admin routes also require the admin role.
func NewRouter(deps Deps) http.Handler {
	h := NewHandler(deps)
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/draws/{drawId}", h.GetDrawHandler)
	r.Get("/draws/{drawId}/proof", h.GetProofHandler)
	r.Get("/winners", h.ListWinnersHandler)

	// Authenticated by Stripe signature, not a bearer token.
	r.Post("/webhooks/stripe", h.StripeWebhookHandler)

	r.Group(func(r chi.Router) {
		r.Use(Authenticate([]byte(deps.JWTSecret)))

		r.Post("/accounts", h.CreateAccountHandler)
		r.Get("/me/balance", h.GetBalanceHandler)
		r.Get("/me/transactions", h.ListTransactionsHandler)
		r.Get("/me/entries", h.ListEntriesHandler)
		r.Post("/me/daily-spin", h.SpinHandler)
		r.Post("/draws/{drawId}/entries", h.AdmitEntryHandler)

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdmin)

			r.Post("/draws", h.CreateDrawHandler)
			r.Post("/draws/{drawId}/run", h.RunDrawHandler)
			r.Post("/draws/{drawId}/cancel", h.CancelDrawHandler)
			r.Post("/sweep", h.SweepHandler)
			r.Get("/accounts/{accountId}/reconcile", h.ReconcileHandler)
		})
	})

	return r
}
