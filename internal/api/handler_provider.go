package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fastprodman/lucksy/internal/catalog"
	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/services/draws"
)

// HandlerProvider exposes the services as HTTP handlers.
type HandlerProvider struct {
	wallet        Wallet
	entries       Entries
	draws         Draws
	catalog       *catalog.Catalog
	webhookSecret string
}

func NewHandler(deps Deps) *HandlerProvider {
	return &HandlerProvider{
		wallet:        deps.Wallet,
		entries:       deps.Entries,
		draws:         deps.Draws,
		catalog:       deps.Catalog,
		webhookSecret: deps.StripeWebhookSecret,
	}
}

// --- Account ---

// CreateAccountHandler handles POST /accounts for the token's subject.
func (h *HandlerProvider) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	p, err := principalFrom(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	acc, created, err := h.wallet.CreateAccount(r.Context(), p.AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	writeJSON(w, status, acc)
}

// GetBalanceHandler handles GET /me/balance
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	p, err := principalFrom(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	acc, err := h.wallet.GetAccount(r.Context(), p.AccountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"accountId": acc.ID,
		"balance":   acc.Balance,
		"totalWins": acc.TotalWins,
	})
}

// ListTransactionsHandler handles GET /me/transactions
func (h *HandlerProvider) ListTransactionsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := principalFrom(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	limit, err := limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	txns, err := h.wallet.History(r.Context(), p.AccountID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": nonNil(txns)})
}

// ListEntriesHandler handles GET /me/entries
func (h *HandlerProvider) ListEntriesHandler(w http.ResponseWriter, r *http.Request) {
	p, err := principalFrom(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	limit, err := limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := h.entries.ListByAccount(r.Context(), p.AccountID, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": nonNil(list)})
}

// SpinHandler handles POST /me/daily-spin
func (h *HandlerProvider) SpinHandler(w http.ResponseWriter, r *http.Request) {
	p, err := principalFrom(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	res, err := h.wallet.SpinWheel(r.Context(), p.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrSpinCooldown) {
			wait, nerr := h.wallet.NextSpin(r.Context(), p.AccountID)
			if nerr == nil && wait > 0 {
				w.Header().Set("Retry-After", strconv.FormatInt(retryAfterSeconds(wait), 10))
			}
		}

		writeServiceError(w, r, err)

		return
	}

	writeJSON(w, http.StatusOK, res)
}

// --- Entries ---

type admitRequest struct {
	Tickets int64 `json:"tickets"`
}

// AdmitEntryHandler handles POST /draws/{drawId}/entries
func (h *HandlerProvider) AdmitEntryHandler(w http.ResponseWriter, r *http.Request) {
	p, err := principalFrom(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return
	}

	drawID, err := uuidParam(r, "drawId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req admitRequest

	err = decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Tickets <= 0 {
		writeError(w, http.StatusBadRequest, "tickets must be > 0")
		return
	}

	adm, err := h.entries.AdmitEntry(r.Context(), p.AccountID, drawID, req.Tickets)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, adm)
}

// --- Draws ---

// GetDrawHandler handles GET /draws/{drawId}
func (h *HandlerProvider) GetDrawHandler(w http.ResponseWriter, r *http.Request) {
	drawID, err := uuidParam(r, "drawId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.draws.Get(r.Context(), drawID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, d)
}

// GetProofHandler handles GET /draws/{drawId}/proof
func (h *HandlerProvider) GetProofHandler(w http.ResponseWriter, r *http.Request) {
	drawID, err := uuidParam(r, "drawId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	check, err := h.draws.VerifyProof(r.Context(), drawID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, check)
}

// ListWinnersHandler handles GET /winners
func (h *HandlerProvider) ListWinnersHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	winners, err := h.draws.ListWinners(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"winners": nonNil(winners)})
}

// --- Admin ---

type createDrawRequest struct {
	Name         string    `json:"name"`
	Quota        int64     `json:"quota"`
	MinTickets   int64     `json:"minTickets"`
	PrizeTickets int64     `json:"prizeTickets"`
	Deadline     time.Time `json:"deadline"`
}

// CreateDrawHandler handles POST /admin/draws
func (h *HandlerProvider) CreateDrawHandler(w http.ResponseWriter, r *http.Request) {
	var req createDrawRequest

	err := decodeJSON(w, r, &req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	d, err := h.draws.CreateDraw(r.Context(), draws.CreateRequest(req))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, d)
}

// RunDrawHandler handles POST /admin/draws/{drawId}/run
func (h *HandlerProvider) RunDrawHandler(w http.ResponseWriter, r *http.Request) {
	drawID, err := uuidParam(r, "drawId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.draws.ForceDraw(r.Context(), drawID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// CancelDrawHandler handles POST /admin/draws/{drawId}/cancel
func (h *HandlerProvider) CancelDrawHandler(w http.ResponseWriter, r *http.Request) {
	drawID, err := uuidParam(r, "drawId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.draws.CancelDraw(r.Context(), drawID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// SweepHandler handles POST /admin/sweep
func (h *HandlerProvider) SweepHandler(w http.ResponseWriter, r *http.Request) {
	report, err := h.draws.Sweep(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// ReconcileHandler handles GET /admin/accounts/{accountId}/reconcile
func (h *HandlerProvider) ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuidParam(r, "accountId")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.wallet.Reconcile(r.Context(), accountID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}

	return s
}
