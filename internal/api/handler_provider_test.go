package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fastprodman/lucksy/internal/api/mocks"
	"github.com/fastprodman/lucksy/internal/catalog"
	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/services/draws"
	"github.com/fastprodman/lucksy/internal/services/entries"
	"github.com/fastprodman/lucksy/internal/services/wallet"
)

const (
	testJWTSecret     = "test-jwt-secret"
	testWebhookSecret = "whsec_test"
)

type harness struct {
	wallet  *mocks.MockWallet
	entries *mocks.MockEntries
	draws   *mocks.MockDraws
	router  http.Handler
}

func newHarness(t *testing.T) harness {
	t.Helper()

	ctrl := gomock.NewController(t)

	cat, err := catalog.Load("")
	require.NoError(t, err)

	h := harness{
		wallet:  mocks.NewMockWallet(ctrl),
		entries: mocks.NewMockEntries(ctrl),
		draws:   mocks.NewMockDraws(ctrl),
	}

	h.router = NewRouter(Deps{
		Wallet:              h.wallet,
		Entries:             h.entries,
		Draws:               h.draws,
		Catalog:             cat,
		JWTSecret:           testJWTSecret,
		StripeWebhookSecret: testWebhookSecret,
	})

	return h
}

func token(t *testing.T, accountID uuid.UUID, role string) string {
	t.Helper()

	tok, err := IssueToken([]byte(testJWTSecret), accountID, role, time.Hour)
	require.NoError(t, err)

	return "Bearer " + tok
}

func (h harness) do(t *testing.T, method, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAdmitEntry_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"insufficient", fmt.Errorf("admit: %w", domain.ErrInsufficientBalance), http.StatusConflict, "insufficient_balance"},
		{"not_active", domain.ErrDrawNotActive, http.StatusConflict, "draw_not_active"},
		{"below_min", domain.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
		{"unknown_draw", domain.ErrDrawNotFound, http.StatusNotFound, "draw_not_found"},
		{"transient", fmt.Errorf("%w: lock timeout", domain.ErrTransient), http.StatusServiceUnavailable, "transient"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHarness(t)
			acc, drawID := uuid.New(), uuid.New()

			h.entries.EXPECT().AdmitEntry(gomock.Any(), acc, drawID, int64(15)).Return(entries.Admission{}, tt.err)

			rec := h.do(t, http.MethodPost, "/draws/"+drawID.String()+"/entries", token(t, acc, ""), `{"tickets":15}`)
			assert.Equal(t, tt.wantStatus, rec.Code)

			body := decode[errorBody](t, rec)
			assert.Equal(t, tt.wantCode, body.Code)

			if tt.wantStatus == http.StatusServiceUnavailable {
				assert.Equal(t, "1", rec.Header().Get("Retry-After"))
			}
		})
	}
}

func TestAdmitEntry_Success(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	acc, drawID := uuid.New(), uuid.New()

	adm := entries.Admission{
		Entry:       domain.Entry{ID: uuid.New(), AccountID: acc, DrawID: drawID, TicketsSpent: 15, Status: domain.EntryActive},
		Balance:     5,
		TicketsSold: 105,
	}
	h.entries.EXPECT().AdmitEntry(gomock.Any(), acc, drawID, int64(15)).Return(adm, nil)

	rec := h.do(t, http.MethodPost, "/draws/"+drawID.String()+"/entries", token(t, acc, ""), `{"tickets":15}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	got := decode[entries.Admission](t, rec)
	assert.Equal(t, int64(5), got.Balance)
	assert.Equal(t, int64(105), got.TicketsSold)
	assert.Equal(t, adm.Entry.ID, got.Entry.ID)
}

func TestAdmitEntry_BadRequests(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	acc := uuid.New()
	path := "/draws/" + uuid.NewString() + "/entries"

	tests := []struct {
		name string
		path string
		body string
	}{
		{"bad_draw_id", "/draws/nope/entries", `{"tickets":1}`},
		{"empty_body", path, ``},
		{"unknown_field", path, `{"tickets":1,"account":"x"}`},
		{"zero_tickets", path, `{"tickets":0}`},
		{"negative_tickets", path, `{"tickets":-3}`},
	}

	for _, tt := range tests {
		rec := h.do(t, http.MethodPost, tt.path, token(t, acc, ""), tt.body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, tt.name)
	}
}

func TestAuth(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	acc := uuid.New()

	expired, err := IssueToken([]byte(testJWTSecret), acc, "", -time.Minute)
	require.NoError(t, err)

	forged, err := IssueToken([]byte("other-secret"), acc, RoleAdmin, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		auth   string
		status int
	}{
		{"missing", "/me/balance", "", http.StatusUnauthorized},
		{"not_bearer", "/me/balance", "Basic abc", http.StatusUnauthorized},
		{"expired", "/me/balance", "Bearer " + expired, http.StatusUnauthorized},
		{"wrong_secret", "/me/balance", "Bearer " + forged, http.StatusUnauthorized},
		{"user_on_admin", "/admin/accounts/" + acc.String() + "/reconcile", token(t, acc, ""), http.StatusForbidden},
	}

	for _, tt := range tests {
		rec := h.do(t, http.MethodGet, tt.path, tt.auth, "")
		assert.Equal(t, tt.status, rec.Code, tt.name)
	}
}

func TestGetBalance(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	acc := uuid.New()

	h.wallet.EXPECT().GetAccount(gomock.Any(), acc).Return(domain.Account{ID: acc, Balance: 42, TotalWins: 2}, nil)

	rec := h.do(t, http.MethodGet, "/me/balance", token(t, acc, ""), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"accountId":%q,"balance":42,"totalWins":2}`, acc), rec.Body.String())
}

func TestCreateAccount(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	acc := uuid.New()

	gomock.InOrder(
		h.wallet.EXPECT().CreateAccount(gomock.Any(), acc).Return(domain.Account{ID: acc}, true, nil),
		h.wallet.EXPECT().CreateAccount(gomock.Any(), acc).Return(domain.Account{ID: acc}, false, nil),
	)

	assert.Equal(t, http.StatusCreated, h.do(t, http.MethodPost, "/accounts", token(t, acc, ""), "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodPost, "/accounts", token(t, acc, ""), "").Code)
}

func TestHistoryAndEntries(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	acc := uuid.New()

	h.wallet.EXPECT().History(gomock.Any(), acc, 10).Return(nil, nil)
	h.entries.EXPECT().ListByAccount(gomock.Any(), acc, 200).Return([]domain.Entry{{ID: uuid.New()}}, nil)

	rec := h.do(t, http.MethodGet, "/me/transactions?limit=10", token(t, acc, ""), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"transactions":[]}`, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/me/entries?limit=5000", token(t, acc, ""), "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodGet, "/me/entries?limit=abc", token(t, acc, ""), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDailySpin_Cooldown(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	acc := uuid.New()

	h.wallet.EXPECT().SpinWheel(gomock.Any(), acc).Return(wallet.SpinResult{}, fmt.Errorf("spin: %w", domain.ErrSpinCooldown))
	h.wallet.EXPECT().NextSpin(gomock.Any(), acc).Return(90*time.Minute+500*time.Millisecond, nil)

	rec := h.do(t, http.MethodPost, "/me/daily-spin", token(t, acc, ""), "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "5401", rec.Header().Get("Retry-After"))
}

func TestRetryAfterSeconds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(1), retryAfterSeconds(time.Millisecond))
	assert.Equal(t, int64(60), retryAfterSeconds(time.Minute))
	assert.Equal(t, int64(61), retryAfterSeconds(time.Minute+time.Nanosecond))
}

func TestDailySpin_Win(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	acc := uuid.New()

	h.wallet.EXPECT().SpinWheel(gomock.Any(), acc).Return(wallet.SpinResult{Won: true, Prize: 1, Balance: 6}, nil)

	rec := h.do(t, http.MethodPost, "/me/daily-spin", token(t, acc, ""), "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[wallet.SpinResult](t, rec)
	assert.True(t, got.Won)
	assert.Equal(t, int64(6), got.Balance)
}

func TestPublicDrawRoutes(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	drawID := uuid.New()

	h.draws.EXPECT().Get(gomock.Any(), drawID).Return(domain.Draw{ID: drawID, Name: "Console", Status: domain.DrawActive}, nil)
	h.draws.EXPECT().VerifyProof(gomock.Any(), drawID).Return(draws.ProofCheck{DrawID: drawID, Valid: true}, nil)

	rec := h.do(t, http.MethodGet, "/draws/"+drawID.String(), "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Console", decode[domain.Draw](t, rec).Name)

	rec = h.do(t, http.MethodGet, "/draws/"+drawID.String()+"/proof", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[draws.ProofCheck](t, rec).Valid)
}

func TestListWinners(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	drawID := uuid.New()

	h.draws.EXPECT().ListWinners(gomock.Any(), 10).
		Return([]draws.Winner{{DrawID: drawID, DrawName: "Console", ProofHash: "abc"}}, nil)
	h.draws.EXPECT().ListWinners(gomock.Any(), 0).Return(nil, nil)

	rec := h.do(t, http.MethodGet, "/winners?limit=10", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[struct {
		Winners []draws.Winner `json:"winners"`
	}](t, rec).Winners
	require.Len(t, got, 1)
	assert.Equal(t, drawID, got[0].DrawID)
	assert.Equal(t, "abc", got[0].ProofHash)

	rec = h.do(t, http.MethodGet, "/winners", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"winners":[]}`, rec.Body.String())

	rec = h.do(t, http.MethodGet, "/winners?limit=-1", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	admin := token(t, uuid.New(), RoleAdmin)
	drawID := uuid.New()

	deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	h.draws.EXPECT().CreateDraw(gomock.Any(), draws.CreateRequest{
		Name: "Bike", Quota: 100, MinTickets: 2, PrizeTickets: 0, Deadline: deadline,
	}).Return(domain.Draw{ID: drawID, Name: "Bike"}, nil)
	h.draws.EXPECT().ForceDraw(gomock.Any(), drawID).Return(draws.SettlementResult{}, fmt.Errorf("settle: %w", domain.ErrAlreadySettled))
	h.draws.EXPECT().CancelDraw(gomock.Any(), drawID).Return(draws.CancelResult{DrawID: drawID, EntriesRefunded: 3}, nil)
	h.draws.EXPECT().Sweep(gomock.Any()).Return(draws.SweepReport{}, nil)
	h.wallet.EXPECT().Reconcile(gomock.Any(), drawID).Return(wallet.Reconciliation{Balanced: true}, nil)

	rec := h.do(t, http.MethodPost, "/admin/draws", admin,
		`{"name":"Bike","quota":100,"minTickets":2,"deadline":"2030-01-01T00:00:00Z"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = h.do(t, http.MethodPost, "/admin/draws/"+drawID.String()+"/run", admin, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.True(t, decode[errorBody](t, rec).AlreadySettled)

	rec = h.do(t, http.MethodPost, "/admin/draws/"+drawID.String()+"/cancel", admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decode[draws.CancelResult](t, rec).EntriesRefunded)

	rec = h.do(t, http.MethodPost, "/admin/sweep", admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodGet, "/admin/accounts/"+drawID.String()+"/reconcile", admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
