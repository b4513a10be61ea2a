package e2etests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/fastprodman/lucksy/internal/api"
)

const (
	timeout   = 5 * time.Second
	waitReady = 20 * time.Second
)

var httpClient = &http.Client{Timeout: timeout}

// env is the running API under test. The suite needs the same secrets the
// server was started with.
type env struct {
	baseURL       string
	jwtSecret     []byte
	webhookSecret string
}

func setup(t *testing.T) env {
	t.Helper()

	e := env{
		baseURL:       os.Getenv("E2E_BASE_URL"),
		jwtSecret:     []byte(os.Getenv("JWT_SECRET")),
		webhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}

	if e.baseURL == "" || len(e.jwtSecret) == 0 || e.webhookSecret == "" {
		t.Skip("E2E_BASE_URL, JWT_SECRET and STRIPE_WEBHOOK_SECRET must be set")
	}

	waitUntilReady(t, e.baseURL)

	return e
}

func TestE2E_DrawLifecycle(t *testing.T) {
	e := setup(t)

	admin := e.token(t, uuid.New(), api.RoleAdmin)
	userA, userB := uuid.New(), uuid.New()
	tokA, tokB := e.token(t, userA, ""), e.token(t, userB, "")

	for _, tok := range []string{tokA, tokB} {
		code, body := e.call(t, http.MethodPost, "/accounts", tok, nil)
		if code != http.StatusCreated {
			t.Fatalf("create account: want 201, got %d (%s)", code, body)
		}
	}

	t.Run("purchase_credits_once", func(t *testing.T) {
		session := "cs_e2e_" + uuid.NewString()

		code, body := e.checkout(t, session, userA, "value")
		if code != http.StatusOK {
			t.Fatalf("checkout: want 200, got %d (%s)", code, body)
		}

		// Stripe redelivers; the second delivery must not credit again.
		code, body = e.checkout(t, session, userA, "value")
		if code != http.StatusOK {
			t.Fatalf("redelivery: want 200, got %d (%s)", code, body)
		}

		if got := e.balance(t, tokA); got != 115 {
			t.Fatalf("after purchase: want 115, got %d", got)
		}

		code, body = e.checkout(t, "cs_e2e_"+uuid.NewString(), userB, "value")
		if code != http.StatusOK {
			t.Fatalf("checkout B: want 200, got %d (%s)", code, body)
		}
	})

	var drawID uuid.UUID

	t.Run("create_draw", func(t *testing.T) {
		code, body := e.call(t, http.MethodPost, "/admin/draws", admin, map[string]any{
			"name":         "E2E console",
			"quota":        100,
			"minTickets":   1,
			"prizeTickets": 10,
			"deadline":     time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
		})
		if code != http.StatusCreated {
			t.Fatalf("create draw: want 201, got %d (%s)", code, body)
		}

		var d struct {
			ID uuid.UUID `json:"id"`
		}

		err := json.Unmarshal([]byte(body), &d)
		if err != nil {
			t.Fatalf("decode draw: %v", err)
		}

		drawID = d.ID
	})

	t.Run("entries", func(t *testing.T) {
		path := fmt.Sprintf("/draws/%s/entries", drawID)

		code, body := e.call(t, http.MethodPost, path, tokA, map[string]int{"tickets": 15})
		if code != http.StatusCreated {
			t.Fatalf("entry A: want 201, got %d (%s)", code, body)
		}

		code, body = e.call(t, http.MethodPost, path, tokB, map[string]int{"tickets": 90})
		if code != http.StatusCreated {
			t.Fatalf("entry B: want 201, got %d (%s)", code, body)
		}

		code, body = e.call(t, http.MethodPost, path, tokA, map[string]int{"tickets": 500})
		if code != http.StatusConflict {
			t.Fatalf("overdraft entry: want 409, got %d (%s)", code, body)
		}

		if got := e.balance(t, tokA); got != 100 {
			t.Fatalf("after entry: want 100, got %d", got)
		}
	})

	t.Run("settle_once", func(t *testing.T) {
		path := fmt.Sprintf("/admin/draws/%s/run", drawID)

		code, body := e.call(t, http.MethodPost, path, admin, nil)
		if code != http.StatusOK {
			t.Fatalf("run: want 200, got %d (%s)", code, body)
		}

		code, body = e.call(t, http.MethodPost, path, admin, nil)
		if code != http.StatusConflict {
			t.Fatalf("second run: want 409, got %d (%s)", code, body)
		}

		code, body = e.call(t, http.MethodGet, fmt.Sprintf("/draws/%s/proof", drawID), "", nil)
		if code != http.StatusOK {
			t.Fatalf("proof: want 200, got %d (%s)", code, body)
		}

		var check struct {
			Valid bool `json:"valid"`
		}

		err := json.Unmarshal([]byte(body), &check)
		if err != nil || !check.Valid {
			t.Fatalf("proof not valid: %s", body)
		}

		total := e.balance(t, tokA) + e.balance(t, tokB)
		// 230 bought, 105 spent, 10 won.
		if total != 135 {
			t.Fatalf("balances after settlement: want 135 in total, got %d", total)
		}
	})

	t.Run("ledger_reconciles", func(t *testing.T) {
		for _, id := range []uuid.UUID{userA, userB} {
			code, body := e.call(t, http.MethodGet, fmt.Sprintf("/admin/accounts/%s/reconcile", id), admin, nil)
			if code != http.StatusOK {
				t.Fatalf("reconcile: want 200, got %d (%s)", code, body)
			}

			var rec struct {
				Balanced bool `json:"balanced"`
			}

			err := json.Unmarshal([]byte(body), &rec)
			if err != nil || !rec.Balanced {
				t.Fatalf("account %s not balanced: %s", id, body)
			}
		}
	})
}

/* -------------------- helpers -------------------- */

func (e env) token(t *testing.T, accountID uuid.UUID, role string) string {
	t.Helper()

	tok, err := api.IssueToken(e.jwtSecret, accountID, role, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	return tok
}

func (e env) call(t *testing.T, method, path, token string, body any) (int, string) {
	t.Helper()

	var rd io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.baseURL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	req.Header.Set("Content-Type", "application/json")

	return do(t, req)
}

func (e env) balance(t *testing.T, token string) int64 {
	t.Helper()

	code, body := e.call(t, http.MethodGet, "/me/balance", token, nil)
	if code != http.StatusOK {
		t.Fatalf("balance: want 200, got %d (%s)", code, body)
	}

	var payload struct {
		Balance int64 `json:"balance"`
	}

	err := json.Unmarshal([]byte(body), &payload)
	if err != nil {
		t.Fatalf("decode balance: %v", err)
	}

	return payload.Balance
}

// checkout delivers a signed checkout.session.completed event.
func (e env) checkout(t *testing.T, sessionID string, accountID uuid.UUID, pkg string) (int, string) {
	t.Helper()

	payload := fmt.Sprintf(`{"id":"evt_%s","object":"event","type":"checkout.session.completed",
		"data":{"object":{"id":%q,"object":"checkout.session","payment_status":"paid","amount_total":4990,
		"metadata":{"user_id":%q,"package_id":%q}}}}`, uuid.NewString(), sessionID, accountID, pkg)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(payload),
		Secret:    e.webhookSecret,
		Timestamp: time.Now(),
	})

	req, err := http.NewRequest(http.MethodPost, e.baseURL+"/webhooks/stripe", bytes.NewReader([]byte(payload)))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}

	req.Header.Set("Stripe-Signature", signed.Header)

	return do(t, req)
}

func do(t *testing.T, req *http.Request) (int, string) {
	t.Helper()

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)

	return resp.StatusCode, string(b)
}

// waitUntilReady waits until GET /healthz responds 200 or times out.
func waitUntilReady(t *testing.T, baseURL string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), waitReady)
	defer cancel()

	tick := time.NewTicker(200 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			t.Fatalf("service not ready at %s within %s", baseURL, waitReady)
		case <-tick.C:
			resp, err := httpClient.Get(baseURL + "/healthz")
			if err != nil {
				continue
			}

			_ = resp.Body.Close()

			if resp.StatusCode == http.StatusOK {
				return
			}
		}
	}
}
