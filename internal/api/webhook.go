package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/services/wallet"
)

const (
	maxWebhookBytes = 64 << 10

	eventCheckoutCompleted     = "checkout.session.completed"
	eventAsyncPaymentSucceeded = "checkout.session.async_payment_succeeded"
)

// StripeWebhookHandler handles POST /webhooks/stripe. Signed paid checkout
// sessions credit tickets, either on checkout.session.completed or, for
// delayed payment methods, on checkout.session.async_payment_succeeded.
// The session id is the payment reference, so a session is credited once.
func (h *HandlerProvider) StripeWebhookHandler(w http.ResponseWriter, r *http.Request) {
	if h.webhookSecret == "" {
		slog.ErrorContext(r.Context(), "stripe webhook secret not configured")
		writeError(w, http.StatusInternalServerError, "webhook not configured")

		return
	}

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	event, err := webhook.ConstructEventWithOptions(payload, r.Header.Get("Stripe-Signature"), h.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		slog.WarnContext(r.Context(), "stripe signature rejected", slog.Any("err", err))
		writeError(w, http.StatusBadRequest, "invalid signature")

		return
	}

	log := slog.With(slog.String("event_id", event.ID), slog.String("event_type", string(event.Type)))

	if event.Type != eventCheckoutCompleted && event.Type != eventAsyncPaymentSucceeded {
		writeJSON(w, http.StatusOK, map[string]any{"received": true, "ignored": true})
		return
	}

	var sess stripe.CheckoutSession

	err = json.Unmarshal(event.Data.Raw, &sess)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid checkout session")
		return
	}

	// Delayed payment methods complete checkout before the money arrives;
	// async_payment_succeeded follows once it does.
	if sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusUnpaid {
		log.InfoContext(r.Context(), "checkout not paid yet", slog.String("session_id", sess.ID))
		writeJSON(w, http.StatusOK, map[string]any{"received": true, "ignored": true})

		return
	}

	accountID, err := uuid.Parse(sess.Metadata["user_id"])
	if err != nil {
		log.ErrorContext(r.Context(), "checkout without account", slog.String("session_id", sess.ID))
		writeError(w, http.StatusBadRequest, "missing user_id metadata")

		return
	}

	key := sess.Metadata["package_id"]
	if key == "" {
		key = sess.Metadata["price_id"]
	}

	pkg, err := h.catalog.Lookup(key)
	if err != nil {
		log.ErrorContext(r.Context(), "unknown ticket package", slog.String("package", key))
		writeError(w, http.StatusBadRequest, "unknown package")

		return
	}

	balance, err := h.wallet.CreditTickets(r.Context(), wallet.CreditRequest{
		AccountID:        accountID,
		Tickets:          pkg.Tickets,
		PaymentReference: sess.ID,
		Description:      h.catalog.Describe(pkg, sess.AmountTotal),
	})

	switch {
	case err == nil:
		log.InfoContext(r.Context(), "tickets credited",
			slog.String("account_id", accountID.String()),
			slog.Int64("tickets", pkg.Tickets),
			slog.Int64("balance", balance),
		)
		writeJSON(w, http.StatusOK, map[string]any{"received": true, "credited": pkg.Tickets})
	case errors.Is(err, domain.ErrAlreadyCredited):
		writeJSON(w, http.StatusOK, map[string]any{"received": true, "duplicate": true})
	default:
		writeServiceError(w, r, err)
	}
}
