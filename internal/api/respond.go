package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

type errorBody struct {
	Error          string `json:"error"`
	Code           string `json:"code,omitempty"`
	AlreadySettled bool   `json:"already_settled,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// serviceErrors maps terminal domain errors to HTTP status and a stable code.
var serviceErrors = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInsufficientBalance, http.StatusConflict, "insufficient_balance"},
	{domain.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{domain.ErrInvalidDraw, http.StatusBadRequest, "invalid_draw"},
	{domain.ErrDrawNotActive, http.StatusConflict, "draw_not_active"},
	{domain.ErrDrawNotReady, http.StatusConflict, "draw_not_ready"},
	{domain.ErrNoEntries, http.StatusConflict, "no_entries"},
	{domain.ErrAlreadySettled, http.StatusConflict, "already_settled"},
	{domain.ErrAlreadyCredited, http.StatusConflict, "already_credited"},
	{domain.ErrInvalidSelection, http.StatusConflict, "invalid_selection"},
	{domain.ErrSpinCooldown, http.StatusTooManyRequests, "spin_cooldown"},
	{domain.ErrAccountNotFound, http.StatusNotFound, "account_not_found"},
	{domain.ErrDrawNotFound, http.StatusNotFound, "draw_not_found"},
}

// writeServiceError answers with the mapping of err. Transient failures get
// 503 and Retry-After; anything unknown is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsTransient(err) {
		w.Header().Set("Retry-After", "1")
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "temporarily unavailable, retry", Code: "transient"})

		return
	}

	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, errorBody{
				Error:          m.err.Error(),
				Code:           m.code,
				AlreadySettled: m.err == domain.ErrAlreadySettled,
			})

			return
		}
	}

	slog.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.Any("err", err),
	)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// decodeJSON reads a size-capped body into dst, rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}

		return errors.New("invalid JSON")
	}

	return nil
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("missing %s", name)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}

	return id, nil
}

// limitParam reads ?limit=, capped at 200. Zero means the service default.
func limitParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("invalid limit")
	}

	return min(n, 200), nil
}

// retryAfterSeconds rounds a wait up to whole seconds for Retry-After.
func retryAfterSeconds(wait time.Duration) int64 {
	return int64((wait + time.Second - 1) / time.Second)
}
