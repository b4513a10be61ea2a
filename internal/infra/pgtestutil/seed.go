package pgtestutil

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

// SeedAccount inserts an account holding balance tickets. A matching
// purchase transaction is written so the ledger reconciles.
func SeedAccount(t *testing.T, db *sql.DB, balance int64) uuid.UUID {
	t.Helper()

	id := uuid.New()

	_, err := db.ExecContext(t.Context(), `
		INSERT INTO accounts (id, balance) VALUES ($1, $2)
	`, id, balance)
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	if balance > 0 {
		_, err = db.ExecContext(t.Context(), `
			INSERT INTO transactions (id, account_id, amount, category, description, payment_reference)
			VALUES ($1, $2, $3, 'purchase', 'seed', $4)
		`, uuid.New(), id, balance, fmt.Sprintf("seed-%s", id))
		if err != nil {
			t.Fatalf("seed purchase: %v", err)
		}
	}

	return id
}

// DrawSeed describes a draw row for SeedDraw. Zero values get defaults.
type DrawSeed struct {
	Quota        int64
	TicketsSold  int64
	MinTickets   int64
	PrizeTickets int64
	Deadline     time.Time
	Status       string
}

// SeedDraw inserts a draw and returns its id.
func SeedDraw(t *testing.T, db *sql.DB, d DrawSeed) uuid.UUID {
	t.Helper()

	if d.Quota == 0 {
		d.Quota = 100
	}

	if d.MinTickets == 0 {
		d.MinTickets = 1
	}

	if d.Deadline.IsZero() {
		d.Deadline = time.Now().Add(24 * time.Hour)
	}

	if d.Status == "" {
		d.Status = "active"
	}

	id := uuid.New()

	_, err := db.ExecContext(t.Context(), `
		INSERT INTO draws (id, name, quota, tickets_sold, min_tickets, prize_tickets, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, id, "test draw "+id.String()[:8], d.Quota, d.TicketsSold, d.MinTickets, d.PrizeTickets, d.Deadline, d.Status)
	if err != nil {
		t.Fatalf("seed draw: %v", err)
	}

	return id
}

// ExpireDraw moves a draw's deadline into the past.
func ExpireDraw(t *testing.T, db *sql.DB, drawID uuid.UUID) {
	t.Helper()

	_, err := db.ExecContext(t.Context(), `
		UPDATE draws SET deadline = now() - interval '1 minute' WHERE id = $1
	`, drawID)
	if err != nil {
		t.Fatalf("expire draw: %v", err)
	}
}

// Count runs a COUNT(*) query and returns the result.
func Count(t *testing.T, db *sql.DB, query string, args ...any) int64 {
	t.Helper()

	var n int64

	err := db.QueryRowContext(t.Context(), query, args...).Scan(&n)
	if err != nil {
		t.Fatalf("count %q: %v", query, err)
	}

	return n
}
