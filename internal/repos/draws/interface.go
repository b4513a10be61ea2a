package draws

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
)

// DueDraw is the slice of a draw row the eligibility sweep classifies on.
type DueDraw struct {
	ID          uuid.UUID
	Quota       int64
	TicketsSold int64
	Deadline    time.Time
}

// Completion is what a settled draw records.
type Completion struct {
	WinnerAccountID uuid.UUID
	WinnerEntryID   uuid.UUID
	Proof           domain.Proof
}

type Draws interface {
	Create(ctx context.Context, d domain.Draw) error
	Get(ctx context.Context, id uuid.UUID) (domain.Draw, error)
	// LockForUpdate reads the draw and holds its row lock until tx ends.
	LockForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (domain.Draw, error)
	ListDue(ctx context.Context, now time.Time) ([]DueDraw, error)
	// ListCompleted returns settled draws, most recently settled first.
	ListCompleted(ctx context.Context, limit int) ([]domain.Draw, error)
	// Postpone moves an active, due, underfunded draw's deadline to
	// max(deadline, now) + interval. It reports false when the draw no
	// longer matches those conditions.
	Postpone(ctx context.Context, tx *sql.Tx, id uuid.UUID, now time.Time, interval time.Duration) (time.Time, bool, error)
	AddTicketsSold(ctx context.Context, tx *sql.Tx, id uuid.UUID, n int64) error
	// Complete marks an active draw completed with its winner and proof.
	// It fails with domain.ErrAlreadySettled when the draw is not active.
	Complete(ctx context.Context, tx *sql.Tx, id uuid.UUID, c Completion) error
	// Cancel marks an active draw cancelled.
	Cancel(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
}
