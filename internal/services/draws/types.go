package draws

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
)

type CreateRequest struct {
	Name         string
	Quota        int64
	MinTickets   int64
	PrizeTickets int64
	Deadline     time.Time
}

func (r CreateRequest) validate(now time.Time) error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return fmt.Errorf("empty name: %w", domain.ErrInvalidDraw)
	case r.Quota <= 0:
		return fmt.Errorf("quota %d: %w", r.Quota, domain.ErrInvalidDraw)
	case r.MinTickets <= 0:
		return fmt.Errorf("min tickets %d: %w", r.MinTickets, domain.ErrInvalidDraw)
	case r.PrizeTickets < 0:
		return fmt.Errorf("prize tickets %d: %w", r.PrizeTickets, domain.ErrInvalidDraw)
	case !r.Deadline.After(now):
		return fmt.Errorf("deadline %s not in the future: %w", r.Deadline.Format(time.RFC3339), domain.ErrInvalidDraw)
	}

	return nil
}

type Outcome string

const (
	OutcomeReady     Outcome = "ready_to_settle"
	OutcomePostponed Outcome = "postponed"
	OutcomeFailed    Outcome = "failed"
)

// Evaluation classifies one due draw.
type Evaluation struct {
	DrawID      uuid.UUID  `json:"drawId"`
	Outcome     Outcome    `json:"outcome"`
	NewDeadline *time.Time `json:"newDeadline,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// SettlementResult is what the notification layer shows about a settled draw.
type SettlementResult struct {
	DrawID          uuid.UUID    `json:"drawId"`
	WinnerAccountID uuid.UUID    `json:"winnerAccountId"`
	WinnerEntryID   uuid.UUID    `json:"winnerEntryId"`
	Proof           domain.Proof `json:"proof"`
	EntriesSettled  int64        `json:"entriesSettled"`
	PrizeCredited   int64        `json:"prizeCredited"`
}

// Winner is one settled draw as listed publicly.
type Winner struct {
	DrawID          uuid.UUID `json:"drawId"`
	DrawName        string    `json:"drawName"`
	PrizeTickets    int64     `json:"prizeTickets"`
	TicketsSold     int64     `json:"ticketsSold"`
	WinnerAccountID uuid.UUID `json:"winnerAccountId"`
	WinnerEntryID   uuid.UUID `json:"winnerEntryId"`
	ProofHash       string    `json:"proofHash"`
	SettledAt       time.Time `json:"settledAt"`
}

type SettleOptions struct {
	// IgnoreDeadline settles before the deadline. The quota still applies.
	IgnoreDeadline bool
}

// SweepReport summarizes one eligibility sweep.
type SweepReport struct {
	Evaluated      []Evaluation       `json:"evaluated"`
	Settled        []SettlementResult `json:"settled"`
	AlreadySettled []uuid.UUID        `json:"alreadySettled"`
	Failed         []DrawFailure      `json:"failed"`
}

type DrawFailure struct {
	DrawID uuid.UUID `json:"drawId"`
	Error  string    `json:"error"`
}

type CancelResult struct {
	DrawID          uuid.UUID `json:"drawId"`
	EntriesRefunded int64     `json:"entriesRefunded"`
	TicketsRefunded int64     `json:"ticketsRefunded"`
}

type ProofCheck struct {
	DrawID          uuid.UUID    `json:"drawId"`
	WinnerAccountID uuid.UUID    `json:"winnerAccountId"`
	WinnerEntryID   uuid.UUID    `json:"winnerEntryId"`
	Proof           domain.Proof `json:"proof"`
	Recomputed      string       `json:"recomputed"`
	Valid           bool         `json:"valid"`
}
