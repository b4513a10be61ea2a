package draws

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/infra/randsrc"
)

// Selection is a winner choice together with the inputs that produced it.
type Selection struct {
	DrawID          uuid.UUID
	WinnerAccountID uuid.UUID
	WinnerEntryID   uuid.UUID
	Proof           domain.Proof
}

// orderEntries sorts by creation time, then id, matching the storage order.
func orderEntries(entries []domain.Entry) []domain.Entry {
	out := slices.Clone(entries)

	slices.SortStableFunc(out, func(a, b domain.Entry) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if c != 0 {
			return c
		}

		return bytes.Compare(a.ID[:], b.ID[:])
	})

	return out
}

// totalTickets sums the entries' weights. Every weight must be positive.
func totalTickets(entries []domain.Entry) (int64, error) {
	var total int64

	for _, e := range entries {
		if e.TicketsSpent <= 0 {
			return 0, fmt.Errorf("entry %s spends %d tickets: %w", e.ID, e.TicketsSpent, domain.ErrInvalidAmount)
		}

		total += e.TicketsSpent
	}

	return total, nil
}

// pick returns the index of the first entry whose running ticket total
// exceeds roll. Entry i owns rolls [sum(0..i-1), sum(0..i)).
func pick(entries []domain.Entry, roll int64) int {
	var cumulative int64

	for i, e := range entries {
		cumulative += e.TicketsSpent
		if cumulative > roll {
			return i
		}
	}

	return -1
}

// SelectWinner draws one entry with probability proportional to its
// tickets and binds the choice into a proof.
func SelectWinner(drawID uuid.UUID, entries []domain.Entry, src randsrc.Source, now time.Time) (Selection, error) {
	if len(entries) == 0 {
		return Selection{}, domain.ErrNoEntries
	}

	ordered := orderEntries(entries)

	total, err := totalTickets(ordered)
	if err != nil {
		return Selection{}, err
	}

	roll, err := src.Int63n(total)
	if err != nil {
		return Selection{}, fmt.Errorf("roll: %w", err)
	}

	salt, err := src.Salt()
	if err != nil {
		return Selection{}, fmt.Errorf("salt: %w", err)
	}

	winner := ordered[pick(ordered, roll)]

	sel := Selection{
		DrawID:          drawID,
		WinnerAccountID: winner.AccountID,
		WinnerEntryID:   winner.ID,
		Proof: domain.Proof{
			Salt: salt,
			// Stored timestamps keep microseconds; the proof must survive a
			// round trip.
			SelectedAt: now.UTC().Truncate(time.Microsecond),
			Roll:       roll,
			Total:      total,
		},
	}

	sel.Proof.Hash = ComputeProof(sel.DrawID, sel.WinnerAccountID, sel.WinnerEntryID, sel.Proof)

	return sel, nil
}

// ComputeProof hashes the selection inputs. Proof.Hash is ignored.
func ComputeProof(drawID, winnerAccountID, winnerEntryID uuid.UUID, p domain.Proof) string {
	payload := strings.Join([]string{
		drawID.String(),
		winnerAccountID.String(),
		winnerEntryID.String(),
		p.SelectedAt.UTC().Format(time.RFC3339Nano),
		p.Salt,
		strconv.FormatInt(p.Roll, 10),
		strconv.FormatInt(p.Total, 10),
	}, "|")

	sum := sha256.Sum256([]byte(payload))

	return hex.EncodeToString(sum[:])
}

// Validate checks sel against the draw's current active entries: the roll
// must land on the named winner and the hash must match its inputs.
func (sel Selection) Validate(drawID uuid.UUID, entries []domain.Entry) error {
	if sel.DrawID != drawID {
		return fmt.Errorf("selection for draw %s: %w", sel.DrawID, domain.ErrInvalidSelection)
	}

	if len(entries) == 0 {
		return domain.ErrNoEntries
	}

	ordered := orderEntries(entries)

	total, err := totalTickets(ordered)
	if err != nil {
		return err
	}

	if sel.Proof.Total != total {
		return fmt.Errorf("total %d, entries hold %d: %w", sel.Proof.Total, total, domain.ErrInvalidSelection)
	}

	if sel.Proof.Roll < 0 || sel.Proof.Roll >= total {
		return fmt.Errorf("roll %d outside [0, %d): %w", sel.Proof.Roll, total, domain.ErrInvalidSelection)
	}

	winner := ordered[pick(ordered, sel.Proof.Roll)]
	if winner.ID != sel.WinnerEntryID || winner.AccountID != sel.WinnerAccountID {
		return fmt.Errorf("roll %d selects entry %s: %w", sel.Proof.Roll, winner.ID, domain.ErrInvalidSelection)
	}

	if ComputeProof(sel.DrawID, sel.WinnerAccountID, sel.WinnerEntryID, sel.Proof) != sel.Proof.Hash {
		return fmt.Errorf("proof hash mismatch: %w", domain.ErrInvalidSelection)
	}

	return nil
}
