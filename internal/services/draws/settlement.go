package draws

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/infra/metrics"
	"github.com/fastprodman/lucksy/internal/infra/pgutils"
	"github.com/fastprodman/lucksy/internal/repos/draws"
	"github.com/fastprodman/lucksy/internal/services/wallet"
)

type chooser func(entries []domain.Entry) (Selection, error)

// RunDraw selects a winner for a due draw whose quota is met and settles it.
func (s *DrawService) RunDraw(ctx context.Context, drawID uuid.UUID) (SettlementResult, error) {
	return s.settle(ctx, drawID, SettleOptions{}, s.selectNow(drawID))
}

// ForceDraw is RunDraw without the deadline check.
func (s *DrawService) ForceDraw(ctx context.Context, drawID uuid.UUID) (SettlementResult, error) {
	return s.settle(ctx, drawID, SettleOptions{IgnoreDeadline: true}, s.selectNow(drawID))
}

// Settle commits a selection computed elsewhere. The selection must match
// the draw's active entries at commit time. A draw settles at most once; a
// repeated call fails with domain.ErrAlreadySettled and changes nothing.
func (s *DrawService) Settle(ctx context.Context, sel Selection, opts SettleOptions) (SettlementResult, error) {
	return s.settle(ctx, sel.DrawID, opts, func([]domain.Entry) (Selection, error) {
		return sel, nil
	})
}

func (s *DrawService) selectNow(drawID uuid.UUID) chooser {
	return func(list []domain.Entry) (Selection, error) {
		return SelectWinner(drawID, list, s.random, s.now())
	}
}

// settle holds the draw row lock from the status check through the last
// write, so admissions and other settlements of the same draw wait for it.
func (s *DrawService) settle(ctx context.Context, drawID uuid.UUID, opts SettleOptions, choose chooser) (SettlementResult, error) {
	var (
		res   SettlementResult
		prize *wallet.Adjustment
	)

	err := pgutils.WithTxOpts(ctx, s.db, s.txOpts, func(tx *sql.Tx) error {
		d, err := s.draws.LockForUpdate(ctx, tx, drawID)
		if err != nil {
			return fmt.Errorf("lock draw: %w", err)
		}

		switch d.Status {
		case domain.DrawCompleted:
			return domain.ErrAlreadySettled
		case domain.DrawCancelled:
			return fmt.Errorf("draw %s is cancelled: %w", drawID, domain.ErrDrawNotActive)
		}

		if !d.QuotaMet() {
			return fmt.Errorf("sold %d of %d: %w", d.TicketsSold, d.Quota, domain.ErrDrawNotReady)
		}

		if !opts.IgnoreDeadline && !d.Due(s.now()) {
			return fmt.Errorf("deadline %s not reached: %w", d.Deadline, domain.ErrDrawNotReady)
		}

		list, err := s.entries.ListActiveForDraw(ctx, tx, drawID)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}

		if len(list) == 0 {
			return domain.ErrNoEntries
		}

		sel, err := choose(list)
		if err != nil {
			return fmt.Errorf("select winner: %w", err)
		}

		err = sel.Validate(drawID, list)
		if err != nil {
			return err
		}

		res, prize, err = s.apply(ctx, tx, d, sel)

		return err
	})

	metrics.DrawOutcomes.WithLabelValues(settleOutcome(err)).Inc()

	if err != nil {
		return SettlementResult{}, fmt.Errorf("settle draw %s: %w", drawID, err)
	}

	if prize != nil {
		wallet.Observe(*prize)
	}

	s.log.InfoContext(ctx, "draw settled",
		slog.String("draw_id", drawID.String()),
		slog.String("winner_account_id", res.WinnerAccountID.String()),
		slog.Int64("roll", res.Proof.Roll),
		slog.Int64("total", res.Proof.Total),
	)

	return res, nil
}

func (s *DrawService) apply(ctx context.Context, tx *sql.Tx, d domain.Draw, sel Selection) (SettlementResult, *wallet.Adjustment, error) {
	err := s.draws.Complete(ctx, tx, d.ID, draws.Completion{
		WinnerAccountID: sel.WinnerAccountID,
		WinnerEntryID:   sel.WinnerEntryID,
		Proof:           sel.Proof,
	})
	if err != nil {
		return SettlementResult{}, nil, fmt.Errorf("complete draw: %w", err)
	}

	settled, err := s.entries.Finalize(ctx, tx, d.ID, sel.WinnerEntryID)
	if err != nil {
		return SettlementResult{}, nil, fmt.Errorf("finalize entries: %w", err)
	}

	err = s.accounts.IncrementWins(ctx, tx, sel.WinnerAccountID)
	if err != nil {
		return SettlementResult{}, nil, fmt.Errorf("increment wins: %w", err)
	}

	res := SettlementResult{
		DrawID:          d.ID,
		WinnerAccountID: sel.WinnerAccountID,
		WinnerEntryID:   sel.WinnerEntryID,
		Proof:           sel.Proof,
		EntriesSettled:  settled,
	}

	// Physical prizes are fulfilled outside the ledger.
	if d.PrizeTickets == 0 {
		return res, nil, nil
	}

	adj := wallet.Adjustment{
		AccountID:   sel.WinnerAccountID,
		Delta:       d.PrizeTickets,
		Category:    domain.TxWin,
		Description: fmt.Sprintf("Won %s", d.Name),
		DrawID:      &d.ID,
		EntryID:     &sel.WinnerEntryID,
	}

	_, err = s.ledger.AdjustBalance(ctx, tx, adj)
	if err != nil {
		return SettlementResult{}, nil, fmt.Errorf("credit prize: %w", err)
	}

	res.PrizeCredited = d.PrizeTickets

	return res, &adj, nil
}

func settleOutcome(err error) string {
	switch {
	case err == nil:
		return "settled"
	case errors.Is(err, domain.ErrAlreadySettled):
		return "already_settled"
	default:
		return "failed"
	}
}

// CancelDraw withdraws an active draw and refunds every active entry.
func (s *DrawService) CancelDraw(ctx context.Context, drawID uuid.UUID) (CancelResult, error) {
	var (
		res  CancelResult
		adjs []wallet.Adjustment
	)

	err := pgutils.WithTxOpts(ctx, s.db, s.txOpts, func(tx *sql.Tx) error {
		d, err := s.draws.LockForUpdate(ctx, tx, drawID)
		if err != nil {
			return fmt.Errorf("lock draw: %w", err)
		}

		switch d.Status {
		case domain.DrawCompleted:
			return domain.ErrAlreadySettled
		case domain.DrawCancelled:
			return fmt.Errorf("draw %s is cancelled: %w", drawID, domain.ErrDrawNotActive)
		}

		list, err := s.entries.ListActiveForDraw(ctx, tx, drawID)
		if err != nil {
			return fmt.Errorf("list entries: %w", err)
		}

		// Account rows are locked in id order.
		slices.SortStableFunc(list, func(a, b domain.Entry) int {
			return bytes.Compare(a.AccountID[:], b.AccountID[:])
		})

		for _, e := range list {
			adj := wallet.Adjustment{
				AccountID:   e.AccountID,
				Delta:       e.TicketsSpent,
				Category:    domain.TxRefund,
				Description: fmt.Sprintf("Refund for %s", d.Name),
				DrawID:      &d.ID,
				EntryID:     &e.ID,
			}

			_, err = s.ledger.AdjustBalance(ctx, tx, adj)
			if err != nil {
				return fmt.Errorf("refund entry %s: %w", e.ID, err)
			}

			adjs = append(adjs, adj)
			res.TicketsRefunded += e.TicketsSpent
		}

		res.EntriesRefunded, err = s.entries.MarkRefunded(ctx, tx, drawID)
		if err != nil {
			return fmt.Errorf("mark refunded: %w", err)
		}

		err = s.draws.Cancel(ctx, tx, drawID)
		if err != nil {
			return fmt.Errorf("cancel draw: %w", err)
		}

		res.DrawID = drawID

		return nil
	})
	if err != nil {
		return CancelResult{}, fmt.Errorf("cancel draw %s: %w", drawID, err)
	}

	metrics.DrawOutcomes.WithLabelValues("cancelled").Inc()
	wallet.Observe(adjs...)

	return res, nil
}
