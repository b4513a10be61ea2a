package wallet

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/infra/metrics"
	"github.com/fastprodman/lucksy/internal/infra/pgutils"
)

// SpinPrize is what a winning daily spin credits.
const SpinPrize int64 = 1

// SpinWheel spins the daily wheel for an account. The outcome is rolled
// server side; a spin inside the cooldown fails with domain.ErrSpinCooldown.
func (s *WalletService) SpinWheel(ctx context.Context, accountID uuid.UUID) (SpinResult, error) {
	odds := s.spin.WinOdds
	if odds <= 0 {
		odds = 1
	}

	roll, err := s.random.Int63n(odds)
	if err != nil {
		return SpinResult{}, fmt.Errorf("roll wheel: %w", err)
	}

	won := roll == 0
	now := s.now().UTC()

	res := SpinResult{Won: won, NextSpinAt: now.Add(s.spin.Cooldown)}

	var adj Adjustment

	err = pgutils.WithTxOpts(ctx, s.db, s.txOpts, func(tx *sql.Tx) error {
		err := s.accounts.Exists(ctx, tx, accountID)
		if err != nil {
			return err
		}

		claimed, err := s.spins.Claim(ctx, tx, accountID, now, now.Add(-s.spin.Cooldown), won)
		if err != nil {
			return fmt.Errorf("claim spin: %w", err)
		}

		if !claimed {
			return domain.ErrSpinCooldown
		}

		if !won {
			return nil
		}

		adj = Adjustment{
			AccountID:   accountID,
			Delta:       SpinPrize,
			Category:    domain.TxWin,
			Description: "Daily wheel prize",
		}

		res.Prize = SpinPrize

		res.Balance, err = s.AdjustBalance(ctx, tx, adj)

		return err
	})

	metrics.DailySpins.WithLabelValues(spinLabel(won, err)).Inc()

	if err != nil {
		return SpinResult{}, fmt.Errorf("spin wheel: %w", err)
	}

	if won {
		Observe(adj)
		return res, nil
	}

	acc, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return SpinResult{}, fmt.Errorf("get account: %w", err)
	}

	res.Balance = acc.Balance

	return res, nil
}

// NextSpin returns how long the account must wait before spinning again.
// Zero means it may spin now.
func (s *WalletService) NextSpin(ctx context.Context, accountID uuid.UUID) (time.Duration, error) {
	last, err := s.spins.Last(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("next spin: %w", err)
	}

	if last.IsZero() {
		return 0, nil
	}

	wait := last.Add(s.spin.Cooldown).Sub(s.now())
	if wait <= 0 {
		return 0, nil
	}

	return wait, nil
}

func spinLabel(won bool, err error) string {
	switch {
	case err != nil:
		return metrics.Result(err, map[error]string{domain.ErrSpinCooldown: "cooldown"})
	case won:
		return "won"
	default:
		return "lost"
	}
}
