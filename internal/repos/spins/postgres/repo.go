package spins

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/repos/spins"
)

var _ spins.Spins = (*spinsRepo)(nil)

type spinsRepo struct{ db *sql.DB }

func New(db *sql.DB) *spinsRepo {
	return &spinsRepo{db: db}
}

func (r *spinsRepo) Claim(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, now, notBefore time.Time, won bool) (bool, error) {
	var id uuid.UUID

	err := tx.QueryRowContext(ctx, `
		INSERT INTO daily_spins (account_id, last_spin_at, won)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id) DO UPDATE
		SET last_spin_at = EXCLUDED.last_spin_at,
		    won          = EXCLUDED.won
		WHERE daily_spins.last_spin_at <= $4
		RETURNING account_id
	`, accountID, now, won, notBefore).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, fmt.Errorf("claim spin: %w", err)
	}

	return true, nil
}

func (r *spinsRepo) Last(ctx context.Context, accountID uuid.UUID) (time.Time, error) {
	var last time.Time

	err := r.db.QueryRowContext(ctx, `
		SELECT last_spin_at FROM daily_spins WHERE account_id = $1
	`, accountID).Scan(&last)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}

		return time.Time{}, fmt.Errorf("last spin: %w", err)
	}

	return last, nil
}
