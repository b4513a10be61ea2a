package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
)

func (r *accountsRepo) ApplyDelta(ctx context.Context, tx *sql.Tx, id uuid.UUID, delta int64) (int64, error) {
	var balance int64

	// The guard and the write are one statement; the row lock it takes is
	// held until the surrounding transaction ends.
	err := tx.QueryRowContext(ctx, `
		UPDATE accounts
		SET balance = balance + $2
		WHERE id = $1
		  AND balance + $2 >= 0
		RETURNING balance
	`, id, delta).Scan(&balance)
	if err == nil {
		return balance, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("apply delta: %w", err)
	}

	err = r.Exists(ctx, tx, id)
	if err != nil {
		return 0, err
	}

	return 0, domain.ErrInsufficientBalance
}

func (r *accountsRepo) IncrementWins(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET total_wins = total_wins + 1
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("increment wins: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}
