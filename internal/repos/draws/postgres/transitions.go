package draws

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/repos/draws"
)

func (r *drawsRepo) Postpone(ctx context.Context, tx *sql.Tx, id uuid.UUID, now time.Time, interval time.Duration) (time.Time, bool, error) {
	var deadline time.Time

	err := tx.QueryRowContext(ctx, `
		UPDATE draws
		SET deadline = GREATEST(deadline, $2) + make_interval(secs => $3)
		WHERE id = $1
		  AND status = 'active'
		  AND deadline <= $2
		  AND tickets_sold < quota
		RETURNING deadline
	`, id, now, interval.Seconds()).Scan(&deadline)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}

		return time.Time{}, false, fmt.Errorf("postpone draw: %w", err)
	}

	return deadline, true, nil
}

func (r *drawsRepo) AddTicketsSold(ctx context.Context, tx *sql.Tx, id uuid.UUID, n int64) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE draws
		SET tickets_sold = tickets_sold + $2
		WHERE id = $1
		  AND status = 'active'
	`, id, n)
	if err != nil {
		return fmt.Errorf("add tickets sold: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return domain.ErrDrawNotActive
	}

	return nil
}

func (r *drawsRepo) Complete(ctx context.Context, tx *sql.Tx, id uuid.UUID, c draws.Completion) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE draws
		SET status            = 'completed',
		    winner_account_id = $2,
		    winner_entry_id   = $3,
		    proof_hash        = $4,
		    proof_salt        = $5,
		    proof_selected_at = $6,
		    proof_roll        = $7,
		    proof_total       = $8
		WHERE id = $1
		  AND status = 'active'
	`, id, c.WinnerAccountID, c.WinnerEntryID,
		c.Proof.Hash, c.Proof.Salt, c.Proof.SelectedAt, c.Proof.Roll, c.Proof.Total)
	if err != nil {
		return fmt.Errorf("complete draw: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return domain.ErrAlreadySettled
	}

	return nil
}

func (r *drawsRepo) Cancel(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE draws
		SET status = 'cancelled'
		WHERE id = $1
		  AND status = 'active'
	`, id)
	if err != nil {
		return fmt.Errorf("cancel draw: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return domain.ErrDrawNotActive
	}

	return nil
}
