package entries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/repos/entries"
)

var _ entries.Entries = (*entriesRepo)(nil)

type entriesRepo struct{ db *sql.DB }

func New(db *sql.DB) *entriesRepo {
	return &entriesRepo{db: db}
}

func (r *entriesRepo) Insert(ctx context.Context, tx *sql.Tx, e domain.Entry) (domain.Entry, error) {
	e.Status = domain.EntryActive

	err := tx.QueryRowContext(ctx, `
		INSERT INTO entries (id, account_id, draw_id, tickets_spent, status)
		VALUES ($1, $2, $3, $4, 'active')
		RETURNING created_at
	`, e.ID, e.AccountID, e.DrawID, e.TicketsSpent).Scan(&e.CreatedAt)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("insert entry: %w", err)
	}

	return e, nil
}

func (r *entriesRepo) ListActiveForDraw(ctx context.Context, tx *sql.Tx, drawID uuid.UUID) ([]domain.Entry, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id, account_id, draw_id, tickets_spent, status, created_at
		FROM entries
		WHERE draw_id = $1
		  AND status = 'active'
		ORDER BY created_at, id
	`, drawID)
	if err != nil {
		return nil, fmt.Errorf("query draw entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *entriesRepo) Finalize(ctx context.Context, tx *sql.Tx, drawID, winnerID uuid.UUID) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE entries
		SET status = CASE WHEN id = $2 THEN 'won' ELSE 'processed' END
		WHERE draw_id = $1
		  AND status = 'active'
	`, drawID, winnerID)
	if err != nil {
		return 0, fmt.Errorf("finalize entries: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return affected, nil
}

func (r *entriesRepo) MarkRefunded(ctx context.Context, tx *sql.Tx, drawID uuid.UUID) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE entries
		SET status = 'refunded'
		WHERE draw_id = $1
		  AND status = 'active'
	`, drawID)
	if err != nil {
		return 0, fmt.Errorf("refund entries: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return affected, nil
}

func (r *entriesRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, draw_id, tickets_spent, status, created_at
		FROM entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("query account entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]domain.Entry, error) {
	var out []domain.Entry

	for rows.Next() {
		var (
			e      domain.Entry
			status string
		)

		err := rows.Scan(&e.ID, &e.AccountID, &e.DrawID, &e.TicketsSpent, &status, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}

		e.Status = domain.EntryStatus(status)
		out = append(out, e)
	}

	err := rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return out, nil
}
