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

var _ draws.Draws = (*drawsRepo)(nil)

type drawsRepo struct{ db *sql.DB }

func New(db *sql.DB) *drawsRepo {
	return &drawsRepo{db: db}
}

const drawColumns = `
	id, name, quota, tickets_sold, min_tickets, prize_tickets, deadline, status, created_at,
	winner_account_id, winner_entry_id,
	proof_hash, proof_salt, proof_selected_at, proof_roll, proof_total`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDraw(row rowScanner) (domain.Draw, error) {
	var (
		d             domain.Draw
		status        string
		winnerAccount uuid.NullUUID
		winnerEntry   uuid.NullUUID
		hash          sql.NullString
		salt          sql.NullString
		selectedAt    sql.NullTime
		roll          sql.NullInt64
		total         sql.NullInt64
	)

	err := row.Scan(
		&d.ID, &d.Name, &d.Quota, &d.TicketsSold, &d.MinTickets, &d.PrizeTickets, &d.Deadline, &status, &d.CreatedAt,
		&winnerAccount, &winnerEntry,
		&hash, &salt, &selectedAt, &roll, &total,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Draw{}, domain.ErrDrawNotFound
		}

		return domain.Draw{}, fmt.Errorf("scan draw: %w", err)
	}

	d.Status = domain.DrawStatus(status)

	if winnerAccount.Valid {
		d.WinnerAccountID = &winnerAccount.UUID
	}

	if winnerEntry.Valid {
		d.WinnerEntryID = &winnerEntry.UUID
	}

	if hash.Valid {
		d.Proof = &domain.Proof{
			Hash:       hash.String,
			Salt:       salt.String,
			SelectedAt: selectedAt.Time,
			Roll:       roll.Int64,
			Total:      total.Int64,
		}
	}

	return d, nil
}

func (r *drawsRepo) Create(ctx context.Context, d domain.Draw) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO draws (id, name, quota, min_tickets, prize_tickets, deadline)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, d.ID, d.Name, d.Quota, d.MinTickets, d.PrizeTickets, d.Deadline)
	if err != nil {
		return fmt.Errorf("insert draw: %w", err)
	}

	return nil
}

func (r *drawsRepo) Get(ctx context.Context, id uuid.UUID) (domain.Draw, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+drawColumns+` FROM draws WHERE id = $1`, id)

	return scanDraw(row)
}

func (r *drawsRepo) LockForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (domain.Draw, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+drawColumns+` FROM draws WHERE id = $1 FOR UPDATE`, id)

	return scanDraw(row)
}

func (r *drawsRepo) ListDue(ctx context.Context, now time.Time) ([]draws.DueDraw, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, quota, tickets_sold, deadline
		FROM draws
		WHERE status = 'active'
		  AND deadline <= $1
		ORDER BY deadline, id
	`, now)
	if err != nil {
		return nil, fmt.Errorf("query due draws: %w", err)
	}
	defer rows.Close()

	var out []draws.DueDraw

	for rows.Next() {
		var d draws.DueDraw

		err = rows.Scan(&d.ID, &d.Quota, &d.TicketsSold, &d.Deadline)
		if err != nil {
			return nil, fmt.Errorf("scan due draw: %w", err)
		}

		out = append(out, d)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate due draws: %w", err)
	}

	return out, nil
}

func (r *drawsRepo) ListCompleted(ctx context.Context, limit int) ([]domain.Draw, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+drawColumns+`
		FROM draws
		WHERE status = 'completed'
		ORDER BY proof_selected_at DESC, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query completed draws: %w", err)
	}
	defer rows.Close()

	var out []domain.Draw

	for rows.Next() {
		d, err := scanDraw(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, d)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate completed draws: %w", err)
	}

	return out, nil
}
