package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/infra/pgutils"
	"github.com/fastprodman/lucksy/internal/repos/transactions"
)

const accountFK = "transactions_account_fk"

var _ transactions.Transactions = (*transactionsRepo)(nil)

type transactionsRepo struct{ db *sql.DB }

func New(db *sql.DB) *transactionsRepo {
	return &transactionsRepo{db: db}
}

func (r *transactionsRepo) Insert(ctx context.Context, tx *sql.Tx, t domain.Transaction) (bool, error) {
	var id uuid.UUID

	// payment_reference is the idempotency key; NULL never conflicts.
	err := tx.QueryRowContext(ctx, `
		INSERT INTO transactions (id, account_id, amount, category, description, draw_id, entry_id, payment_reference)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (payment_reference) DO NOTHING
		RETURNING id
	`, t.ID, t.AccountID, t.Amount, string(t.Category), t.Description,
		nullUUID(t.DrawID), nullUUID(t.EntryID), nullString(t.PaymentReference),
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		if pgutils.IsForeignKeyViolation(err, accountFK) {
			return false, domain.ErrAccountNotFound
		}

		return false, fmt.Errorf("insert transaction: %w", err)
	}

	return true, nil
}

func (r *transactionsRepo) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, amount, category, description, draw_id, entry_id, payment_reference, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction

	for rows.Next() {
		var (
			t        domain.Transaction
			category string
			drawID   uuid.NullUUID
			entryID  uuid.NullUUID
			ref      sql.NullString
		)

		err = rows.Scan(&t.ID, &t.AccountID, &t.Amount, &category, &t.Description, &drawID, &entryID, &ref, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		t.Category = domain.TxCategory(category)

		if drawID.Valid {
			t.DrawID = &drawID.UUID
		}

		if entryID.Valid {
			t.EntryID = &entryID.UUID
		}

		if ref.Valid {
			t.PaymentReference = &ref.String
		}

		out = append(out, t)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return out, nil
}

func (r *transactionsRepo) SumByAccount(ctx context.Context, accountID uuid.UUID) (int64, error) {
	var sum int64

	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)::BIGINT
		FROM transactions
		WHERE account_id = $1
	`, accountID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}

	return sum, nil
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}

	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: *s, Valid: true}
}
