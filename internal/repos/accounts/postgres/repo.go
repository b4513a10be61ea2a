package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/repos/accounts"
)

var _ accounts.Accounts = (*accountsRepo)(nil)

type accountsRepo struct{ db *sql.DB }

func New(db *sql.DB) *accountsRepo {
	return &accountsRepo{db: db}
}

// Create inserts an empty account. It reports false when the id already
// exists.
func (r *accountsRepo) Create(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id) VALUES ($1)
		ON CONFLICT (id) DO NOTHING
	`, id)
	if err != nil {
		return false, fmt.Errorf("insert account: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}

	return affected == 1, nil
}

func (r *accountsRepo) Get(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	var a domain.Account

	err := r.db.QueryRowContext(ctx, `
		SELECT id, balance, total_wins, created_at
		FROM accounts
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Balance, &a.TotalWins, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	return a, nil
}

func (r *accountsRepo) Exists(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	var exists bool

	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM accounts WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check exists: %w", err)
	}

	if !exists {
		return domain.ErrAccountNotFound
	}

	return nil
}
