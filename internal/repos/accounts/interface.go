package accounts

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
)

type Accounts interface {
	Create(ctx context.Context, id uuid.UUID) (bool, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Account, error)
	Exists(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
	// ApplyDelta adds delta to the balance in one conditional statement and
	// returns the new balance. It fails with domain.ErrInsufficientBalance
	// when the result would be negative.
	ApplyDelta(ctx context.Context, tx *sql.Tx, id uuid.UUID, delta int64) (int64, error)
	IncrementWins(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
}
