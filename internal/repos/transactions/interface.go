package transactions

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
)

type Transactions interface {
	// Insert appends t. When t carries a payment reference that is already
	// recorded nothing is written and Insert reports false.
	Insert(ctx context.Context, tx *sql.Tx, t domain.Transaction) (bool, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Transaction, error)
	SumByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)
}
