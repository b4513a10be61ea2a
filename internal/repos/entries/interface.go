package entries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
)

type Entries interface {
	// Insert writes e as active and returns it with its creation time.
	Insert(ctx context.Context, tx *sql.Tx, e domain.Entry) (domain.Entry, error)
	// ListActiveForDraw returns the draw's active entries in creation order.
	ListActiveForDraw(ctx context.Context, tx *sql.Tx, drawID uuid.UUID) ([]domain.Entry, error)
	// Finalize moves every active entry of the draw to won (winnerID) or
	// processed and returns how many rows moved.
	Finalize(ctx context.Context, tx *sql.Tx, drawID, winnerID uuid.UUID) (int64, error)
	// MarkRefunded moves every active entry of the draw to refunded.
	MarkRefunded(ctx context.Context, tx *sql.Tx, drawID uuid.UUID) (int64, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Entry, error)
}
