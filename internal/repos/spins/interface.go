package spins

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type Spins interface {
	// Claim records a spin at now unless the account already spun after
	// notBefore. It reports false when the cooldown is still running.
	Claim(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, now, notBefore time.Time, won bool) (bool, error)
	// Last returns the time of the account's last spin, zero if none.
	Last(ctx context.Context, accountID uuid.UUID) (time.Time, error)
}
