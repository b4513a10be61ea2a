package wallet

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
)

// Adjustment is one signed balance change and the ledger row describing it.
type Adjustment struct {
	AccountID   uuid.UUID
	Delta       int64
	Category    domain.TxCategory
	Description string
	DrawID      *uuid.UUID
	EntryID     *uuid.UUID
	// PaymentReference makes the adjustment idempotent. Only purchases
	// carry one.
	PaymentReference *string
}

// validateSign rejects deltas whose sign contradicts the category.
func validateSign(c domain.TxCategory, delta int64) error {
	switch c {
	case domain.TxSpend:
		if delta > 0 {
			return fmt.Errorf("spend must debit: %w", domain.ErrInvalidAmount)
		}
	case domain.TxPurchase, domain.TxWin, domain.TxRefund:
		if delta < 0 {
			return fmt.Errorf("%s must credit: %w", c, domain.ErrInvalidAmount)
		}
	default:
		return fmt.Errorf("unknown category %q: %w", c, domain.ErrInvalidAmount)
	}

	return nil
}

type CreditRequest struct {
	AccountID        uuid.UUID
	Tickets          int64
	PaymentReference string
	Description      string
}

type Reconciliation struct {
	AccountID uuid.UUID `json:"accountId"`
	Balance   int64     `json:"balance"`
	LedgerSum int64     `json:"ledgerSum"`
	Balanced  bool      `json:"balanced"`
}

type SpinResult struct {
	Won        bool      `json:"won"`
	Prize      int64     `json:"prize"`
	Balance    int64     `json:"balance"`
	NextSpinAt time.Time `json:"nextSpinAt"`
}
