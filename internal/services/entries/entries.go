// Package entries admits accounts into draws.
package entries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/infra/metrics"
	"github.com/fastprodman/lucksy/internal/infra/pgutils"
	"github.com/fastprodman/lucksy/internal/repos/accounts"
	pgaccounts "github.com/fastprodman/lucksy/internal/repos/accounts/postgres"
	"github.com/fastprodman/lucksy/internal/repos/draws"
	pgdraws "github.com/fastprodman/lucksy/internal/repos/draws/postgres"
	"github.com/fastprodman/lucksy/internal/repos/entries"
	pgentries "github.com/fastprodman/lucksy/internal/repos/entries/postgres"
	"github.com/fastprodman/lucksy/internal/services/wallet"
)

const defaultListLimit = 50

// Ledger is the balance primitive admission debits through.
type Ledger interface {
	AdjustBalance(ctx context.Context, tx *sql.Tx, adj wallet.Adjustment) (int64, error)
}

type EntryService struct {
	db       *sql.DB
	txOpts   pgutils.TxOptions
	ledger   Ledger
	accounts accounts.Accounts
	draws    draws.Draws
	entries  entries.Entries
	now      func() time.Time
}

func New(dbx *sql.DB, ledger Ledger, txOpts pgutils.TxOptions) *EntryService {
	return &EntryService{
		db:       dbx,
		txOpts:   txOpts,
		ledger:   ledger,
		accounts: pgaccounts.New(dbx),
		draws:    pgdraws.New(dbx),
		entries:  pgentries.New(dbx),
		now:      time.Now,
	}
}

// Admission is the outcome of a successful AdmitEntry.
type Admission struct {
	Entry       domain.Entry `json:"entry"`
	Balance     int64        `json:"balance"`
	TicketsSold int64        `json:"ticketsSold"`
}

// AdmitEntry spends tickets from an account on one entry in a draw. The
// draw row is locked first, then the account row, so admission serializes
// with settlement of the same draw. Either the debit, the entry and the
// tickets-sold increment all commit or none do.
//
// Tickets-sold may end above the quota; every entry admitted before
// settlement takes part in the selection.
func (s *EntryService) AdmitEntry(ctx context.Context, accountID, drawID uuid.UUID, tickets int64) (Admission, error) {
	if tickets <= 0 {
		return Admission{}, fmt.Errorf("admit entry: %d tickets: %w", tickets, domain.ErrInvalidAmount)
	}

	var (
		out Admission
		adj wallet.Adjustment
	)

	err := pgutils.WithTxOpts(ctx, s.db, s.txOpts, func(tx *sql.Tx) error {
		d, err := s.draws.LockForUpdate(ctx, tx, drawID)
		if err != nil {
			return fmt.Errorf("lock draw: %w", err)
		}

		if d.Status != domain.DrawActive || d.Due(s.now()) {
			return fmt.Errorf("draw %s is %s: %w", drawID, d.Status, domain.ErrDrawNotActive)
		}

		if tickets < d.MinTickets {
			return fmt.Errorf("%d tickets below minimum %d: %w", tickets, d.MinTickets, domain.ErrInvalidAmount)
		}

		err = s.accounts.Exists(ctx, tx, accountID)
		if err != nil {
			return err
		}

		out.Entry, err = s.entries.Insert(ctx, tx, domain.Entry{
			ID:           uuid.New(),
			AccountID:    accountID,
			DrawID:       drawID,
			TicketsSpent: tickets,
			Status:       domain.EntryActive,
		})
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}

		adj = wallet.Adjustment{
			AccountID:   accountID,
			Delta:       -tickets,
			Category:    domain.TxSpend,
			Description: fmt.Sprintf("Entry into %s", d.Name),
			DrawID:      &drawID,
			EntryID:     &out.Entry.ID,
		}

		out.Balance, err = s.ledger.AdjustBalance(ctx, tx, adj)
		if err != nil {
			return fmt.Errorf("debit: %w", err)
		}

		err = s.draws.AddTicketsSold(ctx, tx, drawID, tickets)
		if err != nil {
			return fmt.Errorf("add tickets sold: %w", err)
		}

		out.TicketsSold = d.TicketsSold + tickets

		return nil
	})

	metrics.EntryAdmissions.WithLabelValues(metrics.Result(err, map[error]string{
		domain.ErrInsufficientBalance: "insufficient_balance",
		domain.ErrDrawNotActive:       "draw_not_active",
		domain.ErrInvalidAmount:       "invalid_amount",
		domain.ErrTransient:           "transient",
	})).Inc()

	if err != nil {
		return Admission{}, fmt.Errorf("admit entry: %w", err)
	}

	wallet.Observe(adj)

	return out, nil
}

// ListByAccount returns an account's newest entries.
func (s *EntryService) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	list, err := s.entries.ListByAccount(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return list, nil
}
