// Package wallet owns every ticket balance change. Other services reach the
// ledger only through AdjustBalance so each change writes exactly one
// transaction row in the same database transaction.
package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/config"
	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/infra/metrics"
	"github.com/fastprodman/lucksy/internal/infra/pgutils"
	"github.com/fastprodman/lucksy/internal/infra/randsrc"
	"github.com/fastprodman/lucksy/internal/repos/accounts"
	pgaccounts "github.com/fastprodman/lucksy/internal/repos/accounts/postgres"
	"github.com/fastprodman/lucksy/internal/repos/spins"
	pgspins "github.com/fastprodman/lucksy/internal/repos/spins/postgres"
	"github.com/fastprodman/lucksy/internal/repos/transactions"
	pgtransactions "github.com/fastprodman/lucksy/internal/repos/transactions/postgres"
)

const defaultHistoryLimit = 50

type Options struct {
	TxOptions pgutils.TxOptions
	Spin      config.DailySpinConfig
	Random    randsrc.Source
	Now       func() time.Time
}

type WalletService struct {
	db       *sql.DB
	txOpts   pgutils.TxOptions
	accounts accounts.Accounts
	txns     transactions.Transactions
	spins    spins.Spins
	spin     config.DailySpinConfig
	random   randsrc.Source
	now      func() time.Time
}

func New(dbx *sql.DB, opts Options) *WalletService {
	if opts.Random == nil {
		opts.Random = randsrc.Crypto{}
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &WalletService{
		db:       dbx,
		txOpts:   opts.TxOptions,
		accounts: pgaccounts.New(dbx),
		txns:     pgtransactions.New(dbx),
		spins:    pgspins.New(dbx),
		spin:     opts.Spin,
		random:   opts.Random,
		now:      opts.Now,
	}
}

// AdjustBalance applies a signed delta to one account inside tx and appends
// the matching ledger row. The balance never goes negative: a debit larger
// than the balance fails with domain.ErrInsufficientBalance and leaves the
// row untouched. When PaymentReference is set and already recorded the
// call fails with domain.ErrAlreadyCredited before the balance moves.
//
// The change is visible to others only once tx commits; callers report
// metrics with Observe after that.
func (s *WalletService) AdjustBalance(ctx context.Context, tx *sql.Tx, adj Adjustment) (int64, error) {
	if adj.Delta == 0 {
		return 0, fmt.Errorf("zero delta: %w", domain.ErrInvalidAmount)
	}

	err := validateSign(adj.Category, adj.Delta)
	if err != nil {
		return 0, err
	}

	inserted, err := s.txns.Insert(ctx, tx, domain.Transaction{
		ID:               uuid.New(),
		AccountID:        adj.AccountID,
		Amount:           adj.Delta,
		Category:         adj.Category,
		Description:      adj.Description,
		DrawID:           adj.DrawID,
		EntryID:          adj.EntryID,
		PaymentReference: adj.PaymentReference,
	})
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	if !inserted {
		return 0, fmt.Errorf("reference %q: %w", *adj.PaymentReference, domain.ErrAlreadyCredited)
	}

	balance, err := s.accounts.ApplyDelta(ctx, tx, adj.AccountID, adj.Delta)
	if err != nil {
		return 0, fmt.Errorf("apply delta: %w", err)
	}

	return balance, nil
}

// Adjust runs AdjustBalance in its own transaction.
func (s *WalletService) Adjust(ctx context.Context, adj Adjustment) (int64, error) {
	var balance int64

	err := pgutils.WithTxOpts(ctx, s.db, s.txOpts, func(tx *sql.Tx) error {
		var err error

		balance, err = s.AdjustBalance(ctx, tx, adj)

		return err
	})
	if err != nil {
		return 0, fmt.Errorf("adjust balance: %w", err)
	}

	Observe(adj)

	return balance, nil
}

// Observe records committed adjustments in the ledger metrics.
func Observe(adjs ...Adjustment) {
	for _, adj := range adjs {
		amount := adj.Delta
		if amount < 0 {
			amount = -amount
		}

		metrics.BalanceAdjustments.WithLabelValues(string(adj.Category)).Inc()
		metrics.TicketsMoved.WithLabelValues(string(adj.Category)).Add(float64(amount))
	}
}

// CreditTickets credits tickets bought through an external payment. The
// payment reference is the idempotency key: a redelivery returns
// domain.ErrAlreadyCredited and changes nothing.
func (s *WalletService) CreditTickets(ctx context.Context, req CreditRequest) (int64, error) {
	if req.Tickets <= 0 {
		return 0, fmt.Errorf("credit %d tickets: %w", req.Tickets, domain.ErrInvalidAmount)
	}

	if req.PaymentReference == "" {
		return 0, errors.New("credit tickets: empty payment reference")
	}

	ref := req.PaymentReference

	if req.Description == "" {
		req.Description = fmt.Sprintf("Purchased %d tickets", req.Tickets)
	}

	balance, err := s.Adjust(ctx, Adjustment{
		AccountID:        req.AccountID,
		Delta:            req.Tickets,
		Category:         domain.TxPurchase,
		Description:      req.Description,
		PaymentReference: &ref,
	})

	metrics.PaymentCredits.WithLabelValues(metrics.Result(err, map[error]string{
		domain.ErrAlreadyCredited: "duplicate",
		domain.ErrAccountNotFound: "unknown_account",
	})).Inc()

	if err != nil {
		return 0, fmt.Errorf("credit tickets: %w", err)
	}

	return balance, nil
}

// CreateAccount opens an empty account. It reports false when the id is
// already taken; the existing account is returned either way.
func (s *WalletService) CreateAccount(ctx context.Context, id uuid.UUID) (domain.Account, bool, error) {
	created, err := s.accounts.Create(ctx, id)
	if err != nil {
		return domain.Account{}, false, fmt.Errorf("create account: %w", err)
	}

	acc, err := s.accounts.Get(ctx, id)
	if err != nil {
		return domain.Account{}, false, fmt.Errorf("get account: %w", err)
	}

	return acc, created, nil
}

// GetAccount returns the account without taking locks.
func (s *WalletService) GetAccount(ctx context.Context, id uuid.UUID) (domain.Account, error) {
	acc, err := s.accounts.Get(ctx, id)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get account: %w", err)
	}

	return acc, nil
}

// History returns the newest ledger rows of an account.
func (s *WalletService) History(ctx context.Context, id uuid.UUID, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	_, err := s.accounts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	txns, err := s.txns.ListByAccount(ctx, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	return txns, nil
}

// Reconcile compares the stored balance with the sum of the account's
// ledger rows.
func (s *WalletService) Reconcile(ctx context.Context, id uuid.UUID) (Reconciliation, error) {
	acc, err := s.accounts.Get(ctx, id)
	if err != nil {
		return Reconciliation{}, fmt.Errorf("get account: %w", err)
	}

	sum, err := s.txns.SumByAccount(ctx, id)
	if err != nil {
		return Reconciliation{}, fmt.Errorf("sum transactions: %w", err)
	}

	return Reconciliation{
		AccountID: id,
		Balance:   acc.Balance,
		LedgerSum: sum,
		Balanced:  acc.Balance == sum,
	}, nil
}
