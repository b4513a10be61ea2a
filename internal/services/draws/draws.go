// Package draws runs the draw lifecycle: eligibility sweeps, winner
// selection, settlement and administrative cancellation.
package draws

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/infra/pgutils"
	"github.com/fastprodman/lucksy/internal/infra/randsrc"
	"github.com/fastprodman/lucksy/internal/repos/accounts"
	pgaccounts "github.com/fastprodman/lucksy/internal/repos/accounts/postgres"
	"github.com/fastprodman/lucksy/internal/repos/draws"
	pgdraws "github.com/fastprodman/lucksy/internal/repos/draws/postgres"
	"github.com/fastprodman/lucksy/internal/repos/entries"
	pgentries "github.com/fastprodman/lucksy/internal/repos/entries/postgres"
	"github.com/fastprodman/lucksy/internal/services/wallet"
)

// Ledger is the balance primitive prizes and refunds are paid through.
type Ledger interface {
	AdjustBalance(ctx context.Context, tx *sql.Tx, adj wallet.Adjustment) (int64, error)
}

type Options struct {
	TxOptions pgutils.TxOptions
	// PostponeInterval is how far an underfunded due draw is pushed out.
	PostponeInterval time.Duration
	Random           randsrc.Source
	Now              func() time.Time
	Logger           *slog.Logger
}

type DrawService struct {
	db       *sql.DB
	txOpts   pgutils.TxOptions
	ledger   Ledger
	accounts accounts.Accounts
	draws    draws.Draws
	entries  entries.Entries
	postpone time.Duration
	random   randsrc.Source
	now      func() time.Time
	log      *slog.Logger
}

func New(dbx *sql.DB, ledger Ledger, opts Options) *DrawService {
	if opts.Random == nil {
		opts.Random = randsrc.Crypto{}
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.PostponeInterval <= 0 {
		opts.PostponeInterval = 7 * 24 * time.Hour
	}

	return &DrawService{
		db:       dbx,
		txOpts:   opts.TxOptions,
		ledger:   ledger,
		accounts: pgaccounts.New(dbx),
		draws:    pgdraws.New(dbx),
		entries:  pgentries.New(dbx),
		postpone: opts.PostponeInterval,
		random:   opts.Random,
		now:      opts.Now,
		log:      opts.Logger,
	}
}

// CreateDraw opens a new active draw.
func (s *DrawService) CreateDraw(ctx context.Context, req CreateRequest) (domain.Draw, error) {
	if req.MinTickets == 0 {
		req.MinTickets = 1
	}

	err := req.validate(s.now())
	if err != nil {
		return domain.Draw{}, fmt.Errorf("create draw: %w", err)
	}

	d := domain.Draw{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Quota:        req.Quota,
		MinTickets:   req.MinTickets,
		PrizeTickets: req.PrizeTickets,
		Deadline:     req.Deadline,
	}

	err = s.draws.Create(ctx, d)
	if err != nil {
		return domain.Draw{}, fmt.Errorf("create draw: %w", err)
	}

	return s.Get(ctx, d.ID)
}

func (s *DrawService) Get(ctx context.Context, id uuid.UUID) (domain.Draw, error) {
	d, err := s.draws.Get(ctx, id)
	if err != nil {
		return domain.Draw{}, fmt.Errorf("get draw: %w", err)
	}

	return d, nil
}

const defaultWinnersLimit = 50

// ListWinners returns completed draws with their winner, most recently
// settled first.
func (s *DrawService) ListWinners(ctx context.Context, limit int) ([]Winner, error) {
	if limit <= 0 {
		limit = defaultWinnersLimit
	}

	completed, err := s.draws.ListCompleted(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list winners: %w", err)
	}

	out := make([]Winner, 0, len(completed))

	for _, d := range completed {
		if d.WinnerAccountID == nil || d.WinnerEntryID == nil || d.Proof == nil {
			continue
		}

		out = append(out, Winner{
			DrawID:          d.ID,
			DrawName:        d.Name,
			PrizeTickets:    d.PrizeTickets,
			TicketsSold:     d.TicketsSold,
			WinnerAccountID: *d.WinnerAccountID,
			WinnerEntryID:   *d.WinnerEntryID,
			ProofHash:       d.Proof.Hash,
			SettledAt:       d.Proof.SelectedAt,
		})
	}

	return out, nil
}

// VerifyProof recomputes a completed draw's proof hash from its stored
// inputs.
func (s *DrawService) VerifyProof(ctx context.Context, id uuid.UUID) (ProofCheck, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return ProofCheck{}, err
	}

	if d.Status != domain.DrawCompleted || d.Proof == nil {
		return ProofCheck{}, fmt.Errorf("draw %s is %s: %w", id, d.Status, domain.ErrDrawNotReady)
	}

	recomputed := ComputeProof(d.ID, *d.WinnerAccountID, *d.WinnerEntryID, *d.Proof)

	return ProofCheck{
		DrawID:          d.ID,
		WinnerAccountID: *d.WinnerAccountID,
		WinnerEntryID:   *d.WinnerEntryID,
		Proof:           *d.Proof,
		Recomputed:      recomputed,
		Valid:           recomputed == d.Proof.Hash,
	}, nil
}
