package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/services/draws"
	"github.com/fastprodman/lucksy/internal/services/entries"
	"github.com/fastprodman/lucksy/internal/services/wallet"
)

//go:generate mockgen -source=services.go -destination=mocks/services.go -package=mocks

type Wallet interface {
	CreateAccount(ctx context.Context, id uuid.UUID) (domain.Account, bool, error)
	GetAccount(ctx context.Context, id uuid.UUID) (domain.Account, error)
	History(ctx context.Context, id uuid.UUID, limit int) ([]domain.Transaction, error)
	CreditTickets(ctx context.Context, req wallet.CreditRequest) (int64, error)
	SpinWheel(ctx context.Context, accountID uuid.UUID) (wallet.SpinResult, error)
	NextSpin(ctx context.Context, accountID uuid.UUID) (time.Duration, error)
	Reconcile(ctx context.Context, id uuid.UUID) (wallet.Reconciliation, error)
}

type Entries interface {
	AdmitEntry(ctx context.Context, accountID, drawID uuid.UUID, tickets int64) (entries.Admission, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]domain.Entry, error)
}

type Draws interface {
	CreateDraw(ctx context.Context, req draws.CreateRequest) (domain.Draw, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Draw, error)
	VerifyProof(ctx context.Context, id uuid.UUID) (draws.ProofCheck, error)
	ListWinners(ctx context.Context, limit int) ([]draws.Winner, error)
	ForceDraw(ctx context.Context, drawID uuid.UUID) (draws.SettlementResult, error)
	CancelDraw(ctx context.Context, drawID uuid.UUID) (draws.CancelResult, error)
	Sweep(ctx context.Context) (draws.SweepReport, error)
}
