package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/fastprodman/lucksy/internal/api"
	"github.com/fastprodman/lucksy/internal/catalog"
	"github.com/fastprodman/lucksy/internal/infra/logging"
	"github.com/fastprodman/lucksy/internal/infra/pgutils"
	"github.com/fastprodman/lucksy/internal/services/draws"
	"github.com/fastprodman/lucksy/internal/services/entries"
	"github.com/fastprodman/lucksy/internal/services/wallet"
	"github.com/fastprodman/lucksy/pkg/envconf"
	"github.com/fastprodman/lucksy/pkg/scheduler"
	"github.com/fastprodman/lucksy/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v\n", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := new(apiConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is empty")
	}

	logging.SetupJSON(cfg.LogLevel, "api")

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	dbConns, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	shutdownqueue.Add("postgres", func(context.Context) error {
		return dbConns.Close()
	})

	packages, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	// --- Services ---
	txOpts := pgutils.TxOptions{LockTimeout: cfg.Postgres.LockTimeout}

	walletSrv := wallet.New(dbConns, wallet.Options{TxOptions: txOpts, Spin: cfg.Spin})
	entrySrv := entries.New(dbConns, walletSrv, txOpts)
	drawSrv := draws.New(dbConns, walletSrv, draws.Options{
		TxOptions:        txOpts,
		PostponeInterval: cfg.Draw.PostponeInterval,
		Logger:           slog.Default().With("service", "draws"),
	})

	// --- Eligibility sweep ---
	sched := scheduler.New(slog.Default())
	err = sched.Add("draw sweep", cfg.Draw.SweepInterval, func(c context.Context) error {
		_, serr := drawSrv.Sweep(c)
		return serr
	})
	if err != nil {
		return fmt.Errorf("schedule sweep: %w", err)
	}

	sched.Start(ctx)

	shutdownqueue.Add("scheduler", sched.Stop)

	// --- HTTP server ---
	srv := api.NewServer(cfg.Port, api.Deps{
		Wallet:              walletSrv,
		Entries:             entrySrv,
		Draws:               drawSrv,
		Catalog:             packages,
		JWTSecret:           cfg.Auth.JWTSecret,
		StripeWebhookSecret: cfg.Auth.StripeWebhookSecret,
	})

	shutdownqueue.Add("http server", func(c context.Context) error {
		slog.Info("Shut down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", slog.Int("port", int(cfg.Port)))

	select {
	case <-ctx.Done():
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
