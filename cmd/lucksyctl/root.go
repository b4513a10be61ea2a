package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fastprodman/lucksy/internal/config"
	"github.com/fastprodman/lucksy/internal/infra/logging"
	"github.com/fastprodman/lucksy/internal/infra/pgutils"
	"github.com/fastprodman/lucksy/internal/services/draws"
	"github.com/fastprodman/lucksy/internal/services/wallet"
	"github.com/fastprodman/lucksy/pkg/envconf"
)

type ctlConfig struct {
	LogLevel slog.Level `env:"APP_LOG_LEVEL" default:"WARN"`
	Postgres config.PostgresConfig
	Draw     config.DrawConfig
	Spin     config.DailySpinConfig
}

type services struct {
	wallet *wallet.WalletService
	draws  *draws.DrawService
}

var rootCmd = &cobra.Command{
	Use:           "lucksyctl",
	Short:         "Operate lucksy draws and wallets",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(sweepCmd, drawCmd, creditCmd, reconcileCmd, tokenCmd)
}

// withServices opens the database, builds the services and runs fn.
func withServices(ctx context.Context, fn func(*services) error) error {
	_ = godotenv.Load()

	cfg := new(ctlConfig)

	err := envconf.Load(cfg)
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(cfg.LogLevel, "lucksyctl")

	dbConns, err := pgutils.OpenDB(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	//nolint:errcheck
	defer dbConns.Close()

	txOpts := pgutils.TxOptions{LockTimeout: cfg.Postgres.LockTimeout}
	walletSrv := wallet.New(dbConns, wallet.Options{TxOptions: txOpts, Spin: cfg.Spin})

	return fn(&services{
		wallet: walletSrv,
		draws: draws.New(dbConns, walletSrv, draws.Options{
			TxOptions:        txOpts,
			PostponeInterval: cfg.Draw.PostponeInterval,
		}),
	})
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	err := enc.Encode(v)
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	return nil
}

func stderr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
