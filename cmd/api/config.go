package main

import (
	"log/slog"
	"time"

	"github.com/fastprodman/lucksy/internal/config"
)

type apiConfig struct {
	Port            uint16        `env:"APP_PORT" default:"8080"`
	LogLevel        slog.Level    `env:"APP_LOG_LEVEL" default:"INFO"`
	ShutdownTimeout time.Duration `env:"APP_SHUTDOWN_TIMEOUT" default:"15s"`
	// CatalogPath overrides the embedded ticket package catalog.
	CatalogPath string `env:"TICKET_CATALOG_PATH" default:""`

	Postgres config.PostgresConfig
	Draw     config.DrawConfig
	Spin     config.DailySpinConfig
	Auth     config.AuthConfig
}
