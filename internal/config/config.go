package config

import "time"

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" default:"5"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" default:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" default:"30m"`
	LockTimeout     time.Duration `env:"PG_LOCK_TIMEOUT" default:"5s"`
}

// DrawConfig drives the eligibility sweep.
type DrawConfig struct {
	SweepInterval    time.Duration `env:"DRAW_SWEEP_INTERVAL" default:"5m"`
	PostponeInterval time.Duration `env:"DRAW_POSTPONE_INTERVAL" default:"168h"`
}

type DailySpinConfig struct {
	Cooldown time.Duration `env:"DAILY_SPIN_COOLDOWN" default:"24h"`
	// WinOdds is N in "one win every N spins".
	WinOdds int64 `env:"DAILY_SPIN_WIN_ODDS" default:"8"`
}

type AuthConfig struct {
	JWTSecret           string `env:"JWT_SECRET"`
	StripeWebhookSecret string `env:"STRIPE_WEBHOOK_SECRET" default:""`
}
