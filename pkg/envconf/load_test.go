package envconf

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pgSection struct {
	DSN     string        `env:"ENVCONF_TEST_DSN"`
	Timeout time.Duration `env:"ENVCONF_TEST_TIMEOUT" default:"5s"`
}

type sample struct {
	Port     uint16     `env:"ENVCONF_TEST_PORT" default:"8080"`
	Level    slog.Level `env:"ENVCONF_TEST_LEVEL" default:"INFO"`
	Odds     int64      `env:"ENVCONF_TEST_ODDS"`
	Enabled  *bool      `env:"ENVCONF_TEST_ENABLED" default:"true"`
	Postgres pgSection
}

func TestLoad_EnvAndDefaults(t *testing.T) {
	t.Setenv("ENVCONF_TEST_DSN", "postgres://x")
	t.Setenv("ENVCONF_TEST_ODDS", "8")
	t.Setenv("ENVCONF_TEST_LEVEL", "DEBUG")

	var cfg sample
	require.NoError(t, Load(&cfg))

	assert.Equal(t, uint16(8080), cfg.Port)
	assert.Equal(t, slog.LevelDebug, cfg.Level)
	assert.Equal(t, int64(8), cfg.Odds)
	require.NotNil(t, cfg.Enabled)
	assert.True(t, *cfg.Enabled)
	assert.Equal(t, "postgres://x", cfg.Postgres.DSN)
	assert.Equal(t, 5*time.Second, cfg.Postgres.Timeout)
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	t.Setenv("ENVCONF_TEST_DSN", "postgres://x")
	t.Setenv("ENVCONF_TEST_ODDS", "2")
	t.Setenv("ENVCONF_TEST_PORT", "9090")
	t.Setenv("ENVCONF_TEST_TIMEOUT", "250ms")

	var cfg sample
	require.NoError(t, Load(&cfg))

	assert.Equal(t, uint16(9090), cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Postgres.Timeout)
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("ENVCONF_TEST_ODDS", "2")

	var cfg sample
	err := Load(&cfg)
	require.ErrorIs(t, err, ErrMissingRequired)
	assert.Contains(t, err.Error(), "ENVCONF_TEST_DSN")
}

func TestLoad_BadValue(t *testing.T) {
	t.Setenv("ENVCONF_TEST_DSN", "postgres://x")
	t.Setenv("ENVCONF_TEST_ODDS", "many")

	var cfg sample
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENVCONF_TEST_ODDS")
}

func TestLoadFrom_ReportsEveryField(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"ENVCONF_TEST_ODDS":    "many",
		"ENVCONF_TEST_TIMEOUT": "soon",
	}

	var cfg sample

	err := LoadFrom(func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}, &cfg)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMissingRequired)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)

	for _, want := range []string{"ENVCONF_TEST_ODDS", "ENVCONF_TEST_TIMEOUT", "ENVCONF_TEST_DSN", `"Postgres.DSN"`} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadFrom_UnsupportedType(t *testing.T) {
	t.Parallel()

	var cfg struct {
		Hosts []string `env:"HOSTS" default:"a,b"`
	}

	err := LoadFrom(func(string) (string, bool) { return "", false }, &cfg)
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestLoad_RejectsNonPointer(t *testing.T) {
	t.Parallel()

	require.Error(t, Load(sample{}))
	require.Error(t, Load(nil))
}
