package metrics

import (
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestResult(t *testing.T) {
	t.Parallel()

	errLow := errors.New("low")
	reasons := map[error]string{errLow: "insufficient"}

	assert.Equal(t, "ok", Result(nil, reasons))
	assert.Equal(t, "insufficient", Result(fmt.Errorf("debit: %w", errLow), reasons))
	assert.Equal(t, "error", Result(errors.New("other"), reasons))
}

func TestCountersRegistered(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(DailySpins.WithLabelValues("test"))
	DailySpins.WithLabelValues("test").Inc()

	assert.InDelta(t, before+1, testutil.ToFloat64(DailySpins.WithLabelValues("test")), 0.0001)
}
