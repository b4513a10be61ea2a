// Package metrics holds the Prometheus collectors for the draw pipeline.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lucksy"

// ─── Ledger ─────────────────────────────────────────────────────────────────

// BalanceAdjustments counts committed balance changes by category.
var BalanceAdjustments = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "adjustments_total",
	Help:      "Balance adjustments applied, by transaction category.",
}, []string{"category"})

// TicketsMoved sums absolute ticket amounts moved, by category.
var TicketsMoved = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "ledger",
	Name:      "tickets_total",
	Help:      "Tickets credited or debited, by transaction category.",
}, []string{"category"})

// PaymentCredits counts webhook credits by result (credited, duplicate).
var PaymentCredits = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "payments",
	Name:      "credits_total",
	Help:      "Payment credit attempts by result.",
}, []string{"result"})

// ─── Entries ────────────────────────────────────────────────────────────────

// EntryAdmissions counts admission attempts by result.
var EntryAdmissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "entries",
	Name:      "admissions_total",
	Help:      "Entry admission attempts by result.",
}, []string{"result"})

// ─── Draws ──────────────────────────────────────────────────────────────────

// DrawOutcomes counts eligibility and settlement outcomes.
var DrawOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "draws",
	Name:      "outcomes_total",
	Help:      "Draw outcomes: postponed, settled, already_settled, failed, cancelled.",
}, []string{"outcome"})

// SweepDuration observes full eligibility sweeps.
var SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "draws",
	Name:      "sweep_duration_seconds",
	Help:      "Duration of one eligibility sweep.",
	Buckets:   prometheus.DefBuckets,
})

// ─── Daily wheel ────────────────────────────────────────────────────────────

// DailySpins counts wheel spins by result (won, lost, cooldown).
var DailySpins = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "wheel",
	Name:      "spins_total",
	Help:      "Daily wheel spins by result.",
}, []string{"result"})

// Result labels an operation outcome from its error: "ok" or a short reason.
func Result(err error, reasons map[error]string) string {
	if err == nil {
		return "ok"
	}

	for target, label := range reasons {
		if errors.Is(err, target) {
			return label
		}
	}

	return "error"
}
