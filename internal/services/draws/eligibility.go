package draws

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fastprodman/lucksy/internal/domain"
	"github.com/fastprodman/lucksy/internal/infra/metrics"
	"github.com/fastprodman/lucksy/internal/infra/pgutils"
)

// Evaluate classifies every active draw whose deadline has passed.
// Underfunded draws are postponed here; funded ones are only reported, their
// status changes when settlement commits. Concurrent or repeated runs
// postpone a draw at most once per deadline. A draw that cannot be postponed
// is reported as failed and the remaining draws are still evaluated.
func (s *DrawService) Evaluate(ctx context.Context) ([]Evaluation, error) {
	now := s.now()

	due, err := s.draws.ListDue(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list due draws: %w", err)
	}

	out := make([]Evaluation, 0, len(due))

	for _, d := range due {
		if d.TicketsSold >= d.Quota {
			out = append(out, Evaluation{DrawID: d.ID, Outcome: OutcomeReady})
			continue
		}

		var (
			deadline  time.Time
			postponed bool
		)

		err = pgutils.WithTxOpts(ctx, s.db, s.txOpts, func(tx *sql.Tx) error {
			var err error

			deadline, postponed, err = s.draws.Postpone(ctx, tx, d.ID, now, s.postpone)

			return err
		})
		if err != nil {
			s.log.ErrorContext(ctx, "postpone failed",
				slog.String("draw_id", d.ID.String()),
				slog.Any("err", err),
			)

			out = append(out, Evaluation{DrawID: d.ID, Outcome: OutcomeFailed, Error: err.Error()})

			continue
		}

		// Another sweep got there first.
		if !postponed {
			continue
		}

		metrics.DrawOutcomes.WithLabelValues("postponed").Inc()
		s.log.InfoContext(ctx, "draw postponed",
			slog.String("draw_id", d.ID.String()),
			slog.Int64("tickets_sold", d.TicketsSold),
			slog.Int64("quota", d.Quota),
			slog.Time("new_deadline", deadline),
		)

		out = append(out, Evaluation{DrawID: d.ID, Outcome: OutcomePostponed, NewDeadline: &deadline})
	}

	return out, nil
}

// Sweep evaluates due draws and settles the ready ones. A draw that fails to
// postpone or settle is reported and left active for the next sweep.
func (s *DrawService) Sweep(ctx context.Context) (SweepReport, error) {
	start := time.Now()
	defer func() { metrics.SweepDuration.Observe(time.Since(start).Seconds()) }()

	evals, err := s.Evaluate(ctx)

	report := SweepReport{Evaluated: evals}

	if err != nil {
		return report, fmt.Errorf("sweep: %w", err)
	}

	for _, ev := range evals {
		if ev.Outcome == OutcomeFailed {
			report.Failed = append(report.Failed, DrawFailure{DrawID: ev.DrawID, Error: ev.Error})
			continue
		}

		if ev.Outcome != OutcomeReady {
			continue
		}

		res, err := s.RunDraw(ctx, ev.DrawID)

		switch {
		case err == nil:
			report.Settled = append(report.Settled, res)
		case errors.Is(err, domain.ErrAlreadySettled):
			report.AlreadySettled = append(report.AlreadySettled, ev.DrawID)
		default:
			s.log.ErrorContext(ctx, "settle failed",
				slog.String("draw_id", ev.DrawID.String()),
				slog.Any("err", err),
			)

			report.Failed = append(report.Failed, DrawFailure{DrawID: ev.DrawID, Error: err.Error()})
		}
	}

	return report, nil
}
