package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	defaultInterval = 5 * time.Minute
	defaultBatch    = 500
)

type MatchReconciler interface {
	ReconcileAll(ctx context.Context, batch int) (int, error)
}

// Job repairs mutual likes whose match row was never written, for example
// when the process died between recording a like and reconciling the pair.
type Job struct {
	matches  MatchReconciler
	interval time.Duration
	batch    int
	now      func() time.Time
	logger   *zap.Logger
}

func New(matches MatchReconciler, interval time.Duration, batch int, logger *zap.Logger) *Job {
	if interval <= 0 {
		interval = defaultInterval
	}
	if batch <= 0 {
		batch = defaultBatch
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		matches:  matches,
		interval: interval,
		batch:    batch,
		now:      time.Now,
		logger:   logger,
	}
}

// RunOnce drains unmatched mutual likes batch by batch until a pass creates
// fewer rows than the batch size.
func (j *Job) RunOnce(ctx context.Context) (int, error) {
	if j.matches == nil {
		return 0, fmt.Errorf("reconcile job is not configured")
	}

	started := j.now()
	total := 0
	for {
		created, err := j.matches.ReconcileAll(ctx, j.batch)
		total += created
		if err != nil {
			return total, fmt.Errorf("reconcile matches: %w", err)
		}
		if created < j.batch {
			break
		}
		if err := ctx.Err(); err != nil {
			return total, err
		}
	}

	if total > 0 {
		j.logger.Info("reconcile pass repaired matches",
			zap.Int("created", total),
			zap.Duration("took", j.now().Sub(started)),
		)
	} else {
		j.logger.Debug("reconcile pass found nothing to repair")
	}
	return total, nil
}

// Run calls RunOnce immediately and then on every tick until ctx is done.
// Failed passes are logged and retried on the next tick.
func (j *Job) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		if _, err := j.RunOnce(ctx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			j.logger.Error("reconcile pass failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
