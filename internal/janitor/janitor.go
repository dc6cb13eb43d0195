// Package janitor schedules background maintenance of the token
// blacklist. Expired rows are dead weight; a cron job sweeps them on a
// configurable interval.
package janitor

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dtroode/console-server/internal/logger"
)

// Cleaner is the maintenance operation the janitor runs.
type Cleaner interface {
	Cleanup(ctx context.Context) (int64, error)
}

type Janitor struct {
	cron     *cron.Cron
	cleaner  Cleaner
	interval time.Duration
	logger   *logger.Logger
}

func New(cleaner Cleaner, interval time.Duration, logger *logger.Logger) *Janitor {
	return &Janitor{
		cron:     cron.New(),
		cleaner:  cleaner,
		interval: interval,
		logger:   logger,
	}
}

// Start registers the sweep job and starts the scheduler. The first
// sweep runs one interval after start, not immediately.
func (j *Janitor) Start(ctx context.Context) error {
	if j.interval <= 0 {
		return fmt.Errorf("invalid cleanup interval: %s", j.interval)
	}

	spec := fmt.Sprintf("@every %s", j.interval)
	_, err := j.cron.AddFunc(spec, func() {
		deleted, err := j.cleaner.Cleanup(ctx)
		if err != nil {
			j.logger.Error("Janitor: cleanup failed", "error", err.Error())
			return
		}
		j.logger.Debug("Janitor: cleanup finished", "deleted", deleted)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	j.cron.Start()
	j.logger.Info("Janitor: started", "interval", j.interval.String())
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (j *Janitor) Stop(ctx context.Context) error {
	done := j.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
