// Package refresh keeps the news cache warm on a timer, independent of
// user traffic. A refresh racing a live request on the same cache key
// is tolerated; last writer wins.
package refresh

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const runTimeout = 2 * time.Minute

// Refresher force-populates every cache entry.
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// Runner schedules periodic cache refreshes.
type Runner struct {
	cron *cron.Cron
	svc  Refresher
	log  *zap.Logger
}

func New(svc Refresher, log *zap.Logger) *Runner {
	return &Runner{cron: cron.New(), svc: svc, log: log}
}

// Start registers the refresh job under the given cron spec (e.g.
// "@hourly") and starts the scheduler.
func (r *Runner) Start(spec string) error {
	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return fmt.Errorf("schedule refresh %q: %w", spec, err)
	}
	r.cron.Start()
	r.log.Info("cache refresher started", zap.String("schedule", spec))
	return nil
}

// Stop halts the scheduler; a refresh already in flight finishes.
func (r *Runner) Stop() {
	r.cron.Stop()
}

func (r *Runner) run() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	if err := r.svc.RefreshAll(ctx); err != nil {
		r.log.Error("news cache refresh failed", zap.Error(err))
		return
	}
	r.log.Info("news cache refresh complete")
}
