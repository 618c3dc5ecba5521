// Package scheduler runs the cron job that refreshes the platform
// statistics snapshot.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/kongenga/kongenga/internal/logging"
	"github.com/kongenga/kongenga/internal/server/models"
	"github.com/robfig/cron/v3"
)

// Refresher recomputes and stores the statistics snapshot.
type Refresher interface {
	RefreshStatistics(ctx context.Context) (*models.PlatformStatistics, error)
}

// Scheduler wraps robfig/cron.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string
	logger    logging.Logger

	// initial tracks the refresh Start runs outside the cron loop.
	initial sync.WaitGroup
}

func New(refresher Refresher, spec string, logger logging.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		spec:      spec,
		logger:    logger.With("module", "scheduler"),
	}
}

// Start registers the refresh job, starts the cron loop and runs one
// refresh immediately so the snapshot exists before the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.refresh(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info(ctx, "scheduler started", "spec", s.spec)

	s.initial.Add(1)
	go func() {
		defer s.initial.Done()
		s.refresh(ctx)
	}()
	return nil
}

// Stop halts the cron loop and waits for any running refresh, including
// the one started by Start, to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.initial.Wait()
}

func (s *Scheduler) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if _, err := s.refresher.RefreshStatistics(ctx); err != nil {
		s.logger.Error(ctx, "statistics refresh failed", "error", err)
	}
}
