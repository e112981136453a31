// Package scheduler wraps robfig/cron for the daily screening trigger.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
)

// Scheduler runs registered jobs on cron schedules.
type Scheduler struct {
	cron   *cron.Cron
	logger arbor.ILogger
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(logger arbor.ILogger) *Scheduler {
	if logger == nil {
		logger = common.GetLogger()
	}
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// Schedule registers a job under a standard 5-field cron expression.
func (s *Scheduler) Schedule(spec string, name string, job func()) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.logger.Info().Str("job", name).Msg("Scheduled job triggered")
		job()
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("job", name).
		Str("schedule", spec).
		Msg("Scheduled job registered")

	return nil
}

// Start begins running scheduled jobs in their own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("Scheduler started")
}

// Stop halts scheduling and waits for any running job to finish.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info().Msg("Scheduler stopping")
	return s.cron.Stop()
}
