// Package scheduler runs recurring background jobs independently of the
// request-handling lifecycle.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Job is a unit of background work. It receives the scheduler's context and
// should return promptly once that context is cancelled.
type Job func(ctx context.Context)

// Scheduler wraps a cron runner with context-based cancellation.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a stopped Scheduler. Jobs added before Start receive a context
// derived from the one passed here.
func New(ctx context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	return &Scheduler{cron: cron.New(), ctx: ctx, cancel: cancel}
}

// Add registers a job under a cron spec such as "0 9 * * *" (daily at
// 09:00, wall clock).
func (s *Scheduler) Add(spec string, name string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		if s.ctx.Err() != nil {
			return
		}
		slog.Debug("Running scheduled job", "job", name)
		job(s.ctx)
	})
	return err
}

// Start begins firing jobs in their own goroutine. Non-blocking.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels the job context, halts scheduling, and waits for any running
// job to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}
