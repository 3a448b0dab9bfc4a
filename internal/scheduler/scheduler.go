// Package scheduler provides cron-based background job scheduling.
//
// Its single tenant is the periodic sweep that evicts expired form sessions.
package scheduler

import (
	"github.com/robfig/cron/v3"
)

// DefaultSweepSpec is the schedule for the expired-session sweep.
const DefaultSweepSpec = "@every 5m"

// Scheduler wraps a cron runner.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates and starts a cron scheduler. The parser accepts
// standard 5-field expressions plus @every descriptors, and panics in jobs
// are recovered.
func NewScheduler() *Scheduler {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	c := cron.New(cron.WithParser(parser), cron.WithChain(cron.Recover(cron.DefaultLogger)))
	c.Start()
	return &Scheduler{cron: c}
}

// AddJob schedules a task using the provided cron expression.
func (s *Scheduler) AddJob(expr string, task func()) error {
	_, err := s.cron.AddFunc(expr, task)
	return err
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
