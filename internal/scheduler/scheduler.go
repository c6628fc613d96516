// Package scheduler runs periodic background maintenance for the terminal,
// currently a snapshot flush so a power cut between mutations loses nothing.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithLocation(time.UTC))}
}

// Start schedules flush on the given cron spec and begins running. flush is
// called from the cron goroutine; callers that need the dispatch loop post
// into it from there.
func (s *Scheduler) Start(spec string, flush func()) error {
	if flush == nil {
		return fmt.Errorf("flush function not set")
	}
	if _, err := s.cron.AddFunc(spec, flush); err != nil {
		return fmt.Errorf("invalid snapshot schedule %q: %w", spec, err)
	}
	s.cron.Start()
	log.Printf("scheduler started, snapshot flush on %q", spec)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Printf("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
