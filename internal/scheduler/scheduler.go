// Package scheduler fires backup triggers on the configured cadence.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"github.com/rauves/backstop/internal/mailbox"
	"github.com/rauves/backstop/internal/worker"
)

// Scheduler drives the trigger mailbox from a cron schedule. It only ever
// puts triggers; the worker decides when they actually run, and the
// single-slot mailbox guarantees overlapping fires collapse into one.
type Scheduler struct {
	spec string
	mb   *mailbox.Mailbox[worker.Trigger]
	log  *log.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

func New(spec string, mb *mailbox.Mailbox[worker.Trigger], logger *log.Logger) *Scheduler {
	return &Scheduler{
		spec: spec,
		mb:   mb,
		log:  logger,
		cron: cron.New(),
	}
}

// Start begins firing triggers and stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := cron.ParseStandard(s.spec); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.spec, err)
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		s.mb.Put(worker.Trigger{At: time.Now(), Reason: "schedule"})
	})
	if err != nil {
		return fmt.Errorf("scheduling backups: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.log.Info("scheduler started", "schedule", s.spec)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for an in-flight fire to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	<-s.cron.Stop().Done()
	s.running = false
	s.log.Info("scheduler stopped")
}
