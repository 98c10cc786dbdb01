// Package worker runs backups off the trigger mailbox in service mode.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/rauves/backstop/internal/backup"
	"github.com/rauves/backstop/internal/config"
	"github.com/rauves/backstop/internal/mailbox"
	"github.com/rauves/backstop/internal/remote"
)

// Trigger asks the worker to run one backup.
type Trigger struct {
	At     time.Time
	Reason string
}

// Worker executes one backup per trigger, serially. Config is swapped under
// a mutex so hot reloads apply to the next run, never a running one.
type Worker struct {
	mu   sync.RWMutex
	cfg  config.BackupConfig
	opts backup.Options

	store remote.Store
	log   *log.Logger
	mb    *mailbox.Mailbox[Trigger]
}

func New(cfg config.BackupConfig, store remote.Store, logger *log.Logger, mb *mailbox.Mailbox[Trigger], opts backup.Options) *Worker {
	return &Worker{
		cfg:   cfg,
		opts:  opts,
		store: store,
		log:   logger,
		mb:    mb,
	}
}

// Start serves triggers until ctx is cancelled. Failures are logged and the
// loop keeps serving: a daemon must survive a bad run and try again on the
// next schedule fire.
func (w *Worker) Start(ctx context.Context) {
	w.log.Info("worker started")
	for {
		trigger, ok := w.mb.Take(ctx)
		if !ok {
			w.log.Info("worker stopped")
			return
		}
		w.log.Info("backup triggered", "reason", trigger.Reason, "at", trigger.At)

		w.mu.RLock()
		runner := backup.NewRunner(w.cfg, w.store, w.log, w.opts)
		w.mu.RUnlock()

		if err := runner.Run(ctx); err != nil {
			w.log.Error("backup failed", "error", err)
		}
	}
}

// UpdateConfig applies a reloaded config to subsequent runs.
func (w *Worker) UpdateConfig(cfg config.BackupConfig) {
	w.mu.Lock()
	w.cfg = cfg
	w.mu.Unlock()
}
