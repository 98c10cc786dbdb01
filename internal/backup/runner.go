// Package backup orchestrates one backup run: dump databases, stage
// directories, zip, upload, and prune old remote archives. All remote and
// filesystem side effects live here; the retention decision itself is
// delegated to the pure prune package.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/rauves/backstop/internal/config"
	"github.com/rauves/backstop/internal/database"
	"github.com/rauves/backstop/internal/fs"
	"github.com/rauves/backstop/internal/remote"
	"github.com/rauves/backstop/internal/tools"
)

// Options are the per-invocation switches of a run.
type Options struct {
	// Live enables uploads and deletions. Without it the run is a dry run:
	// the archive is built and the prune plan is written, but the remote is
	// never modified.
	Live bool
	// DisablePruning skips the retention pass entirely.
	DisablePruning bool
	// IgnoreMissingDirs logs and skips configured directories that do not
	// exist instead of failing the run. Service mode always behaves this
	// way, since a daemon cannot stop to ask.
	IgnoreMissingDirs bool
	// PlanFile is where the prune plan is written. Defaults to to_prune.txt.
	PlanFile string
}

// Runner executes backup runs against a fixed config snapshot.
type Runner struct {
	cfg   config.BackupConfig
	opts  Options
	fsys  fs.FS
	store remote.Store
	dbs   []database.Database
	log   *log.Logger
}

func NewRunner(cfg config.BackupConfig, store remote.Store, logger *log.Logger, opts Options) *Runner {
	if opts.PlanFile == "" {
		opts.PlanFile = "to_prune.txt"
	}
	return &Runner{
		cfg:   cfg,
		opts:  opts,
		fsys:  fs.New(),
		store: store,
		dbs:   database.FromConfig(cfg.Databases),
		log:   logger,
	}
}

// Run performs one complete backup.
func (r *Runner) Run(ctx context.Context) error {
	r.log.Info("starting backup", "remote", r.cfg.Remote, "live", r.opts.Live)

	if err := r.checkTools(); err != nil {
		return err
	}
	for _, db := range r.dbs {
		if err := db.Test(ctx); err != nil {
			return fmt.Errorf("database check failed: %w", err)
		}
	}

	workspace := filepath.Join(os.TempDir(), uuid.NewString()+"_backstop_work")
	if err := r.fsys.MkdirAll(workspace); err != nil {
		return fmt.Errorf("creating workspace: %w", err)
	}
	defer func() {
		_ = r.fsys.RemoveAll(workspace)
	}()
	r.log.Debug("created workspace", "path", workspace)

	stamp := time.Now().UTC()
	stampStr := stamp.Format(r.cfg.Format.Datetime)

	for i, db := range r.dbs {
		r.log.Info("dumping database", "database", db.String())
		if _, err := db.Dump(ctx, workspace, stampStr, i); err != nil {
			return fmt.Errorf("dumping %s: %w", db, err)
		}
	}

	if err := r.stageDirs(ctx, workspace); err != nil {
		return err
	}

	archivePath := filepath.Join(os.TempDir(), r.cfg.ArchiveFormat().Render(stamp))
	r.log.Info("compressing workspace", "archive", archivePath)
	if err := writeArchive(archivePath, workspace); err != nil {
		return fmt.Errorf("compressing workspace: %w", err)
	}
	defer func() {
		_ = os.Remove(archivePath)
	}()

	if r.opts.Live {
		r.log.Info("uploading archive", "remote", r.cfg.Remote)
		if err := r.store.Upload(ctx, archivePath); err != nil {
			return fmt.Errorf("uploading archive: %w", err)
		}
	} else {
		r.log.Info("dry run, skipping upload")
	}

	if r.opts.DisablePruning {
		r.log.Info("pruning disabled, skipping retention pass")
	} else if err := r.prunePass(ctx); err != nil {
		return err
	}

	r.log.Info("backup complete")
	return nil
}

// checkTools verifies the external binaries this run will invoke.
func (r *Runner) checkTools() error {
	required := []string{"rclone"}
	if len(r.cfg.Databases.Postgres) > 0 {
		required = append(required, "psql", "pg_dump")
	}
	return tools.Check(required...)
}

// stageDirs copies every configured directory into the workspace. A missing
// directory either fails the run or is skipped, depending on options.
func (r *Runner) stageDirs(ctx context.Context, workspace string) error {
	for _, dir := range r.cfg.Dirs {
		if _, err := os.Stat(dir); err != nil {
			if r.opts.IgnoreMissingDirs {
				r.log.Warn("skipping missing directory", "dir", dir)
				continue
			}
			return fmt.Errorf("backup directory %q: %w", dir, err)
		}
		r.log.Info("staging directory", "dir", dir)
		target := filepath.Join(workspace, filepath.Base(filepath.Clean(dir)))
		if err := r.fsys.CopyDir(ctx, dir, target); err != nil {
			return fmt.Errorf("staging %q: %w", dir, err)
		}
	}
	return nil
}
