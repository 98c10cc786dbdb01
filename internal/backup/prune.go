package backup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rauves/backstop/internal/prune"
)

// prunePass lists the remote, computes the retention plan, writes it to the
// plan file, and (live only) deletes the planned archives. Planning and
// deletion stay separate steps so a dry run can inspect the plan before
// anything is destroyed.
func (r *Runner) prunePass(ctx context.Context) error {
	names, err := r.store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing remote archives: %w", err)
	}

	plan, err := prune.Compute(names, r.cfg.ArchiveFormat(), r.cfg.Policy())
	if err != nil {
		return fmt.Errorf("computing prune plan: %w", err)
	}

	if n := len(plan.Skipped); n > 0 {
		r.log.Warn("ignoring remote files that do not match the archive format",
			"count", n, "first", plan.Skipped[0])
	}
	r.log.Info("prune plan computed",
		"remote_archives", len(plan.Retained)+len(plan.Prune),
		"retained", len(plan.Retained),
		"to_prune", len(plan.Prune))

	if err := writePlanFile(r.opts.PlanFile, plan.PruneNames()); err != nil {
		return err
	}

	if !r.opts.Live {
		r.log.Info("dry run, leaving prune plan unexecuted", "plan", r.opts.PlanFile)
		return nil
	}

	var errs []error
	for _, name := range plan.PruneNames() {
		r.log.Info("pruning remote archive", "name", name)
		if err := r.store.Delete(ctx, name); err != nil {
			// Keep going: deleting fewer archives than planned is safe,
			// aborting mid-plan for one flaky delete is not better.
			r.log.Error("prune delete failed", "name", name, "error", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("pruning: %w", errors.Join(errs...))
	}

	_ = os.Remove(r.opts.PlanFile)
	return nil
}

// writePlanFile stores the newline-delimited prune list. An empty plan still
// writes an (empty) file, so the artifact always reflects the latest run.
func writePlanFile(path string, names []string) error {
	var b strings.Builder
	for _, name := range names {
		b.WriteString(name)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing prune plan: %w", err)
	}
	return nil
}
