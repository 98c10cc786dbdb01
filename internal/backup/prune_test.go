package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/rauves/backstop/internal/config"
)

// memStore is an in-memory Store for exercising the prune pass.
type memStore struct {
	names   []string
	deleted []string
	failOn  string
}

func (m *memStore) List(ctx context.Context) ([]string, error) {
	return slices.Clone(m.names), nil
}

func (m *memStore) Upload(ctx context.Context, localPath string) error {
	m.names = append(m.names, filepath.Base(localPath))
	return nil
}

func (m *memStore) Delete(ctx context.Context, name string) error {
	if name == m.failOn {
		return fmt.Errorf("simulated delete failure for %s", name)
	}
	m.deleted = append(m.deleted, name)
	m.names = slices.DeleteFunc(m.names, func(n string) bool { return n == name })
	return nil
}

func testRunner(t *testing.T, store *memStore, opts Options) *Runner {
	t.Helper()
	opts.PlanFile = filepath.Join(t.TempDir(), "to_prune.txt")
	cfg := config.BackupConfig{
		Remote:  "mem:backups",
		Format:  config.FormatConfig{Prefix: "backup", Datetime: "2006-01-02"},
		Pruning: config.PruningConfig{KeepDaily: 2},
	}
	return NewRunner(cfg, store, log.New(io.Discard), opts)
}

func fiveDailies() []string {
	return []string{
		"backup_2024-01-01.zip",
		"backup_2024-01-02.zip",
		"backup_2024-01-03.zip",
		"backup_2024-01-04.zip",
		"backup_2024-01-05.zip",
	}
}

func TestPrunePassDryRunWritesPlanOnly(t *testing.T) {
	store := &memStore{names: append(fiveDailies(), "notes.txt")}
	r := testRunner(t, store, Options{Live: false})

	if err := r.prunePass(context.Background()); err != nil {
		t.Fatalf("prunePass failed: %v", err)
	}

	if len(store.deleted) != 0 {
		t.Errorf("dry run deleted %v", store.deleted)
	}
	data, err := os.ReadFile(r.opts.PlanFile)
	if err != nil {
		t.Fatalf("reading plan file: %v", err)
	}
	want := "backup_2024-01-01.zip\nbackup_2024-01-02.zip\nbackup_2024-01-03.zip\n"
	if string(data) != want {
		t.Errorf("plan file = %q, want %q", data, want)
	}
}

func TestPrunePassLiveDeletesPlannedArchives(t *testing.T) {
	store := &memStore{names: append(fiveDailies(), "notes.txt")}
	r := testRunner(t, store, Options{Live: true})

	if err := r.prunePass(context.Background()); err != nil {
		t.Fatalf("prunePass failed: %v", err)
	}

	wantDeleted := []string{"backup_2024-01-01.zip", "backup_2024-01-02.zip", "backup_2024-01-03.zip"}
	if !slices.Equal(store.deleted, wantDeleted) {
		t.Errorf("deleted %v, want %v", store.deleted, wantDeleted)
	}
	// The unparseable file and the two newest dailies survive.
	wantLeft := []string{"backup_2024-01-04.zip", "backup_2024-01-05.zip", "notes.txt"}
	left := slices.Clone(store.names)
	slices.Sort(left)
	if !slices.Equal(left, wantLeft) {
		t.Errorf("remaining = %v, want %v", left, wantLeft)
	}
	if _, err := os.Stat(r.opts.PlanFile); err == nil {
		t.Error("plan file not removed after successful execution")
	}
}

func TestPrunePassKeepsGoingPastDeleteFailures(t *testing.T) {
	store := &memStore{names: fiveDailies(), failOn: "backup_2024-01-02.zip"}
	r := testRunner(t, store, Options{Live: true})

	err := r.prunePass(context.Background())
	if err == nil {
		t.Fatal("prunePass swallowed a delete failure")
	}
	if !strings.Contains(err.Error(), "backup_2024-01-02.zip") {
		t.Errorf("error %q does not mention the failed archive", err)
	}
	// The remaining planned archives were still deleted.
	wantDeleted := []string{"backup_2024-01-01.zip", "backup_2024-01-03.zip"}
	if !slices.Equal(store.deleted, wantDeleted) {
		t.Errorf("deleted %v, want %v", store.deleted, wantDeleted)
	}
}

func TestStageDirsMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone")

	strict := testRunner(t, &memStore{}, Options{})
	strict.cfg.Dirs = []string{missing}
	if err := strict.stageDirs(context.Background(), t.TempDir()); err == nil {
		t.Error("stageDirs ignored a missing directory without the skip option")
	}

	lenient := testRunner(t, &memStore{}, Options{IgnoreMissingDirs: true})
	lenient.cfg.Dirs = []string{missing}
	if err := lenient.stageDirs(context.Background(), t.TempDir()); err != nil {
		t.Errorf("stageDirs failed despite IgnoreMissingDirs: %v", err)
	}
}
