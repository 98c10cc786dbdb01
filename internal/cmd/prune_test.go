package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runPruneCmd(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newPruneCmd()
	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.Execute()
}

func TestPruneCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "current_backups.txt")
	output := filepath.Join(dir, "to_prune.txt")

	lines := []string{
		"backup_2024-01-01.zip",
		"backup_2024-01-02.zip",
		"backup_2024-01-03.zip",
		"notes.txt",
		"",
	}
	if err := os.WriteFile(input, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	err := runPruneCmd(t,
		"--input-file", input,
		"--output-file", output,
		"--file-format", "backup_2006-01-02.zip",
		"--keep-daily", "1",
	)
	if err != nil {
		t.Fatalf("prune command failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	want := "backup_2024-01-01.zip\nbackup_2024-01-02.zip\n"
	if string(data) != want {
		t.Errorf("output = %q, want %q", data, want)
	}
}

func TestPruneCommandEmptyPlanStillSucceeds(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(input, []byte("backup_2024-01-01.zip\n"), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	err := runPruneCmd(t,
		"--input-file", input,
		"--output-file", output,
		"--file-format", "backup_2006-01-02.zip",
		"--keep-daily", "5",
	)
	if err != nil {
		t.Fatalf("prune command failed on an empty plan: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("output = %q, want an empty file", data)
	}
}

func TestPruneCommandConfigurationErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	if err := os.WriteFile(input, []byte("backup_2024-01-01.zip\n"), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	tests := []struct {
		name string
		args []string
	}{
		{
			name: "negative keep count",
			args: []string{
				"--input-file", input, "--output-file", output,
				"--file-format", "backup_2006-01-02.zip", "--keep-daily", "-1",
			},
		},
		{
			name: "blank template",
			args: []string{
				"--input-file", input, "--output-file", output,
				"--file-format", "  ",
			},
		},
		{
			name: "unreadable input file",
			args: []string{
				"--input-file", filepath.Join(dir, "missing.txt"), "--output-file", output,
				"--file-format", "backup_2006-01-02.zip",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := runPruneCmd(t, tt.args...); err == nil {
				t.Error("prune command accepted an invalid configuration")
			}
			if _, err := os.Stat(output); err == nil {
				t.Error("output file written despite a configuration error")
			}
		})
	}
}
