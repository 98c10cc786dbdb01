package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
backup:
  remote: "b2:bucket/backups"
  format:
    prefix: backup
    datetime: "2006-01-02"
  dirs: ["data", "/etc/app"]
  pruning:
    keepDaily: 7
    keepWeekly: 4
    keepMonthly: 12
    keepYearly: 2
  databases:
    postgres:
      - name: app
        host: localhost
        port: "5432"
        username: app
        password: "$(BACKSTOP_TEST_PG_PASS)"
    sqlite:
      - path: app.db
  logs:
    dir: logs
    level: debug
    format: text
  service:
    enabled: true
    frequency: daily
    timeOfDay: "03:30"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backstop.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("BACKSTOP_TEST_PG_PASS", "hunter2")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	b := cfg.Backup
	if b.Remote != "b2:bucket/backups" {
		t.Errorf("Remote = %q", b.Remote)
	}
	if len(b.Dirs) != 2 || b.Dirs[0] != "data" {
		t.Errorf("Dirs = %v", b.Dirs)
	}
	if b.Pruning.KeepWeekly != 4 || b.Pruning.KeepYearly != 2 {
		t.Errorf("Pruning = %+v", b.Pruning)
	}
	if got := b.Databases.Postgres[0].Password; got != "hunter2" {
		t.Errorf("password = %q, want env expansion to hunter2", got)
	}
	if !b.Service.Enabled || b.Service.Frequency != "daily" {
		t.Errorf("Service = %+v", b.Service)
	}

	format := b.ArchiveFormat()
	if format.Prefix != "backup_" || format.Ext != ".zip" {
		t.Errorf("ArchiveFormat = %+v", format)
	}
	if got := b.Policy(); got.Daily != 7 || got.Monthly != 12 {
		t.Errorf("Policy = %+v", got)
	}
}

func TestLoadUnsetEnvVarFails(t *testing.T) {
	path := writeConfig(t, strings.ReplaceAll(sampleYAML, "BACKSTOP_TEST_PG_PASS", "BACKSTOP_TEST_NO_SUCH_VAR"))

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted a config referencing an unset environment variable")
	}
	if !strings.Contains(err.Error(), "BACKSTOP_TEST_NO_SUCH_VAR") {
		t.Errorf("error %q does not name the missing variable", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load accepted a missing file")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{Backup: BackupConfig{
			Remote: "remote:backups",
			Format: FormatConfig{Prefix: "backup", Datetime: "2006-01-02"},
		}}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid minimal", func(c *Config) {}, false},
		{"empty remote", func(c *Config) { c.Backup.Remote = " " }, true},
		{"empty datetime layout", func(c *Config) { c.Backup.Format.Datetime = "" }, true},
		{"negative keep count", func(c *Config) { c.Backup.Pruning.KeepMonthly = -1 }, true},
		{"postgres without name", func(c *Config) {
			c.Backup.Databases.Postgres = []PostgresConfig{{Host: "localhost"}}
		}, true},
		{"sqlite without path", func(c *Config) {
			c.Backup.Databases.SQLite = []SQLiteConfig{{}}
		}, true},
		{"service with bad frequency", func(c *Config) {
			c.Backup.Service = ServiceConfig{Enabled: true, Frequency: "fortnightly"}
		}, true},
		{"service hourly without numHours", func(c *Config) {
			c.Backup.Service = ServiceConfig{Enabled: true, Frequency: "hourly"}
		}, true},
		{"service weekly with bad day", func(c *Config) {
			c.Backup.Service = ServiceConfig{Enabled: true, Frequency: "weekly", DayOfWeek: "someday"}
		}, true},
		{"service with raw schedule skips frequency checks", func(c *Config) {
			c.Backup.Service = ServiceConfig{Enabled: true, Schedule: "0 3 * * *"}
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate accepted an invalid config")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate rejected a valid config: %v", err)
			}
		})
	}
}
