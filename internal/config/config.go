package config

import (
	"strings"

	"github.com/rauves/backstop/internal/prune"
)

type Config struct {
	Backup BackupConfig `yaml:"backup"`
}

type BackupConfig struct {
	Remote    string          `yaml:"remote"`
	Format    FormatConfig    `yaml:"format"`
	Dirs      []string        `yaml:"dirs"`
	Pruning   PruningConfig   `yaml:"pruning"`
	Databases DatabasesConfig `yaml:"databases"`
	Logs      LogsConfig      `yaml:"logs"`
	Service   ServiceConfig   `yaml:"service"`
}

type FormatConfig struct {
	Prefix   string `yaml:"prefix"`
	Datetime string `yaml:"datetime"` // Go time layout, e.g. 2006-01-02
}

type PruningConfig struct {
	KeepDaily   int `yaml:"keepDaily"`
	KeepWeekly  int `yaml:"keepWeekly"`
	KeepMonthly int `yaml:"keepMonthly"`
	KeepYearly  int `yaml:"keepYearly"`
}

type DatabasesConfig struct {
	Postgres []PostgresConfig `yaml:"postgres"`
	SQLite   []SQLiteConfig   `yaml:"sqlite"`
}

type PostgresConfig struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type LogsConfig struct {
	Dir    string `yaml:"dir"`
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "text", "json"
}

type ServiceConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Frequency string `yaml:"frequency"` // "hourly", "daily", "weekly"
	NumHours  int    `yaml:"numHours"`
	TimeOfDay string `yaml:"timeOfDay"` // "15:04"
	DayOfWeek string `yaml:"dayOfWeek"` // "monday" .. "sunday"
	Schedule  string `yaml:"schedule"`  // raw cron expression, overrides the fields above
}

// ArchiveFormat builds the naming template archives are written and matched
// with. A non-empty prefix is joined with an underscore; the extension is
// always .zip.
func (b *BackupConfig) ArchiveFormat() prune.Format {
	prefix := strings.TrimSpace(b.Format.Prefix)
	if prefix != "" {
		prefix += "_"
	}
	return prune.Format{
		Prefix:     prefix,
		TimeLayout: b.Format.Datetime,
		Ext:        ".zip",
	}
}

// Policy converts the pruning section into the retention core's policy.
func (b *BackupConfig) Policy() prune.Policy {
	return prune.Policy{
		Daily:   b.Pruning.KeepDaily,
		Weekly:  b.Pruning.KeepWeekly,
		Monthly: b.Pruning.KeepMonthly,
		Yearly:  b.Pruning.KeepYearly,
	}
}
