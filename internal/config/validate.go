package config

import (
	"fmt"
	"strings"
)

var weekdays = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
}

// Validate rejects configs the engine must never run with. It is called by
// Load, so an invalid file can never reach the runner or the prune engine.
func (c *Config) Validate() error {
	b := &c.Backup

	if strings.TrimSpace(b.Remote) == "" {
		return fmt.Errorf("config: backup.remote is required")
	}
	if err := b.ArchiveFormat().Validate(); err != nil {
		return fmt.Errorf("config: backup.format: %w", err)
	}
	if err := b.Policy().Validate(); err != nil {
		return fmt.Errorf("config: backup.pruning: %w", err)
	}

	for i, pg := range b.Databases.Postgres {
		if pg.Name == "" {
			return fmt.Errorf("config: backup.databases.postgres[%d]: name is required", i)
		}
		if pg.Host == "" {
			return fmt.Errorf("config: backup.databases.postgres[%d]: host is required", i)
		}
	}
	for i, sq := range b.Databases.SQLite {
		if sq.Path == "" {
			return fmt.Errorf("config: backup.databases.sqlite[%d]: path is required", i)
		}
	}

	if b.Service.Enabled && b.Service.Schedule == "" {
		switch strings.ToLower(b.Service.Frequency) {
		case "hourly":
			if b.Service.NumHours <= 0 {
				return fmt.Errorf("config: backup.service.numHours must be positive for hourly frequency")
			}
		case "daily":
		case "weekly":
			if !weekdays[strings.ToLower(b.Service.DayOfWeek)] {
				return fmt.Errorf("config: backup.service.dayOfWeek: unknown day %q", b.Service.DayOfWeek)
			}
		default:
			return fmt.Errorf("config: backup.service.frequency: unsupported value %q", b.Service.Frequency)
		}
	}
	return nil
}
