package scheduler

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rauves/backstop/internal/config"
)

var cronDays = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// CronSpec compiles the service section into a standard cron expression. A
// raw schedule value passes through untouched; otherwise the
// frequency/timeOfDay/dayOfWeek fields are translated. The result is always
// validated, so an invalid schedule fails at startup instead of silently
// never firing.
func CronSpec(cfg config.ServiceConfig) (string, error) {
	spec, err := buildSpec(cfg)
	if err != nil {
		return "", err
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return "", fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return spec, nil
}

func buildSpec(cfg config.ServiceConfig) (string, error) {
	if cfg.Schedule != "" {
		return cfg.Schedule, nil
	}

	switch strings.ToLower(cfg.Frequency) {
	case "hourly":
		if cfg.NumHours <= 0 {
			return "", fmt.Errorf("hourly schedule needs a positive numHours, got %d", cfg.NumHours)
		}
		return fmt.Sprintf("0 */%d * * *", cfg.NumHours), nil

	case "daily":
		hour, minute, err := timeOfDay(cfg.TimeOfDay)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d %d * * *", minute, hour), nil

	case "weekly":
		hour, minute, err := timeOfDay(cfg.TimeOfDay)
		if err != nil {
			return "", err
		}
		day, ok := cronDays[strings.ToLower(cfg.DayOfWeek)]
		if !ok {
			return "", fmt.Errorf("unknown day of week %q", cfg.DayOfWeek)
		}
		return fmt.Sprintf("%d %d * * %d", minute, hour, day), nil
	}
	return "", fmt.Errorf("unsupported frequency %q", cfg.Frequency)
}

// timeOfDay parses "HH:MM"; empty means midnight.
func timeOfDay(s string) (hour, minute int, err error) {
	if s == "" {
		return 0, 0, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid timeOfDay %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
