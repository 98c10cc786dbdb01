// Package logging builds the application logger from config.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rauves/backstop/internal/config"
)

// Setup returns a logger writing to stderr and, when a log directory is
// configured, also to a size-rotated file in it. An unknown level falls back
// to info rather than failing the run.
func Setup(cfg config.LogsConfig) (*log.Logger, error) {
	var w io.Writer = os.Stderr
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "backstop.log"),
			MaxSize:    10, // MB
			MaxBackups: 12,
			Compress:   true,
		})
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			logger.Warn("unknown log level, using info", "level", cfg.Level)
			level = log.InfoLevel
		}
		logger.SetLevel(level)
	}

	if cfg.Format == "json" {
		logger.SetFormatter(log.JSONFormatter)
	}

	return logger, nil
}
