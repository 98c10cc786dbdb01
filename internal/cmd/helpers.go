package cmd

import (
	"github.com/charmbracelet/log"

	"github.com/rauves/backstop/internal/config"
	"github.com/rauves/backstop/internal/logging"
)

// loadConfig loads and validates the config file and builds the logger,
// honoring the --log-level override.
func loadConfig() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logsCfg := cfg.Backup.Logs
	if logLevel != "" {
		logsCfg.Level = logLevel
	}
	logger, err := logging.Setup(logsCfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
