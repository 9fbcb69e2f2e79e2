package bootstrap

import (
	"log/slog"

	"github.com/kovertlabs/deepcover/internal/config"
	"github.com/kovertlabs/deepcover/internal/handler"
	"github.com/kovertlabs/deepcover/internal/logger"
)

// SetupLogger initializes the structured application logger from config and
// logs the effective startup configuration.
func SetupLogger(cfg *config.Config) {
	// Source file/line info only in dev, it is noise in production
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		ServiceName,
		handler.Version,
		cfg.Environment,
		addSource,
	)
	logger.InitLogger(loggerConfig)

	slog.Info("Logging initialized", "level", cfg.LogLevel, "format", cfg.LogFormat)
	slog.Info("Starting deepcover",
		"environment", cfg.Environment,
		"version", handler.Version)

	slog.Debug("Configuration loaded",
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"config_dir", cfg.ConfigDir,
		"port", cfg.Port)
}
