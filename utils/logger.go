package utils

import (
	"log"

	"bookify/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the shared application logger.
var Logger *zap.Logger

// InitializeLogger builds the global logger from the configured environment:
// JSON output in production, colored console output elsewhere, with the
// level taken from LOG_LEVEL.
func InitializeLogger() {
	var cfg zap.Config
	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(logLevel())

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}

// logLevel parses LOG_LEVEL, defaulting to info in production and debug
// everywhere else when the value is empty or unparseable.
func logLevel() zapcore.Level {
	var level zapcore.Level
	if raw := config.AppConfig.LogLevel; raw != "" {
		if err := level.Set(raw); err == nil {
			return level
		}
	}
	if config.IsProduction() {
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// GetLogger retrieves the global logger, initializing it on first use.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
