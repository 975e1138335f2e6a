package utils

import (
	"testing"

	"bookify/config"

	"go.uber.org/zap/zapcore"
)

func TestInitializeLoggerHonorsLogLevel(t *testing.T) {
	prev := config.AppConfig.LogLevel
	config.AppConfig.LogLevel = "warn"
	t.Cleanup(func() {
		config.AppConfig.LogLevel = prev
		Logger = nil
	})

	InitializeLogger()

	core := Logger.Core()
	if !core.Enabled(zapcore.WarnLevel) {
		t.Fatalf("expected warn level to be enabled")
	}
	if core.Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info level to be suppressed at warn")
	}
}

func TestLogLevelFallsBackOnBadValue(t *testing.T) {
	prev := config.AppConfig.LogLevel
	config.AppConfig.LogLevel = "loud"
	t.Cleanup(func() { config.AppConfig.LogLevel = prev })

	if got := logLevel(); got != zapcore.DebugLevel {
		t.Fatalf("expected debug fallback outside production, got %v", got)
	}
}
