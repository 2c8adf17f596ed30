package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewHonorsConfiguredLevel(t *testing.T) {
	logger, err := New(Config{Level: "warn"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("Info enabled despite warn level")
	}
	if !logger.Core().Enabled(zapcore.WarnLevel) {
		t.Error("Warn disabled at warn level")
	}
}

func TestNewDevelopmentEnablesDebug(t *testing.T) {
	logger, err := New(Config{Level: "debug", Development: true})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Error("Debug disabled in development config")
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(Config{Level: "chatty"}); err == nil {
		t.Error("Expected unknown level to be rejected")
	}
}
