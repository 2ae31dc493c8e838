//go:build unit
// +build unit

package logger

import (
	"bytes"
	"testing"

	"github.com/hubverse/hub-services/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLogger_LogsToOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(config.LogLevelInfo, &buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.Contains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestConsoleLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(config.LogLevelDebug, &buf).With("request_id", "abc-123", "status", 201)

	logger.Debug("handled")

	output := buf.String()
	assert.Contains(t, output, "handled")
	assert.Contains(t, output, "request_id=abc-123")
	assert.Contains(t, output, "status=201")
}

func TestConsoleLogger_Panic(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(config.LogLevelInfo, &buf)

	assert.PanicsWithValue(t, "boom", func() {
		logger.Panic("boom")
	})
	assert.Contains(t, buf.String(), "boom")
}

func TestNewConsoleLogger(t *testing.T) {
	logger := NewConsoleLogger(config.LogLevelInfo)
	require.NotNil(t, logger)

	require.NotPanics(t, func() {
		logger.Info("test")
		logger.Warn("test")
		logger.Error("test")
	})
}
