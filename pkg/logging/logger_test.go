package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatText, ParseFormat("anything-else"))
}

func TestDefaultLoggerFiltersByLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewDefaultLogger(LevelWarn, FormatText, buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestDefaultLoggerTextFormatting(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewDefaultLogger(LevelInfo, FormatText, buf)
	logger.Info("count: %d, name: %s", 42, "test")

	output := buf.String()
	assert.Contains(t, output, "[INFO]")
	assert.Contains(t, output, "count: 42, name: test")
}

func TestDefaultLoggerWithFieldAndWithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewDefaultLogger(LevelInfo, FormatText, buf)

	logger.WithField("task_id", "123").Info("processing task")
	assert.Contains(t, buf.String(), "task_id=123")

	buf.Reset()
	logger.WithFields(map[string]interface{}{"task_id": "123", "user": "admin"}).Info("processing")
	output := buf.String()
	assert.Contains(t, output, "task_id=123")
	assert.Contains(t, output, "user=admin")
}

func TestDefaultLoggerWithFieldDoesNotMutateParent(t *testing.T) {
	buf := &bytes.Buffer{}
	parent := NewDefaultLogger(LevelInfo, FormatText, buf)
	_ = parent.WithField("task_id", "123")

	parent.Info("plain message")
	assert.NotContains(t, buf.String(), "task_id")
}

func TestDefaultLoggerJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewDefaultLogger(LevelInfo, FormatJSON, buf)
	logger.WithField("job_id", "import-1").Info("started")

	output := strings.TrimSpace(buf.String())
	assert.True(t, strings.HasPrefix(output, "{"))
	assert.Contains(t, output, `"job_id":"import-1"`)
	assert.Contains(t, output, `"msg":"started"`)
	assert.Contains(t, output, `"level":"INFO"`)
}

func TestNullLoggerDiscardsAndReturnsItself(t *testing.T) {
	var logger Logger = NullLogger{}
	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	assert.Equal(t, logger, logger.WithField("key", "value"))
	assert.Equal(t, logger, logger.WithFields(map[string]interface{}{"key": "value"}))
}

func TestStdLoggerWritesLeveledLines(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewStdLogger(LevelInfo, buf)
	logger.Info("info message")

	output := buf.String()
	assert.Contains(t, output, "[INFO]")
	assert.Contains(t, output, "info message")
}

func TestStdLoggerFiltersByLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewStdLogger(LevelError, buf)
	logger.Info("should be filtered")
	logger.Error("should appear")

	output := buf.String()
	assert.NotContains(t, output, "should be filtered")
	assert.Contains(t, output, "should appear")
}

func TestLoggerInterfaceSatisfiedByEveryImplementation(t *testing.T) {
	var _ Logger = &DefaultLogger{}
	var _ Logger = NullLogger{}
	var _ Logger = &StdLogger{}
}
