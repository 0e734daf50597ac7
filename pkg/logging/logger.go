// Package logging implements the ambient stack's structured logger
// (§4.13): a small leveled Logger interface with WithField/WithFields
// field chaining, adapted from the teacher's pkg/utils logger and
// extended with a log.format setting (text or JSON) so the CLI's
// `--log-format` flag has somewhere to land.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Level is the severity of a log line.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a config string into a Level, defaulting to Info for
// anything unrecognized.
func ParseLevel(level string) Level {
	switch level {
	case "debug", "DEBUG":
		return LevelDebug
	case "info", "INFO":
		return LevelInfo
	case "warn", "WARN", "warning", "WARNING":
		return LevelWarn
	case "error", "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format selects how log lines are encoded.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// ParseFormat parses a config string into a Format, defaulting to text.
func ParseFormat(format string) Format {
	if format == "json" || format == "JSON" {
		return FormatJSON
	}
	return FormatText
}

// Logger is the leveled logging interface, taken as an explicit dependency
// instead of reaching for a package-level global. The CLI commands build
// one from the loaded configuration and log through it; the packages
// under internal/ do not import this package.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	WithField(key string, value interface{}) Logger
	WithFields(fields map[string]interface{}) Logger
}

// DefaultLogger writes leveled, field-annotated lines to an io.Writer in
// either plain text or one-JSON-object-per-line form.
type DefaultLogger struct {
	mu     sync.Mutex
	level  Level
	format Format
	output io.Writer
	fields map[string]interface{}
}

// NewDefaultLogger builds a DefaultLogger writing to output at the given
// level and format.
func NewDefaultLogger(level Level, format Format, output io.Writer) *DefaultLogger {
	return &DefaultLogger{
		level:  level,
		format: format,
		output: output,
		fields: make(map[string]interface{}),
	}
}

// NewStdoutLogger is the documented default logger the CLI entrypoint
// falls back to before configuration has been loaded.
func NewStdoutLogger(level Level) *DefaultLogger {
	return NewDefaultLogger(level, FormatText, os.Stdout)
}

func (l *DefaultLogger) Debug(msg string, args ...interface{}) { l.log(LevelDebug, msg, args...) }
func (l *DefaultLogger) Info(msg string, args ...interface{})  { l.log(LevelInfo, msg, args...) }
func (l *DefaultLogger) Warn(msg string, args ...interface{})  { l.log(LevelWarn, msg, args...) }
func (l *DefaultLogger) Error(msg string, args ...interface{}) { l.log(LevelError, msg, args...) }

func (l *DefaultLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *DefaultLogger) WithFields(fields map[string]interface{}) Logger {
	child := &DefaultLogger{
		level:  l.level,
		format: l.format,
		output: l.output,
		fields: make(map[string]interface{}, len(l.fields)+len(fields)),
	}
	for k, v := range l.fields {
		child.fields[k] = v
	}
	for k, v := range fields {
		child.fields[k] = v
	}
	return child
}

func (l *DefaultLogger) log(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	formatted := fmt.Sprintf(msg, args...)
	var line string
	if l.format == FormatJSON {
		line = l.jsonLine(level, formatted)
	} else {
		line = l.textLine(level, formatted)
	}
	_, _ = l.output.Write([]byte(line))
}

func (l *DefaultLogger) textLine(level Level, msg string) string {
	fieldStr := ""
	for k, v := range l.fields {
		fieldStr += fmt.Sprintf(" %s=%v", k, v)
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	return fmt.Sprintf("[%s] [%s]%s %s\n", timestamp, level.String(), fieldStr, msg)
}

func (l *DefaultLogger) jsonLine(level Level, msg string) string {
	record := make(map[string]interface{}, len(l.fields)+3)
	for k, v := range l.fields {
		record[k] = v
	}
	record["level"] = level.String()
	record["time"] = time.Now().Format(time.RFC3339Nano)
	record["msg"] = msg

	encoded, err := json.Marshal(record)
	if err != nil {
		// Fields contained something unmarshalable; fall back to text
		// rather than dropping the line.
		return l.textLine(level, msg)
	}
	return string(encoded) + "\n"
}

// Default is the one package-level logger this repository permits: a
// stdout text logger at info level, used only until the CLI entrypoint
// loads configuration and constructs the real logger to pass down
// explicitly. Nothing in internal/ reads this directly.
var Default Logger = NewStdoutLogger(LevelInfo)

// NullLogger discards everything. Useful as a default in tests that
// don't care about log output.
type NullLogger struct{}

func (NullLogger) Debug(string, ...interface{})               {}
func (NullLogger) Info(string, ...interface{})                {}
func (NullLogger) Warn(string, ...interface{})                {}
func (NullLogger) Error(string, ...interface{})               {}
func (l NullLogger) WithField(string, interface{}) Logger     { return l }
func (l NullLogger) WithFields(map[string]interface{}) Logger { return l }

// StdLogger wraps the standard library's log.Logger, grounded on the
// teacher's StdLogger variant, for callers that want stdlib log's
// rotation/multi-writer ecosystem rather than DefaultLogger's direct
// io.Writer.
type StdLogger struct {
	logger *log.Logger
	level  Level
	fields map[string]interface{}
}

func NewStdLogger(level Level, output io.Writer) *StdLogger {
	return &StdLogger{
		logger: log.New(output, "", log.LstdFlags|log.Lmicroseconds),
		level:  level,
		fields: make(map[string]interface{}),
	}
}

func (l *StdLogger) Debug(msg string, args ...interface{}) { l.printf(LevelDebug, msg, args...) }
func (l *StdLogger) Info(msg string, args ...interface{})  { l.printf(LevelInfo, msg, args...) }
func (l *StdLogger) Warn(msg string, args ...interface{})  { l.printf(LevelWarn, msg, args...) }
func (l *StdLogger) Error(msg string, args ...interface{}) { l.printf(LevelError, msg, args...) }

func (l *StdLogger) printf(level Level, msg string, args ...interface{}) {
	if level < l.level {
		return
	}
	fieldStr := ""
	for k, v := range l.fields {
		fieldStr += fmt.Sprintf(" %s=%v", k, v)
	}
	l.logger.Printf("[%s]%s "+msg, append([]interface{}{level.String(), fieldStr}, args...)...)
}

func (l *StdLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *StdLogger) WithFields(fields map[string]interface{}) Logger {
	child := NewStdLogger(l.level, l.logger.Writer())
	for k, v := range l.fields {
		child.fields[k] = v
	}
	for k, v := range fields {
		child.fields[k] = v
	}
	return child
}
