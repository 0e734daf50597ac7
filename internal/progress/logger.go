package progress

import (
	"fmt"
	"sync/atomic"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// LogFunc receives a fully formatted progress/log line; implementations
// typically bind this to pkg/logging at whatever level LogLevel maps to.
type LogFunc func(level LogLevel, line string)

// ProgressLogger is the §4.10 logging interface: delta-based progress,
// free-form messages, and a hierarchy-aware path used as a subtask
// navigation prefix (joined with " :: ").
type ProgressLogger interface {
	LogProgress(delta int64)
	LogMessage(level LogLevel, msg string)
	Reset(volume int64)
	Path() string
}

// NoopProgressLogger discards everything; used when log_progress is
// configured false.
type NoopProgressLogger struct{ path string }

func NewNoopProgressLogger(path string) *NoopProgressLogger {
	return &NoopProgressLogger{path: path}
}

func (l *NoopProgressLogger) LogProgress(int64)           {}
func (l *NoopProgressLogger) LogMessage(LogLevel, string) {}
func (l *NoopProgressLogger) Reset(int64)                 {}
func (l *NoopProgressLogger) Path() string                { return l.path }

// sharedBatch is the aggregate state every worker-scoped
// BatchingProgressLogger derived from the same root flushes into.
type sharedBatch struct {
	volume      int64
	current     atomic.Int64
	lastPercent atomic.Int64
	logFn       LogFunc
}

// BatchingProgressLogger batches log_progress(1) calls in a counter owned
// by a single goroutine and flushes to a shared atomic counter only every
// batch_size calls, per §4.10. One instance is created per worker via
// NewWorkerLogger so the per-call increment needs no synchronization.
type BatchingProgressLogger struct {
	shared    *sharedBatch
	path      string
	batchSize int64
	local     int64
}

// NewBatchingProgressLogger creates the root logger for volume items
// distributed across concurrency workers. batch_size is
// next_power_of_two(volume / (100 * concurrency)), clamped to [1, 8192].
func NewBatchingProgressLogger(path string, volume int64, concurrency int, logFn LogFunc) *BatchingProgressLogger {
	if concurrency < 1 {
		concurrency = 1
	}
	batchSize := nextPowerOfTwo(volume / (100 * int64(concurrency)))
	if batchSize < 1 {
		batchSize = 1
	}
	if batchSize > 8192 {
		batchSize = 8192
	}
	shared := &sharedBatch{volume: volume, logFn: logFn}
	shared.lastPercent.Store(-1)
	return &BatchingProgressLogger{shared: shared, path: path, batchSize: batchSize}
}

// NewWorkerLogger derives a sibling logger that shares this logger's
// aggregate counter and percentage tracking but buffers its own calls
// independently, the per-goroutine handle each worker logs through.
func (l *BatchingProgressLogger) NewWorkerLogger() *BatchingProgressLogger {
	return &BatchingProgressLogger{shared: l.shared, path: l.path, batchSize: l.batchSize}
}

func (l *BatchingProgressLogger) LogProgress(delta int64) {
	l.local += delta
	if l.local >= l.batchSize {
		l.Flush()
	}
}

// Flush forces any buffered local progress into the shared counter. A
// worker must call this when it finishes, since a partial batch would
// otherwise never be reported.
func (l *BatchingProgressLogger) Flush() {
	if l.local == 0 {
		return
	}
	total := l.shared.current.Add(l.local)
	l.local = 0
	if l.shared.volume <= 0 || l.shared.logFn == nil {
		return
	}
	percent := total * 100 / l.shared.volume
	// Log only when the percentage rises above the highest value already
	// logged, so each 1% band yields at most one line even when workers
	// flush out of order; 0% is the starting state and is not logged.
	for {
		last := l.shared.lastPercent.Load()
		if percent <= last || percent == 0 {
			return
		}
		if l.shared.lastPercent.CompareAndSwap(last, percent) {
			break
		}
	}
	l.shared.logFn(LevelInfo, fmt.Sprintf("%s :: %d%%", l.path, percent))
}

func (l *BatchingProgressLogger) LogMessage(level LogLevel, msg string) {
	if l.shared.logFn == nil {
		return
	}
	l.shared.logFn(level, fmt.Sprintf("%s :: %s", l.path, msg))
}

func (l *BatchingProgressLogger) Reset(volume int64) {
	l.shared.volume = volume
	l.shared.current.Store(0)
	l.shared.lastPercent.Store(-1)
	l.local = 0
}

func (l *BatchingProgressLogger) Path() string { return l.path }

// Current returns the shared aggregate counter's value.
func (l *BatchingProgressLogger) Current() int64 { return l.shared.current.Load() }

func nextPowerOfTwo(n int64) int64 {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
