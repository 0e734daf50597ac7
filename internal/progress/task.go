// Package progress implements §4.10's task tree: a thread-safe hierarchy
// of tasks with linear, sticky-terminal status transitions, lock-free
// leaf progress counters, iterative subtask bookkeeping, pluggable task
// stores, and a batching progress logger — grounded on the teacher's
// model.Task status lifecycle and pkg/parallel's atomic-counter idiom.
package progress

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	apperrors "github.com/graphscale/graphscale/pkg/errors"
	"github.com/graphscale/graphscale/pkg/utils"
)

// clock is the time source Start/Finish/Cancel/Fail stamp against. Tests
// substitute a utils.MockClock to assert on timestamps deterministically.
var clock utils.Clock = utils.NewRealClock()

// Status is a task's lifecycle state. Transitions are linear
// (Pending -> Running -> one of Finished/Canceled/Failed); once terminal,
// a status is sticky and further transition calls are no-ops.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusFinished
	StatusCanceled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	case StatusCanceled:
		return "canceled"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status is one further transitions cannot
// leave.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusCanceled || s == StatusFailed
}

// IterativeMode bounds how many subtasks an iterative task may accept via
// NextIteration.
type IterativeMode int

const (
	// ModeNone marks a task as non-iterative: NextIteration is unused.
	ModeNone IterativeMode = iota
	// ModeFixed requires exactly maxIterations subtasks; Finish before
	// that count is reached panics.
	ModeFixed
	// ModeDynamic allows up to maxIterations subtasks, early Finish is fine.
	ModeDynamic
	// ModeOpen allows an unbounded number of subtasks.
	ModeOpen
)

// Task is a node in the progress tree. A plain Task aggregates progress
// from its subtasks; a leaf task (volume > 0, created via NewLeafTask)
// tracks its own atomic counter instead.
type Task struct {
	mu sync.RWMutex

	description string
	status      Status
	err         error
	parent      *Task
	subTasks    []*Task

	startedAt  *time.Time
	finishedAt *time.Time

	concurrency          int
	estimatedMemoryBytes int64

	volume  int64
	current atomic.Int64

	mode          IterativeMode
	maxIterations int
	iterations    int
}

func NewTask(description string) *Task {
	return &Task{description: description, status: StatusPending}
}

// NewLeafTask creates a task whose progress is tracked via an atomic
// counter against volume rather than aggregated from subtasks.
func NewLeafTask(description string, volume int64) *Task {
	t := NewTask(description)
	t.volume = volume
	return t
}

// NewIterativeTask creates a task whose subtasks are appended one at a
// time via NextIteration, bounded by mode and maxIterations (ignored for
// ModeNone and ModeOpen).
func NewIterativeTask(description string, mode IterativeMode, maxIterations int) *Task {
	t := NewTask(description)
	t.mode = mode
	t.maxIterations = maxIterations
	return t
}

func (t *Task) Description() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.description
}

func (t *Task) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.status
}

func (t *Task) Err() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *Task) StartedAt() *time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.startedAt
}

func (t *Task) FinishedAt() *time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.finishedAt
}

func (t *Task) SetConcurrency(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.concurrency = n
}

func (t *Task) Concurrency() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.concurrency
}

func (t *Task) SetEstimatedMemoryBytes(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.estimatedMemoryBytes = n
}

func (t *Task) EstimatedMemoryBytes() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.estimatedMemoryBytes
}

// Start transitions Pending -> Running. Sticky-terminal: a no-op once
// the task has reached a terminal status.
func (t *Task) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.Terminal() || t.status == StatusRunning {
		return
	}
	now := clock.Now()
	t.status = StatusRunning
	t.startedAt = &now
}

// Finish transitions to Finished. Panics if this is a Fixed-mode
// iterative task that has not yet received maxIterations subtasks.
func (t *Task) Finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.Terminal() {
		return
	}
	if t.mode == ModeFixed && t.iterations < t.maxIterations {
		panic(fmt.Sprintf("progress: task %q finished after %d/%d required iterations", t.description, t.iterations, t.maxIterations))
	}
	now := clock.Now()
	t.status = StatusFinished
	t.finishedAt = &now
}

func (t *Task) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.Terminal() {
		return
	}
	now := clock.Now()
	t.status = StatusCanceled
	t.finishedAt = &now
}

func (t *Task) Fail(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.status.Terminal() {
		return
	}
	now := clock.Now()
	t.status = StatusFailed
	t.finishedAt = &now
	t.err = err
}

// AddSubTask appends sub as a child of t.
func (t *Task) AddSubTask(sub *Task) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sub.mu.Lock()
	sub.parent = t
	sub.mu.Unlock()
	t.subTasks = append(t.subTasks, sub)
}

// NextIteration creates and appends a new subtask, enforcing t's
// iterative mode bound.
func (t *Task) NextIteration(description string) (*Task, error) {
	t.mu.Lock()
	if t.mode == ModeFixed || t.mode == ModeDynamic {
		if t.iterations >= t.maxIterations {
			t.mu.Unlock()
			return nil, apperrors.Newf(apperrors.CodeInvariantViolation, "task %q exceeded max iterations %d", t.description, t.maxIterations)
		}
	}
	t.iterations++
	t.mu.Unlock()

	sub := NewTask(description)
	t.AddSubTask(sub)
	return sub, nil
}

// SubTasks returns a snapshot of t's child tasks.
func (t *Task) SubTasks() []*Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Task, len(t.subTasks))
	copy(out, t.subTasks)
	return out
}

// Progress returns a value in [0, 1]: for a leaf task, current/volume;
// otherwise the average of subtask progress (1 for a finished childless
// task, 0 for a pending one).
func (t *Task) Progress() float64 {
	t.mu.RLock()
	volume := t.volume
	status := t.status
	subTasks := t.subTasks
	t.mu.RUnlock()

	if volume > 0 {
		cur := float64(t.current.Load())
		if cur > float64(volume) {
			cur = float64(volume)
		}
		return cur / float64(volume)
	}
	if len(subTasks) == 0 {
		if status == StatusFinished {
			return 1
		}
		return 0
	}
	sum := 0.0
	for _, sub := range subTasks {
		sum += sub.Progress()
	}
	return sum / float64(len(subTasks))
}

// LogProgress increments a leaf task's counter by 1.
func (t *Task) LogProgress() { t.LogProgressAmount(1) }

// LogProgressAmount increments a leaf task's counter by n, lock-free.
func (t *Task) LogProgressAmount(n int64) { t.current.Add(n) }

// Visitor is invoked for every task in a Visit, pre-order.
type Visitor func(t *Task) error

// Visit walks t and its descendants depth-first, pre-order, stopping at
// the first error.
func (t *Task) Visit(visitor Visitor) error {
	if err := visitor(t); err != nil {
		return err
	}
	for _, sub := range t.SubTasks() {
		if err := sub.Visit(visitor); err != nil {
			return err
		}
	}
	return nil
}

// Path returns the " :: "-joined description chain from the root task to
// t, the subtask-path format progress loggers report against.
func (t *Task) Path() string {
	t.mu.RLock()
	desc := t.description
	parent := t.parent
	t.mu.RUnlock()
	if parent == nil {
		return desc
	}
	return parent.Path() + " :: " + desc
}
