package importer

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/graphscale/graphscale/pkg/errors"
)

// ImportResult is one import task's contribution: rows consumed and
// property values extracted, plus how long the task ran.
type ImportResult struct {
	RecordsImported    int64
	PropertiesImported int64
	Duration           time.Duration
}

// AggregatedImportResult is the task runner's summary across every task,
// matching §4.8's "totals, duration, records/second, per-task breakdown".
type AggregatedImportResult struct {
	TotalRecords    int64
	TotalProperties int64
	Duration        time.Duration
	RecordsPerSec   float64
	PerTask         []ImportResult
}

// ImportTask is a unit of import work: repeatedly reserve a batch from a
// cursor and apply it via process, until the cursor is exhausted or the
// shared terminate flag is set.
type ImportTask struct {
	cursor    *Cursor
	terminate *atomic.Bool
	process   func(ctx context.Context, batch BatchRef) (recordsImported, propertiesImported int64, err error)
}

func NewImportTask(cursor *Cursor, terminate *atomic.Bool, process func(ctx context.Context, batch BatchRef) (int64, int64, error)) *ImportTask {
	return &ImportTask{cursor: cursor, terminate: terminate, process: process}
}

// Run drives the task to completion, checking the termination flag at
// each batch boundary (never mid-batch), per §5's chunked cancellation
// policy.
func (t *ImportTask) Run(ctx context.Context) (ImportResult, error) {
	start := time.Now()
	var result ImportResult

	for {
		if t.terminate != nil && t.terminate.Load() {
			return result, apperrors.New(apperrors.CodeTerminated, "import task terminated before completion")
		}
		select {
		case <-ctx.Done():
			return result, apperrors.Wrap(apperrors.CodeTerminated, "import task canceled", ctx.Err())
		default:
		}

		batch, ok := t.cursor.ReserveNext()
		if !ok {
			result.Duration = time.Since(start)
			return result, nil
		}

		records, properties, err := t.process(ctx, batch)
		if err != nil {
			result.Duration = time.Since(start)
			return result, apperrors.Wrap(apperrors.CodeTaskError, "import task failed processing a batch", err)
		}
		result.RecordsImported += records
		result.PropertiesImported += properties
	}
}

// TaskRunner executes N import tasks on a bounded goroutine pool drained
// via errgroup, grounded on the teacher's worker-pool/scheduler dispatch,
// and aggregates per-task results into an AggregatedImportResult.
type TaskRunner struct {
	concurrency int
	terminate   atomic.Bool
}

func NewTaskRunner(concurrency int) *TaskRunner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &TaskRunner{concurrency: concurrency}
}

// Terminate sets the shared atomic flag every running task polls at its
// next batch boundary.
func (r *TaskRunner) Terminate() { r.terminate.Store(true) }

func (r *TaskRunner) Run(ctx context.Context, tasks []*ImportTask) (AggregatedImportResult, error) {
	start := time.Now()
	results := make([]ImportResult, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, task := range tasks {
		i, task := i, task
		task.terminate = &r.terminate
		g.Go(func() error {
			res, err := task.Run(gctx)
			results[i] = res
			return err
		})
	}

	runErr := g.Wait()

	agg := AggregatedImportResult{PerTask: results}
	for _, res := range results {
		agg.TotalRecords += res.RecordsImported
		agg.TotalProperties += res.PropertiesImported
	}
	agg.Duration = time.Since(start)
	if agg.Duration > 0 {
		agg.RecordsPerSec = float64(agg.TotalRecords) / agg.Duration.Seconds()
	}

	if runErr != nil {
		return agg, runErr
	}
	return agg, nil
}
