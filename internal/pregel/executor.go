package pregel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/graphscale/graphscale/internal/topology"
)

// ExecutorConfig bounds and instruments one Pregel run.
type ExecutorConfig struct {
	MaxIterations int
	// Tracer is optional; when set, one span is opened per superstep
	// carrying the §4.9 "Pregel job tracing" attributes (superstep,
	// nodes_active, messages_sent).
	Tracer trace.Tracer
}

// Run orchestrates the BSP loop described in §4.9: init each superstep,
// run it, check convergence, and advance the messenger's double buffer
// before the next superstep — returning the final NodeValue once the
// program converges or MaxIterations is exhausted.
func Run[Config any](ctx context.Context, nodeCount int, top *topology.Topology, program Program[Config], cfg ExecutorConfig) (*NodeValue, int, error) {
	computer := NewComputer[Config](nodeCount, top, program)

	// An empty graph has nothing to compute and nothing to converge on:
	// run zero supersteps rather than spending MaxIterations discovering
	// that an all-vacuous vote-bit set was already "converged".
	if nodeCount == 0 {
		return computer.NodeValue(), 0, nil
	}

	maxIterations := cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 1
	}

	iterationsRun := 0
	for iter := 0; iter < maxIterations; iter++ {
		stepCtx := ctx
		var span trace.Span
		if cfg.Tracer != nil {
			stepCtx, span = cfg.Tracer.Start(ctx, fmt.Sprintf("pregel.superstep.%d", iter))
		}

		computer.InitIteration(iter)
		if err := computer.RunIteration(stepCtx); err != nil {
			if span != nil {
				span.RecordError(err)
				span.End()
			}
			return nil, iterationsRun, err
		}
		iterationsRun++

		converged := computer.HasConverged()
		if span != nil {
			span.SetAttributes(
				attribute.Int("superstep", iter),
				attribute.Int("nodes_active", computer.ActiveNodeCount()),
				attribute.Int("messages_sent", computer.Messenger().PendingCount()),
			)
			span.End()
		}

		if converged {
			break
		}
		computer.Messenger().AdvanceIteration()
	}

	return computer.NodeValue(), iterationsRun, nil
}
