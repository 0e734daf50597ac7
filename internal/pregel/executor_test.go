package pregel

import (
	"context"
	"testing"

	"github.com/graphscale/graphscale/internal/topology"
)

// buildCycle builds a directed 0->1->2->0 ring, the smallest topology
// that exercises message passing without a trivial all-isolated graph.
func buildCycle(t *testing.T) *topology.Topology {
	t.Helper()
	b := topology.NewBuilder(3, false)
	for _, e := range [][2]int32{{0, 1}, {1, 2}, {2, 0}} {
		if err := b.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%d, %d) failed: %v", e[0], e[1], err)
		}
	}
	return b.Build()
}

type emptyConfig struct{}

func TestRunConvergesOnSmallCycle(t *testing.T) {
	top := buildCycle(t)

	program := Program[emptyConfig]{
		Schema: Schema{Float64Keys: []string{"value"}},
		InitFn: func(ctx *InitContext[emptyConfig]) {
			ctx.SetFloat64("value", float64(ctx.NodeID()+1))
		},
		ComputeFn: func(ctx *ComputeContext[emptyConfig], messages []float64) {
			if ctx.IsInitialSuperstep() {
				ctx.SendToNeighbors(ctx.Float64("value"))
				return
			}
			sum := 0.0
			for _, m := range messages {
				sum += m
			}
			ctx.SetFloat64("value", ctx.Float64("value")+sum)
			ctx.VoteHalt()
		},
		Concurrency: 2,
	}

	nv, iterations, err := Run[emptyConfig](context.Background(), 3, top, program, ExecutorConfig{MaxIterations: 10})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if iterations != 2 {
		t.Fatalf("Run() ran %d supersteps, want 2", iterations)
	}

	want := map[int]float64{0: 4, 1: 3, 2: 5}
	for node, w := range want {
		if got := nv.GetFloat64("value", node); got != w {
			t.Fatalf("node %d value = %f, want %f", node, got, w)
		}
	}
}

func TestRunStopsAtMaxIterationsWithoutConvergence(t *testing.T) {
	top := buildCycle(t)

	program := Program[emptyConfig]{
		Schema: Schema{Float64Keys: []string{"pings"}},
		ComputeFn: func(ctx *ComputeContext[emptyConfig], messages []float64) {
			// Every node sends forever; the loop never converges on its own,
			// so MaxIterations must be the thing that stops it.
			ctx.SendToNeighbors(1)
		},
		Concurrency: 1,
	}

	_, iterations, err := Run[emptyConfig](context.Background(), 3, top, program, ExecutorConfig{MaxIterations: 4})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if iterations != 4 {
		t.Fatalf("Run() ran %d supersteps, want 4 (MaxIterations cap)", iterations)
	}
}

func TestRunOnEmptyGraphConvergesImmediately(t *testing.T) {
	top := topology.NewBuilder(0, false).Build()

	program := Program[emptyConfig]{
		Schema: Schema{Float64Keys: []string{"value"}},
		ComputeFn: func(ctx *ComputeContext[emptyConfig], messages []float64) {
			t.Fatal("compute function must not run for an empty graph")
		},
		Concurrency: 2,
	}

	nv, iterations, err := Run[emptyConfig](context.Background(), 0, top, program, ExecutorConfig{MaxIterations: 10})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if iterations != 0 {
		t.Fatalf("Run() ran %d supersteps on an empty graph, want 0", iterations)
	}
	if nv.NodeCount() != 0 {
		t.Fatalf("NodeValue node count = %d, want 0", nv.NodeCount())
	}
}

func TestRunHonorsExplicitVoteHaltWithNoMessages(t *testing.T) {
	top := buildCycle(t)

	program := Program[emptyConfig]{
		ComputeFn: func(ctx *ComputeContext[emptyConfig], messages []float64) {
			ctx.VoteHalt()
		},
		Concurrency: 3,
	}

	_, iterations, err := Run[emptyConfig](context.Background(), 3, top, program, ExecutorConfig{MaxIterations: 10})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if iterations != 1 {
		t.Fatalf("Run() ran %d supersteps, want 1 (all nodes halt immediately)", iterations)
	}
}
