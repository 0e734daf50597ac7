package programs

import (
	"context"
	"testing"

	"github.com/graphscale/graphscale/internal/pregel"
	"github.com/graphscale/graphscale/internal/topology"
)

// buildStarGraph builds two nodes each pointing at a third.
func buildStarGraph(t *testing.T) *topology.Topology {
	t.Helper()
	b := topology.NewBuilder(3, false)
	for _, e := range [][2]int32{{0, 2}, {1, 2}} {
		if err := b.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%d, %d) failed: %v", e[0], e[1], err)
		}
	}
	return b.Build()
}

func TestPageRankConvergesWithinBoundedSupersteps(t *testing.T) {
	top := buildStarGraph(t)
	program := PageRank(3, PageRankConfig{DampingFactor: 0.85, Tolerance: 1e-6})

	nv, iterations, err := pregel.Run(context.Background(), 3, top, program, pregel.ExecutorConfig{MaxIterations: 50})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if iterations >= 50 {
		t.Fatalf("PageRank did not converge within 50 supersteps")
	}

	for node := 0; node < 3; node++ {
		rank := nv.GetFloat64("rank", node)
		if rank < 0 {
			t.Fatalf("node %d rank %f is negative", node, rank)
		}
	}
}

func TestPageRankSinkAccumulatesMoreThanASourceEarlyOn(t *testing.T) {
	top := buildStarGraph(t)
	program := PageRank(3, PageRankConfig{DampingFactor: 0.85, Tolerance: 1e-6})

	nv, _, err := pregel.Run(context.Background(), 3, top, program, pregel.ExecutorConfig{MaxIterations: 2})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	sink := nv.GetFloat64("rank", 2)
	source := nv.GetFloat64("rank", 0)
	if sink <= source {
		t.Fatalf("after receiving inbound rank, sink %f should exceed source %f", sink, source)
	}
}

func TestPageRankDefaultsDampingAndTolerance(t *testing.T) {
	program := PageRank(3, PageRankConfig{})
	if program.Config.DampingFactor != 0.85 {
		t.Fatalf("default damping factor = %f, want 0.85", program.Config.DampingFactor)
	}
	if program.Config.Tolerance != 1e-6 {
		t.Fatalf("default tolerance = %e, want 1e-6", program.Config.Tolerance)
	}
}
