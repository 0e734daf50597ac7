// Package programs holds concrete Program[Config] instances callers can
// run directly, the way a caller of §4.9's Pregel executor is expected
// to supply one: PageRank is the canonical node-centric BSP program and
// exercises SendToNeighbors, VoteHalt, and the Float64 node-value slot
// end to end.
package programs

import "github.com/graphscale/graphscale/internal/pregel"

// PageRankConfig holds PageRank's two tunables: the damping factor and
// the per-superstep delta below which a node votes to halt.
type PageRankConfig struct {
	DampingFactor float64
	Tolerance     float64
}

// PageRank builds the Program the executor runs: every node starts at
// 1/N, sends its rank divided by out-degree to each neighbor every
// superstep, and recomputes its rank from received messages, voting
// halt once its own value stops moving by more than cfg.Tolerance.
func PageRank(nodeCount int, cfg PageRankConfig) pregel.Program[PageRankConfig] {
	if cfg.DampingFactor <= 0 {
		cfg.DampingFactor = 0.85
	}
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = 1e-6
	}

	return pregel.Program[PageRankConfig]{
		Schema: pregel.Schema{Float64Keys: []string{"rank"}},
		Config: cfg,
		InitFn: func(ctx *pregel.InitContext[PageRankConfig]) {
			ctx.SetFloat64("rank", 1.0/float64(ctx.NodeCount()))
		},
		ComputeFn: func(ctx *pregel.ComputeContext[PageRankConfig], messages []float64) {
			if ctx.IsInitialSuperstep() {
				broadcastRank(ctx)
				return
			}

			sum := 0.0
			for _, m := range messages {
				sum += m
			}
			damping := ctx.Config().DampingFactor
			newRank := (1-damping)/float64(ctx.NodeCount()) + damping*sum

			delta := newRank - ctx.Float64("rank")
			if delta < 0 {
				delta = -delta
			}
			ctx.SetFloat64("rank", newRank)

			if delta < ctx.Config().Tolerance {
				ctx.VoteHalt()
				return
			}
			broadcastRank(ctx)
		},
	}
}

func broadcastRank[Config any](ctx *pregel.ComputeContext[Config]) {
	degree := ctx.Degree()
	if degree == 0 {
		return
	}
	rank := ctx.Float64("rank")
	ctx.SendToNeighbors(rank / float64(degree))
}
