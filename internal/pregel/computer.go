package pregel

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/graphscale/graphscale/internal/topology"
	"github.com/graphscale/graphscale/pkg/hugearray"
)

// defaultSplitThreshold picks a ComputeStep split granularity so a
// single-node graph still runs and a large one gets real parallelism:
// roughly four partitions' worth of work per concurrency slot before
// work-stealing kicks in further.
func defaultSplitThreshold(nodeCount, concurrency int) int {
	if concurrency < 1 {
		concurrency = 1
	}
	threshold := nodeCount / (concurrency * 4)
	if threshold < 1 {
		threshold = 1
	}
	return threshold
}

// Program is what a caller supplies to run a Pregel computation: the
// node-value schema, the per-node init/compute callbacks, an optional
// message combiner, and a user config value threaded through every
// context, per §4.9.
type Program[Config any] struct {
	Schema         Schema
	InitFn         func(*InitContext[Config])
	ComputeFn      func(*ComputeContext[Config], []float64)
	Combine        func(existing, incoming float64) float64
	Config         Config
	Concurrency    int
	SplitThreshold int
}

// Computer is the §4.9 coordinator: it owns the Messenger, vote-bits,
// NodeValue and the current superstep's ComputeStep fan-out, and
// answers whether the computation has converged.
type Computer[Config any] struct {
	program   Program[Config]
	top       *topology.Topology
	nodeValue *NodeValue
	messenger *Messenger
	voteBits  *hugearray.AtomicBitset

	partitions     []Partition
	splitThreshold int
	steps          []*ComputeStep[Config]
}

func NewComputer[Config any](nodeCount int, top *topology.Topology, program Program[Config]) *Computer[Config] {
	concurrency := program.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	splitThreshold := program.SplitThreshold
	if splitThreshold <= 0 {
		splitThreshold = defaultSplitThreshold(nodeCount, concurrency)
	}
	return &Computer[Config]{
		program:        program,
		top:            top,
		nodeValue:      NewNodeValue(nodeCount, program.Schema),
		messenger:      NewMessenger(nodeCount, program.Combine),
		voteBits:       hugearray.NewAtomicBitset(nodeCount),
		partitions:     SplitEvenly(nodeCount, concurrency),
		splitThreshold: splitThreshold,
	}
}

func (c *Computer[Config]) NodeValue() *NodeValue { return c.nodeValue }

func (c *Computer[Config]) Messenger() *Messenger { return c.messenger }

// InitIteration rebuilds the ComputeStep fan-out for iteration. It leaves
// the vote-bits as the previous superstep left them: a node that sent no
// message and received none stays halted, while one that received a
// message had its bit cleared already in ComputeContext.SendTo.
func (c *Computer[Config]) InitIteration(iteration int) {
	steps := make([]*ComputeStep[Config], len(c.partitions))
	for i, p := range c.partitions {
		steps[i] = &ComputeStep[Config]{
			initFn:         c.program.InitFn,
			computeFn:      c.program.ComputeFn,
			partition:      p,
			nodeValue:      c.nodeValue,
			messenger:      c.messenger,
			voteBits:       c.voteBits,
			top:            c.top,
			iteration:      iteration,
			config:         c.program.Config,
			hasSentMessage: new(atomic.Bool),
			splitThreshold: c.splitThreshold,
		}
	}
	c.steps = steps
}

// RunIteration drives every ComputeStep to completion concurrently.
func (c *Computer[Config]) RunIteration(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, step := range c.steps {
		step := step
		g.Go(func() error { return step.Compute(gctx) })
	}
	return g.Wait()
}

// HasConverged reports the §4.9 termination condition: every node has
// voted to halt and no compute step sent a message this superstep.
func (c *Computer[Config]) HasConverged() bool {
	if !c.voteBits.AllSet() {
		return false
	}
	for _, step := range c.steps {
		if step.hasSentMessage.Load() {
			return false
		}
	}
	return true
}

// ActiveNodeCount returns the number of nodes that have not voted to
// halt, used for superstep tracing attributes.
func (c *Computer[Config]) ActiveNodeCount() int {
	return c.voteBits.Size() - c.voteBits.Count()
}
