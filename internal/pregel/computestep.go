package pregel

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/graphscale/graphscale/internal/topology"
	"github.com/graphscale/graphscale/pkg/hugearray"
)

// ComputeStep owns one partition's worth of Pregel compute, matching
// §4.9's ComputeStep: it recursively splits over-threshold partitions
// across the work-stealing pool (grounded on the teacher's
// pkg/parallel.ChunkProcessor recursive fan-out), or runs sequentially
// once small enough.
type ComputeStep[Config any] struct {
	initFn    func(*InitContext[Config])
	computeFn func(*ComputeContext[Config], []float64)

	partition Partition
	nodeValue *NodeValue
	messenger *Messenger
	voteBits  *hugearray.AtomicBitset
	top       *topology.Topology

	iteration      int
	config         Config
	hasSentMessage *atomic.Bool
	splitThreshold int
}

// Compute runs this step to completion: either recursively in parallel
// across a split, or sequentially over every node in the partition.
func (cs *ComputeStep[Config]) Compute(ctx context.Context) error {
	if cs.partition.Len() > cs.splitThreshold {
		if left, right, ok := cs.partition.Split(); ok {
			leftStep := cs.withPartition(left)
			rightStep := cs.withPartition(right)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return leftStep.Compute(gctx) })
			g.Go(func() error { return rightStep.Compute(gctx) })
			return g.Wait()
		}
	}
	return cs.computeSequential()
}

// withPartition clones this step over a different partition, sharing
// the same hasSentMessage flag so a message sent anywhere in the
// recursive split is visible to the top-level step (and from there, to
// the Computer's convergence check) without a separate merge pass.
func (cs *ComputeStep[Config]) withPartition(p Partition) *ComputeStep[Config] {
	clone := *cs
	clone.partition = p
	return &clone
}

func (cs *ComputeStep[Config]) computeSequential() error {
	cs.partition.ForEach(func(n int) {
		base := NodeCentricContext[Config]{
			config:    cs.config,
			nodeCount: cs.nodeValue.NodeCount(),
			nodeID:    n,
			top:       cs.top,
			nodeValue: cs.nodeValue,
		}

		if cs.iteration == 0 && cs.initFn != nil {
			cs.initFn(&InitContext[Config]{NodeCentricContext: base})
		}

		var nodeSent atomic.Bool
		messages := cs.messenger.Receive(n)
		computeCtx := &ComputeContext[Config]{
			NodeCentricContext: base,
			iteration:          cs.iteration,
			messenger:          cs.messenger,
			voteBits:           cs.voteBits,
			hasSentMessage:     &nodeSent,
		}
		cs.computeFn(computeCtx, messages)

		if nodeSent.Load() {
			cs.hasSentMessage.Store(true)
		}
		// A node that neither voted to halt nor sent a message this
		// superstep has nothing left to drive it forward; auto-halt it.
		if !cs.voteBits.Test(n) && !nodeSent.Load() {
			cs.voteBits.Set(n)
		}
	})
	return nil
}
