package pregel

import (
	"sync/atomic"

	"github.com/graphscale/graphscale/internal/topology"
)

// NodeCentricContext is the base of the three layered contexts in §4.9:
// every operation a Pregel program needs about "my own node" — identity,
// degree, neighbors, node-value read/write.
type NodeCentricContext[Config any] struct {
	config    Config
	nodeCount int
	nodeID    int
	top       *topology.Topology
	nodeValue *NodeValue
}

func (c *NodeCentricContext[Config]) Config() Config { return c.config }

func (c *NodeCentricContext[Config]) NodeID() int { return c.nodeID }

func (c *NodeCentricContext[Config]) NodeCount() int { return c.nodeCount }

func (c *NodeCentricContext[Config]) Degree() int {
	if c.top == nil {
		return 0
	}
	return len(c.top.Outgoing(c.nodeID))
}

func (c *NodeCentricContext[Config]) Neighbors() []int32 {
	if c.top == nil {
		return nil
	}
	return c.top.Outgoing(c.nodeID)
}

func (c *NodeCentricContext[Config]) SetFloat64(key string, v float64) {
	c.nodeValue.SetFloat64(key, c.nodeID, v)
}

func (c *NodeCentricContext[Config]) Float64(key string) float64 {
	return c.nodeValue.GetFloat64(key, c.nodeID)
}

func (c *NodeCentricContext[Config]) SetInt64(key string, v int64) {
	c.nodeValue.SetInt64(key, c.nodeID, v)
}

func (c *NodeCentricContext[Config]) Int64(key string) int64 {
	return c.nodeValue.GetInt64(key, c.nodeID)
}

// InitContext is used during the init phase (superstep 0, pre-compute).
// It adds no new operations over NodeCentricContext; the distinct type
// documents intent at the call site, matching §4.9's "semantically
// 'initialize my state'" framing.
type InitContext[Config any] struct {
	NodeCentricContext[Config]
}

// voteBitSet is the minimal surface ComputeContext needs from the
// engine's atomic bit set, satisfied by hugearray.AtomicBitset.
type voteBitSet interface {
	Set(i int)
	Clear(i int)
	Test(i int) bool
}

// ComputeContext extends NodeCentricContext with message-send and
// vote-halt access, used during every regular compute invocation.
type ComputeContext[Config any] struct {
	NodeCentricContext[Config]
	iteration      int
	messenger      *Messenger
	voteBits       voteBitSet
	hasSentMessage *atomic.Bool
}

func (c *ComputeContext[Config]) Superstep() int { return c.iteration }

func (c *ComputeContext[Config]) IsInitialSuperstep() bool { return c.iteration == 0 }

// SendTo sends msg to target, marks this node as having sent a message
// this superstep (suppressing the automatic halt-bit set at the end of
// compute()), and clears target's vote-halt bit: a node that receives a
// message wakes up for the next superstep, per §4.9.
func (c *ComputeContext[Config]) SendTo(target int, msg float64) {
	c.messenger.SendTo(target, msg)
	c.hasSentMessage.Store(true)
	c.voteBits.Clear(target)
}

func (c *ComputeContext[Config]) SendToNeighbors(msg float64) {
	for _, n := range c.Neighbors() {
		c.SendTo(int(n), msg)
	}
}

func (c *ComputeContext[Config]) VoteHalt() {
	c.voteBits.Set(c.nodeID)
}
