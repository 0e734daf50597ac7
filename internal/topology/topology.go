// Package topology implements §4.6's relationship topology: adjacency
// lists keyed by mapped node id, one Topology per relationship type,
// grounded on the teacher's CompactEdgeList/CompactEdgeListBuilder split
// (accumulate then seal) but kept as plain adjacency lists rather than
// CSR, matching the baseline representation the specification calls for.
// A CSR-backed variant sharing the same interface is future work (see
// DESIGN.md).
package topology

import (
	"sync"

	apperrors "github.com/graphscale/graphscale/pkg/errors"
)

// Aggregation names a parallel-edge reduction strategy applied when a
// (src, tgt) pair repeats. Only None is wired: weighted-merge strategies
// are deferred pending a concrete per-relationship weight property.
type Aggregation int

const (
	AggregationNone Aggregation = iota
	AggregationSum
	AggregationMin
	AggregationMax
	AggregationCount
)

// Topology is the immutable, adjacency-list relationship graph for one
// relationship type. Parallel edges are retained: the builder takes no
// Aggregation and never deduplicates, which is the AggregationNone
// behavior.
type Topology struct {
	outgoing [][]int32
	incoming [][]int32 // nil if incoming was not requested
	relCount int
}

func (t *Topology) Outgoing(src int) []int32 {
	if src < 0 || src >= len(t.outgoing) {
		panic(apperrors.Newf(apperrors.CodeInvalidNodeID, "topology.Outgoing: mapped id %d out of range [0, %d)", src, len(t.outgoing)))
	}
	return t.outgoing[src]
}

// HasIncoming reports whether this Topology was built with a reverse
// adjacency index.
func (t *Topology) HasIncoming() bool { return t.incoming != nil }

func (t *Topology) Incoming(tgt int) []int32 {
	if t.incoming == nil {
		panic("topology.Incoming: this topology was built without incoming adjacency")
	}
	if tgt < 0 || tgt >= len(t.incoming) {
		panic(apperrors.Newf(apperrors.CodeInvalidNodeID, "topology.Incoming: mapped id %d out of range [0, %d)", tgt, len(t.incoming)))
	}
	return t.incoming[tgt]
}

func (t *Topology) NodeCount() int { return len(t.outgoing) }

func (t *Topology) RelationshipCount() int { return t.relCount }

// Builder accumulates edges from the relationship accumulator before one
// seal-time Build, analogous to CompactEdgeListBuilder.
type Builder struct {
	mu            sync.Mutex
	nodeCount     int
	buildIncoming bool
	outgoing      [][]int32
	incoming      [][]int32
	relCount      int
}

func NewBuilder(nodeCount int, buildIncoming bool) *Builder {
	b := &Builder{
		nodeCount:     nodeCount,
		buildIncoming: buildIncoming,
		outgoing:      make([][]int32, nodeCount),
	}
	if buildIncoming {
		b.incoming = make([][]int32, nodeCount)
	}
	return b
}

// AddEdge records src -> tgt. Both must already be valid mapped ids (the
// relationship accumulator resolves original ids through the id map
// before calling this); an out-of-range id here is the
// InvalidNodeId fatal error of §7, not a builder-level retry case.
func (b *Builder) AddEdge(src, tgt int32) error {
	if int(src) < 0 || int(src) >= b.nodeCount {
		return apperrors.Newf(apperrors.CodeInvalidNodeID, "topology.AddEdge: source %d out of range [0, %d)", src, b.nodeCount)
	}
	if int(tgt) < 0 || int(tgt) >= b.nodeCount {
		return apperrors.Newf(apperrors.CodeInvalidNodeID, "topology.AddEdge: target %d out of range [0, %d)", tgt, b.nodeCount)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.outgoing[src] = append(b.outgoing[src], tgt)
	if b.buildIncoming {
		b.incoming[tgt] = append(b.incoming[tgt], src)
	}
	b.relCount++
	return nil
}

func (b *Builder) Build() *Topology {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &Topology{outgoing: b.outgoing, incoming: b.incoming, relCount: b.relCount}
}
