package pregel

import "sync"

// Messenger is the double-buffered message queue of §4.9: one logical
// inbox per node per superstep. Sends land in the "next" buffer;
// receives read the "current" buffer, populated by the previous
// AdvanceIteration. Messages carry float64 values, matching the engine's
// Pregel programs (e.g. PageRank contributions).
type Messenger struct {
	nodeCount int
	combine   func(existing, incoming float64) float64

	mu      []sync.Mutex
	current [][]float64
	next    [][]float64
}

// NewMessenger creates a messenger for nodeCount nodes. combine, if
// non-nil, collapses every node's inbox to at most one message per
// §4.9's optional combining behavior; if nil, all sent messages are
// retained in arrival order.
func NewMessenger(nodeCount int, combine func(existing, incoming float64) float64) *Messenger {
	return &Messenger{
		nodeCount: nodeCount,
		combine:   combine,
		mu:        make([]sync.Mutex, nodeCount),
		current:   make([][]float64, nodeCount),
		next:      make([][]float64, nodeCount),
	}
}

// SendTo is safe for concurrent calls from many goroutines targeting the
// same or different nodes.
func (m *Messenger) SendTo(target int, msg float64) {
	m.mu[target].Lock()
	defer m.mu[target].Unlock()

	if m.combine != nil {
		if len(m.next[target]) == 0 {
			m.next[target] = []float64{msg}
		} else {
			m.next[target][0] = m.combine(m.next[target][0], msg)
		}
		return
	}
	m.next[target] = append(m.next[target], msg)
}

// Receive returns the current superstep's inbox for node, populated by
// the previous AdvanceIteration.
func (m *Messenger) Receive(node int) []float64 {
	return m.current[node]
}

// AdvanceIteration swaps buffers: this superstep's sends become the next
// superstep's receivable inbox, and a fresh outbox is allocated.
func (m *Messenger) AdvanceIteration() {
	m.current = m.next
	m.next = make([][]float64, m.nodeCount)
}

// HasMessages reports whether node has at least one message in the
// current inbox. It does not touch the vote-bits: the "delivery clears
// vote-halt" wake-up happens in ComputeContext.SendTo.
func (m *Messenger) HasMessages(node int) bool {
	return len(m.current[node]) > 0
}

// PendingCount sums the messages queued in the next-superstep outbox,
// used as a superstep tracing attribute. Not safe to call concurrently
// with SendTo; callers invoke it only after RunIteration has returned.
func (m *Messenger) PendingCount() int {
	total := 0
	for _, inbox := range m.next {
		total += len(inbox)
	}
	return total
}
