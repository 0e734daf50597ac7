package importer

import (
	"sync"

	"github.com/apache/arrow-go/v18/arrow"
)

// Scanner reserves row ranges across a sequence of Arrow record batches
// (chunks) without ever reserving the same range twice, grounded on the
// teacher's atomic-counter task dispatch in internal/scheduler/scheduler.go,
// adapted here to row ranges instead of work items. Safe for concurrent
// use by many cursors without external locking.
type Scanner struct {
	chunks    []arrow.Record
	batchSize int

	mu       sync.Mutex
	chunkIdx int
	rowIdx   int
}

func NewScanner(chunks []arrow.Record, batchSize int) *Scanner {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Scanner{chunks: chunks, batchSize: batchSize}
}

// NewCursor returns an independent cursor over this scanner's shared
// reservation state. Multiple cursors may scan concurrently.
func (s *Scanner) NewCursor() *Cursor { return &Cursor{scanner: s} }

// Cursor is not safe for concurrent use by itself (one goroutine per
// cursor); the Scanner it was created from is.
type Cursor struct {
	scanner *Scanner
}

// ReserveNext atomically reserves the next [start, end) row range and
// returns false once every chunk is exhausted.
func (c *Cursor) ReserveNext() (BatchRef, bool) {
	s := c.scanner
	s.mu.Lock()
	defer s.mu.Unlock()

	for s.chunkIdx < len(s.chunks) {
		chunk := s.chunks[s.chunkIdx]
		n := int(chunk.NumRows())
		if s.rowIdx >= n {
			s.chunkIdx++
			s.rowIdx = 0
			continue
		}
		start := s.rowIdx
		end := start + s.batchSize
		if end > n {
			end = n
		}
		s.rowIdx = end
		return NewBatchRef(chunk, start, end), true
	}
	return BatchRef{}, false
}

// ConsumeBatch repeatedly reserves batches and hands each to consumer
// until the scanner is exhausted or consumer returns false (backpressure:
// pauses further reservation for this cursor).
func (c *Cursor) ConsumeBatch(consumer func(BatchRef) bool) {
	for {
		b, ok := c.ReserveNext()
		if !ok {
			return
		}
		if !consumer(b) {
			return
		}
	}
}
