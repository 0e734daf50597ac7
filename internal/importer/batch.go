package importer

import "github.com/apache/arrow-go/v18/arrow"

// BatchRef wraps a chunk of a table (an Arrow record batch) with an
// explicit [start, end) row range over that chunk, per §4.8: "Its length
// is end - start (not the full chunk length)".
type BatchRef struct {
	record arrow.Record
	start  int
	end    int
}

func NewBatchRef(record arrow.Record, start, end int) BatchRef {
	return BatchRef{record: record, start: start, end: end}
}

func (b BatchRef) Len() int { return b.end - b.start }

func (b BatchRef) Start() int { return b.start }

// Column returns the typed Arrow array for columnIndex, still addressed
// by the batch's absolute row indices; callers offset by b.Start() when
// walking [0, Len()).
func (b BatchRef) Column(columnIndex int) arrow.Array {
	return b.record.Column(columnIndex)
}
