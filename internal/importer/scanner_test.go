package importer

import (
	"sync"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

func makeInt64Chunk(values []int64) arrow.Record {
	schema := arrow.NewSchema([]arrow.Field{{Name: "id", Type: arrow.PrimitiveTypes.Int64}}, nil)
	pool := memory.NewGoAllocator()
	b := array.NewInt64Builder(pool)
	b.AppendValues(values, nil)
	arr := b.NewInt64Array()
	return array.NewRecord(schema, []arrow.Array{arr}, int64(len(values)))
}

func TestScannerNeverReservesSameRangeTwice(t *testing.T) {
	chunk := makeInt64Chunk([]int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})
	scanner := NewScanner([]arrow.Record{chunk}, 3)

	var mu sync.Mutex
	var reserved []int
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cursor := scanner.NewCursor()
			for {
				batch, ok := cursor.ReserveNext()
				if !ok {
					return
				}
				mu.Lock()
				reserved = append(reserved, batch.Len())
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	total := 0
	for _, n := range reserved {
		total += n
	}
	if total != 10 {
		t.Fatalf("total reserved rows = %d, want 10", total)
	}
}

func TestConsumeBatchStopsOnBackpressure(t *testing.T) {
	chunk := makeInt64Chunk([]int64{1, 2, 3, 4, 5, 6})
	scanner := NewScanner([]arrow.Record{chunk}, 2)
	cursor := scanner.NewCursor()

	calls := 0
	cursor.ConsumeBatch(func(b BatchRef) bool {
		calls++
		return calls < 2
	})
	if calls != 2 {
		t.Fatalf("expected consumer called exactly twice before stopping, got %d", calls)
	}

	remaining, ok := cursor.ReserveNext()
	if !ok || remaining.Len() != 2 {
		t.Fatalf("expected one more batch of 2 rows remaining, got %v, %v", remaining, ok)
	}
}

func TestScannerExhaustedSignal(t *testing.T) {
	chunk := makeInt64Chunk([]int64{1})
	scanner := NewScanner([]arrow.Record{chunk}, 10)
	cursor := scanner.NewCursor()

	if _, ok := cursor.ReserveNext(); !ok {
		t.Fatal("expected first reservation to succeed")
	}
	if _, ok := cursor.ReserveNext(); ok {
		t.Fatal("expected second reservation to report exhausted")
	}
}
