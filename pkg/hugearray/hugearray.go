// Package hugearray implements §4.3's huge array: a fixed-size,
// index-addressable array of T that picks a Single or Paged backing from
// pkg/collection depending on size, and adds a page-parallel constructor
// on top of it.
package hugearray

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/graphscale/graphscale/pkg/collection"
)

// SingleThreshold is the element count at or below which a huge array is
// backed by a single contiguous buffer rather than a paged one. It need
// not equal page.Size: a huge array's threshold is a construction-time
// tuning knob, the page size is the physical layout unit once Paged is
// chosen.
const SingleThreshold = 4096

// Array is a huge array of T, matching §4.3's "single for small N, paged
// for large N" variant selection.
type Array[T any] struct {
	col collection.Collection[T]
}

// New allocates an Array of size n with every element at T's zero value;
// defaultValue is recorded as the backing collection's default value and
// is not written into the elements.
func New[T any](n int, vt collection.ValueType, defaultValue T) *Array[T] {
	if n <= SingleThreshold {
		return &Array[T]{col: collection.NewSingle[T](n, vt, defaultValue)}
	}
	return &Array[T]{col: collection.NewPaged[T](n, vt, defaultValue)}
}

func (a *Array[T]) Get(i int) T                  { return a.col.Get(i) }
func (a *Array[T]) Set(i int, v T)               { a.col.Set(i, v) }
func (a *Array[T]) Size() int                    { return a.col.Len() }
func (a *Array[T]) Backend() collection.Backend  { return a.col.Backend() }
func (a *Array[T]) Cursor() collection.Cursor[T] { return a.col.Cursor() }

// Fill sets every element to v.
func (a *Array[T]) Fill(v T) {
	for i := 0; i < a.col.Len(); i++ {
		a.col.Set(i, v)
	}
}

// SetAll sets element i to f(i), for every i, sequentially.
func (a *Array[T]) SetAll(f func(i int) T) {
	for i := 0; i < a.col.Len(); i++ {
		a.col.Set(i, f(i))
	}
}

// Generator produces the value for index i during parallel construction.
// A generator must be safe to call concurrently from different goroutines
// for different indices; per §8's concurrency-insensitivity property, the
// result must not depend on which goroutine or in what order pages are
// filled.
type Generator[T any] func(i int) T

// NewWithGenerator builds an Array of size n by calling generator exactly
// once per index. Construction fans out page-parallel (up to concurrency
// workers, each claiming whole pages) and fills each page sequentially in
// index order, grounded on the teacher's chunk-processor worker pool:
// pages play the role of chunks, generator the role of the per-chunk work
// function. No partial page is observable outside this function: the
// returned Array is fully populated, or NewWithGenerator returns a nil
// Array and the context's error.
func NewWithGenerator[T any](ctx context.Context, n int, concurrency int, generator Generator[T], vt collection.ValueType, defaultValue T) (*Array[T], error) {
	if concurrency < 1 {
		concurrency = 1
	}
	arr := New[T](n, vt, defaultValue)

	if paged, ok := arr.col.(*collection.PagedCollection[T]); ok {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		pageSize := 0
		if paged.PageCount() > 0 {
			pageSize = len(paged.Page(0))
		}
		for pg := 0; pg < paged.PageCount(); pg++ {
			pg := pg
			g.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				page := paged.Page(pg)
				base := pg * pageSize
				for off := range page {
					page[off] = generator(base + off)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return arr, nil
	}

	// Single-backed: small enough that sequential fill dominates dispatch
	// overhead, and there is only one "page" to split across workers.
	for i := 0; i < n; i++ {
		arr.col.Set(i, generator(i))
	}
	return arr, nil
}
