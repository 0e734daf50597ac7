package collection

import "github.com/graphscale/graphscale/pkg/page"

// PagedCollection is a Collection backed by an ordered sequence of
// fixed-size pages, grounded on the teacher's MmapArray paging scheme but
// kept entirely in-process heap memory (no file backing): the graph store
// is in-memory only per the persistence Non-goal.
type PagedCollection[T any] struct {
	pages  [][]T
	length int
	vt     ValueType
	defVal T
}

// NewPaged allocates a Paged collection of length n, one page at a time.
func NewPaged[T any](n int, vt ValueType, defaultValue T) *PagedCollection[T] {
	numPages := page.Count(n)
	pages := make([][]T, numPages)
	remaining := n
	for p := 0; p < numPages; p++ {
		sz := page.Size
		if remaining < sz {
			sz = remaining
		}
		pages[p] = make([]T, sz)
		remaining -= sz
	}
	return &PagedCollection[T]{pages: pages, length: n, vt: vt, defVal: defaultValue}
}

func (p *PagedCollection[T]) Get(i int) T {
	if i < 0 || i >= p.length {
		outOfRange("PagedCollection.Get", i, p.length)
	}
	return p.pages[page.Number(i)][page.Offset(i)]
}

func (p *PagedCollection[T]) Set(i int, v T) {
	if i < 0 || i >= p.length {
		outOfRange("PagedCollection.Set", i, p.length)
	}
	p.pages[page.Number(i)][page.Offset(i)] = v
}

func (p *PagedCollection[T]) Len() int { return p.length }

func (p *PagedCollection[T]) Backend() Backend { return Paged }

func (p *PagedCollection[T]) ValueType() ValueType { return p.vt }

func (p *PagedCollection[T]) DefaultValue() T { return p.defVal }

func (p *PagedCollection[T]) Writable() bool { return true }

func (p *PagedCollection[T]) Cursor() Cursor[T] {
	return newPagedCursor(p.pages, page.Size, p.length)
}

// PageCount returns the number of pages backing this collection.
func (p *PagedCollection[T]) PageCount() int { return len(p.pages) }

// Page returns the raw slice for page index pg, for callers (huge-array
// parallel construction) that want to fill a page without per-element
// bounds checks.
func (p *PagedCollection[T]) Page(pg int) []T { return p.pages[pg] }
