package hugearray

import (
	"fmt"
	"sync/atomic"

	"github.com/graphscale/graphscale/pkg/page"
)

func outOfRange(op string, i, n int) {
	panic(fmt.Sprintf("%s: index %d out of range [0, %d)", op, i, n))
}

// AtomicInt64Array is a huge array of int64 with atomic element access,
// grounded on the teacher's AtomicBitset (CAS-free updates guarded by a
// per-word/per-slot atomic, grown once at construction instead of
// on-demand since huge arrays here are fixed-size by construction). Every
// element access is atomic, so many goroutines may touch it concurrently;
// no non-test code in this repository constructs one.
type AtomicInt64Array struct {
	pages  [][]atomic.Int64
	length int
}

// NewAtomicInt64Array allocates an atomic huge array of size n, every
// element initialized to 0.
func NewAtomicInt64Array(n int) *AtomicInt64Array {
	numPages := page.Count(n)
	pages := make([][]atomic.Int64, numPages)
	remaining := n
	for p := 0; p < numPages; p++ {
		sz := page.Size
		if remaining < sz {
			sz = remaining
		}
		pages[p] = make([]atomic.Int64, sz)
		remaining -= sz
	}
	return &AtomicInt64Array{pages: pages, length: n}
}

func (a *AtomicInt64Array) Size() int { return a.length }

func (a *AtomicInt64Array) slot(i int) *atomic.Int64 {
	if i < 0 || i >= a.length {
		outOfRange("AtomicInt64Array", i, a.length)
	}
	return &a.pages[page.Number(i)][page.Offset(i)]
}

func (a *AtomicInt64Array) Get(i int) int64 { return a.slot(i).Load() }

func (a *AtomicInt64Array) Set(i int, v int64) { a.slot(i).Store(v) }

// CompareAndSwap atomically sets index i to new if it currently holds old,
// reporting whether the swap happened.
func (a *AtomicInt64Array) CompareAndSwap(i int, old, new int64) bool {
	return a.slot(i).CompareAndSwap(old, new)
}

// FetchAdd atomically adds delta to index i and returns the new value.
func (a *AtomicInt64Array) FetchAdd(i int, delta int64) int64 {
	return a.slot(i).Add(delta)
}
