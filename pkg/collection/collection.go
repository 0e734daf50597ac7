// Package collection implements the uniform indexed-container capability
// (§4.2) over three backends: Single (one contiguous buffer), Paged (a
// sequence of fixed-size pages, see pkg/page), and Columnar (a read-mostly
// Arrow-backed wrapper). None of the three variants is self-synchronizing;
// concurrent mutation of one index must be externally serialized, but
// concurrent reads from many goroutines are always safe.
package collection

import "fmt"

// Backend identifies which of the three storage variants backs a Collection.
type Backend int

const (
	Single Backend = iota
	Paged
	Columnar
)

func (b Backend) String() string {
	switch b {
	case Single:
		return "Single"
	case Paged:
		return "Paged"
	case Columnar:
		return "Columnar"
	default:
		return "Unknown"
	}
}

// Collection is the capability set exposed uniformly across backends.
// T is the element type; Set is a no-op panic on read-only (Columnar)
// backends, matching the spec's "not on columnar wrappers" carve-out.
type Collection[T any] interface {
	Get(i int) T
	Set(i int, v T)
	Len() int
	Backend() Backend
	ValueType() ValueType
	DefaultValue() T
	// Cursor returns a sequential view; see cursor.go.
	Cursor() Cursor[T]
}

// Mutable reports whether a backend supports Set. Every backend implements
// it: Single and Paged report true, Columnar reports false, so calling
// Writable is the way to check writability before calling Set.
type Mutable interface {
	Writable() bool
}

// outOfRange panics with a descriptive message, the bounds-checked
// alternative to silent undefined behavior the spec requires for release
// builds.
func outOfRange(op string, i, n int) {
	panic(fmt.Sprintf("%s: index %d out of range [0, %d)", op, i, n))
}
