package collection

// SingleCollection is a Collection backed by one contiguous in-memory
// buffer, grounded on the slice-backed storage of the teacher's
// IndexedObjectStore.
type SingleCollection[T any] struct {
	data   []T
	vt     ValueType
	defVal T
}

// NewSingle allocates a Single collection of length n, filled with the
// zero value of T.
func NewSingle[T any](n int, vt ValueType, defaultValue T) *SingleCollection[T] {
	return &SingleCollection[T]{
		data:   make([]T, n),
		vt:     vt,
		defVal: defaultValue,
	}
}

// NewSingleOf wraps an existing slice without copying; the constructor
// round-trip property (§8.5) relies on this preserving values exactly.
func NewSingleOf[T any](data []T, vt ValueType, defaultValue T) *SingleCollection[T] {
	return &SingleCollection[T]{data: data, vt: vt, defVal: defaultValue}
}

func (s *SingleCollection[T]) Get(i int) T {
	if i < 0 || i >= len(s.data) {
		outOfRange("SingleCollection.Get", i, len(s.data))
	}
	return s.data[i]
}

func (s *SingleCollection[T]) Set(i int, v T) {
	if i < 0 || i >= len(s.data) {
		outOfRange("SingleCollection.Set", i, len(s.data))
	}
	s.data[i] = v
}

func (s *SingleCollection[T]) Len() int { return len(s.data) }

func (s *SingleCollection[T]) Backend() Backend { return Single }

func (s *SingleCollection[T]) ValueType() ValueType { return s.vt }

func (s *SingleCollection[T]) DefaultValue() T { return s.defVal }

func (s *SingleCollection[T]) Writable() bool { return true }

func (s *SingleCollection[T]) Cursor() Cursor[T] {
	return newSingleCursor(s.data)
}

// Slice exposes the backing buffer directly, without copying.
func (s *SingleCollection[T]) Slice() []T { return s.data }
