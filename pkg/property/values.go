// Package property implements the typed property-value containers and
// property stores of §4.4: graph-level, node-level, and relationship-level
// attribute state layered on top of pkg/collection.
package property

import "github.com/graphscale/graphscale/pkg/collection"

// Values is the type-erased face of a property-values container, the shape
// a property store holds heterogeneous entries behind. Concrete access to
// elements goes through TypedValues[T] after a type assertion on ValueType.
type Values interface {
	Len() int
	ValueType() collection.ValueType
}

// TypedValues is a property-values container for one concrete Go type T,
// satisfying "Collection<T> + default_value(T) + value_type()" from §4.4.
type TypedValues[T any] interface {
	Values
	Get(i int) T
	DefaultValue() T
}

type typedValues[T any] struct {
	col collection.Collection[T]
}

// NewValues wraps a Collection as property values.
func NewValues[T any](col collection.Collection[T]) TypedValues[T] {
	return &typedValues[T]{col: col}
}

func (v *typedValues[T]) Len() int                        { return v.col.Len() }
func (v *typedValues[T]) ValueType() collection.ValueType { return v.col.ValueType() }
func (v *typedValues[T]) Get(i int) T                     { return v.col.Get(i) }
func (v *typedValues[T]) DefaultValue() T                 { return v.col.DefaultValue() }

// Of builds property values directly from a slice of v repeated N times,
// grounding the constructor round-trip property (§8.5): Of(vec![v;N]).Get(i)
// == v for all i.
func Of[T any](n int, v T, vt collection.ValueType) TypedValues[T] {
	col := collection.NewSingle[T](n, vt, v)
	for i := 0; i < n; i++ {
		col.Set(i, v)
	}
	return NewValues[T](col)
}
