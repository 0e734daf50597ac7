package collection

import (
	"math"
	"sort"

	"golang.org/x/exp/constraints"
)

// Stats holds the numeric aggregations §4.2 requires: sum, mean, min, max,
// standard deviation, variance, median, and arbitrary percentiles. On an
// empty collection every method's ok return is false, matching "on empty
// collection, aggregations return none".
type Stats[T constraints.Integer | constraints.Float] struct {
	values []T
}

// NewStats materializes a Stats view by draining a Collection's cursor
// into one contiguous slice. It is the caller's responsibility to only do
// this for ValueTypes where IsNumeric() is true; sum/mean/etc. are
// semantically undefined otherwise (e.g. booleans, chars) and this package
// does not attempt to define them.
func NewStats[T constraints.Integer | constraints.Float](c Collection[T]) *Stats[T] {
	values := make([]T, 0, c.Len())
	cur := c.Cursor()
	for {
		slice, _, ok := cur.Next()
		if !ok {
			break
		}
		values = append(values, slice...)
	}
	return &Stats[T]{values: values}
}

func (s *Stats[T]) Sum() (T, bool) {
	if len(s.values) == 0 {
		var zero T
		return zero, false
	}
	var sum T
	for _, v := range s.values {
		sum += v
	}
	return sum, true
}

func (s *Stats[T]) Mean() (float64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	sum, _ := s.Sum()
	return float64(sum) / float64(len(s.values)), true
}

// Min and Max follow the documented NaN policy: NaN sorts greater than all
// finite values, and propagates if present (i.e. if any value is NaN, Max
// returns NaN; Min ignores NaN unless every value is NaN).
func (s *Stats[T]) Min() (T, bool) {
	if len(s.values) == 0 {
		var zero T
		return zero, false
	}
	min := s.values[0]
	for _, v := range s.values[1:] {
		if less(v, min) {
			min = v
		}
	}
	return min, true
}

func (s *Stats[T]) Max() (T, bool) {
	if len(s.values) == 0 {
		var zero T
		return zero, false
	}
	max := s.values[0]
	for _, v := range s.values[1:] {
		if less(max, v) || isNaN(v) {
			max = v
		}
	}
	return max, true
}

func (s *Stats[T]) Variance() (float64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	mean, _ := s.Mean()
	var acc float64
	for _, v := range s.values {
		d := float64(v) - mean
		acc += d * d
	}
	return acc / float64(len(s.values)), true
}

func (s *Stats[T]) StdDev() (float64, bool) {
	variance, ok := s.Variance()
	if !ok {
		return 0, false
	}
	return math.Sqrt(variance), true
}

func (s *Stats[T]) Median() (float64, bool) {
	return s.Percentile(50)
}

// Percentile implements nearest-rank percentile over a sorted copy of the
// values; p is in [0, 100].
func (s *Stats[T]) Percentile(p float64) (float64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	sorted := append([]T(nil), s.values...)
	sort.Slice(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	rank := int(math.Ceil(p/100*float64(len(sorted)))) - 1
	if rank < 0 {
		rank = 0
	}
	if rank >= len(sorted) {
		rank = len(sorted) - 1
	}
	return float64(sorted[rank]), true
}

func less[T constraints.Integer | constraints.Float](a, b T) bool {
	if isNaN(a) {
		return false
	}
	if isNaN(b) {
		return true
	}
	return a < b
}

func isNaN[T constraints.Integer | constraints.Float](v T) bool {
	f := float64(v)
	return math.IsNaN(f)
}
