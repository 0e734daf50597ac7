package importer

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/graphscale/graphscale/pkg/collection"
	apperrors "github.com/graphscale/graphscale/pkg/errors"
)

// readUint64 reads an integer column's value at row as uint64, the
// common currency for original node/relationship-endpoint ids regardless
// of the column's declared width.
func readUint64(col arrow.Array, row int) (uint64, error) {
	switch a := col.(type) {
	case *array.Int8:
		return uint64(a.Value(row)), nil
	case *array.Int16:
		return uint64(a.Value(row)), nil
	case *array.Int32:
		return uint64(a.Value(row)), nil
	case *array.Int64:
		return uint64(a.Value(row)), nil
	case *array.Uint8:
		return uint64(a.Value(row)), nil
	case *array.Uint16:
		return uint64(a.Value(row)), nil
	case *array.Uint32:
		return uint64(a.Value(row)), nil
	case *array.Uint64:
		return a.Value(row), nil
	default:
		return 0, apperrors.New(apperrors.CodeUnsupportedPropertyType, "id column is not an integer Arrow array")
	}
}

// readLabels reads a label column's value at row, supporting either a
// plain string column (single label) or a list-of-string column.
func readLabels(col arrow.Array, row int) []string {
	switch a := col.(type) {
	case *array.String:
		if a.IsNull(row) {
			return nil
		}
		return []string{a.Value(row)}
	case *array.List:
		if a.IsNull(row) {
			return nil
		}
		start, end := a.ValueOffsets(row)
		elems, ok := a.ListValues().(*array.String)
		if !ok {
			return nil
		}
		out := make([]string, 0, int(end-start))
		for i := start; i < end; i++ {
			out = append(out, elems.Value(int(i)))
		}
		return out
	default:
		return nil
	}
}

// readProperty reads a property column's value at row according to ref's
// declared value type, substituting nil (build-time default) for a null
// cell, per §4.8's null-handling rule.
func readProperty(col arrow.Array, row int, ref PropertyColumnRef) (interface{}, error) {
	if col.IsNull(row) {
		return nil, nil
	}
	switch ref.ValueType {
	case collection.Int8:
		a, ok := col.(*array.Int8)
		if !ok {
			return nil, apperrors.Newf(apperrors.CodePropertyTypeMismatch, "property %q: expected int8 column", ref.Key)
		}
		return a.Value(row), nil
	case collection.Int16:
		if a, ok := col.(*array.Int8); ok {
			return int16(a.Value(row)), nil
		}
		a, ok := col.(*array.Int16)
		if !ok {
			return nil, apperrors.Newf(apperrors.CodePropertyTypeMismatch, "property %q: expected int16 column", ref.Key)
		}
		return a.Value(row), nil
	case collection.Int32:
		switch w := col.(type) {
		case *array.Int8:
			return int32(w.Value(row)), nil
		case *array.Int16:
			return int32(w.Value(row)), nil
		}
		a, ok := col.(*array.Int32)
		if !ok {
			return nil, apperrors.Newf(apperrors.CodePropertyTypeMismatch, "property %q: expected int32 column", ref.Key)
		}
		return a.Value(row), nil
	case collection.Int64:
		return readUint64AsInt64(col, row)
	case collection.Float32:
		a, ok := col.(*array.Float32)
		if !ok {
			return nil, apperrors.Newf(apperrors.CodePropertyTypeMismatch, "property %q: expected float32 column", ref.Key)
		}
		return a.Value(row), nil
	case collection.Float64:
		return readFloat64(col, row)
	case collection.Bool:
		b, ok := col.(*array.Boolean)
		if !ok {
			return nil, apperrors.Newf(apperrors.CodePropertyTypeMismatch, "property %q: expected bool column", ref.Key)
		}
		return b.Value(row), nil
	case collection.String:
		s, ok := col.(*array.String)
		if !ok {
			return nil, apperrors.Newf(apperrors.CodePropertyTypeMismatch, "property %q: expected string column", ref.Key)
		}
		return s.Value(row), nil
	case collection.Int64Array:
		out, err := readInt64Array(col, row)
		if err != nil {
			return nil, apperrors.Newf(apperrors.CodePropertyTypeMismatch, "property %q: %s", ref.Key, err)
		}
		return out, nil
	case collection.Float64Array:
		out, err := readFloat64Array(col, row)
		if err != nil {
			return nil, apperrors.Newf(apperrors.CodePropertyTypeMismatch, "property %q: %s", ref.Key, err)
		}
		return out, nil
	default:
		return nil, apperrors.Newf(apperrors.CodeUnsupportedPropertyType, "property %q: unsupported value type %s", ref.Key, ref.ValueType)
	}
}

func readUint64AsInt64(col arrow.Array, row int) (int64, error) {
	switch a := col.(type) {
	case *array.Int8:
		return int64(a.Value(row)), nil
	case *array.Int16:
		return int64(a.Value(row)), nil
	case *array.Int32:
		return int64(a.Value(row)), nil
	case *array.Int64:
		return a.Value(row), nil
	case *array.Uint8:
		return int64(a.Value(row)), nil
	case *array.Uint16:
		return int64(a.Value(row)), nil
	case *array.Uint32:
		return int64(a.Value(row)), nil
	case *array.Uint64:
		return int64(a.Value(row)), nil
	default:
		return 0, apperrors.New(apperrors.CodePropertyTypeMismatch, "expected an integer column for an Int64 property")
	}
}

func readFloat64(col arrow.Array, row int) (float64, error) {
	switch a := col.(type) {
	case *array.Float32:
		return float64(a.Value(row)), nil
	case *array.Float64:
		return a.Value(row), nil
	default:
		return 0, apperrors.New(apperrors.CodePropertyTypeMismatch, "expected a floating column for a Float64 property")
	}
}

// listRange returns row's element range and backing values array for a
// List or LargeList column, supporting both 32-bit and 64-bit offsets.
func listRange(col arrow.Array, row int) (start, end int64, values arrow.Array, err error) {
	switch a := col.(type) {
	case *array.List:
		start, end = a.ValueOffsets(row)
		return start, end, a.ListValues(), nil
	case *array.LargeList:
		start, end = a.ValueOffsets(row)
		return start, end, a.ListValues(), nil
	default:
		return 0, 0, nil, apperrors.New(apperrors.CodePropertyTypeMismatch, "expected a list column for an array property")
	}
}

// readInt64Array materializes a List<Int64>/LargeList<Int64> cell as an
// owned []int64, per §4.8's array-property materialization requirement.
// A null cell was already intercepted by readProperty; an empty list
// yields an empty (non-nil) slice.
func readInt64Array(col arrow.Array, row int) ([]int64, error) {
	start, end, values, err := listRange(col, row)
	if err != nil {
		return nil, err
	}
	elems, ok := values.(*array.Int64)
	if !ok {
		return nil, apperrors.New(apperrors.CodePropertyTypeMismatch, "expected an Int64 list element column")
	}
	out := make([]int64, 0, int(end-start))
	for i := start; i < end; i++ {
		out = append(out, elems.Value(int(i)))
	}
	return out, nil
}

// readFloat64Array is readInt64Array's Float64 counterpart.
func readFloat64Array(col arrow.Array, row int) ([]float64, error) {
	start, end, values, err := listRange(col, row)
	if err != nil {
		return nil, err
	}
	elems, ok := values.(*array.Float64)
	if !ok {
		return nil, apperrors.New(apperrors.CodePropertyTypeMismatch, "expected a Float64 list element column")
	}
	out := make([]float64, 0, int(end-start))
	for i := start; i < end; i++ {
		out = append(out, elems.Value(int(i)))
	}
	return out, nil
}
