package importer

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/graphscale/graphscale/pkg/collection"
	"github.com/graphscale/graphscale/pkg/property"
)

// makeInt64ListColumn builds a List<Int64> column with one row per entry
// of rows; a nil inner slice produces a null row.
func makeInt64ListColumn(rows [][]int64) arrow.Array {
	pool := memory.NewGoAllocator()
	b := array.NewListBuilder(pool, arrow.PrimitiveTypes.Int64)
	defer b.Release()
	values := b.ValueBuilder().(*array.Int64Builder)

	for _, row := range rows {
		if row == nil {
			b.AppendNull()
			continue
		}
		b.Append(true)
		values.AppendValues(row, nil)
	}
	return b.NewListArray()
}

func TestArrowValueTypeClassifiesInt64ListAsInt64Array(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "tags", Type: arrow.ListOf(arrow.PrimitiveTypes.Int64)},
	}, nil)
	if vt := arrowValueType(schema.Field(0).Type); vt != collection.Int64Array {
		t.Fatalf("arrowValueType(List<Int64>) = %s, want Int64Array", vt)
	}
}

func TestReadPropertyMaterializesInt64Array(t *testing.T) {
	col := makeInt64ListColumn([][]int64{{1, 2, 3}, {}, nil})
	defer col.Release()
	ref := PropertyColumnRef{Key: "scores", ColumnIndex: 0, ValueType: collection.Int64Array}

	got, err := readProperty(col, 0, ref)
	if err != nil {
		t.Fatalf("readProperty(row 0) error = %v", err)
	}
	if list, ok := got.([]int64); !ok || len(list) != 3 || list[0] != 1 || list[2] != 3 {
		t.Fatalf("readProperty(row 0) = %#v, want [1 2 3]", got)
	}

	got, err = readProperty(col, 1, ref)
	if err != nil {
		t.Fatalf("readProperty(row 1) error = %v", err)
	}
	if list, ok := got.([]int64); !ok || len(list) != 0 {
		t.Fatalf("readProperty(row 1) = %#v, want empty, non-nil slice", got)
	}

	got, err = readProperty(col, 2, ref)
	if err != nil {
		t.Fatalf("readProperty(row 2) error = %v", err)
	}
	if got != nil {
		t.Fatalf("readProperty(row 2) = %#v, want nil for a null cell", got)
	}
}

// TestNodeAccumulatorBuildsInt64ArrayProperty exercises the full
// accumulate -> densify path for an array-typed property end to end,
// including the empty-list default substituted for an entity that never
// received a row.
func TestNodeAccumulatorBuildsInt64ArrayProperty(t *testing.T) {
	acc := NewNodeAccumulator(2, []property.Descriptor{
		{Key: "scores", ValueType: collection.Int64Array},
	})
	acc.AddNodeWithProperties(10, nil, map[string]interface{}{"scores": []int64{1, 2, 3}})
	acc.AddNode(20, nil) // no scores supplied -> empty-list default

	ids := acc.BuildIdMap(true)
	store, err := acc.BuildProperties(ids)
	if err != nil {
		t.Fatalf("BuildProperties() error = %v", err)
	}

	_, values, ok := store.Get("scores")
	if !ok {
		t.Fatal("expected scores property in store")
	}
	typed := values.(property.TypedValues[[]int64])

	mapped10, _ := ids.ToMapped(10)
	if got := typed.Get(mapped10); len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Fatalf("scores for node 10 = %v, want [1 2 3]", got)
	}

	mapped20, _ := ids.ToMapped(20)
	got := typed.Get(mapped20)
	if got == nil || len(got) != 0 {
		t.Fatalf("scores for node with no supplied value = %v, want empty non-nil slice", got)
	}
}
