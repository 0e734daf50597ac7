package collection

import (
	"github.com/apache/arrow-go/v18/arrow/array"
)

// ColumnarInt64 wraps an Arrow int64 array as a read-only Collection,
// grounded on arrow-go's array.Int64 accessor shape.
type ColumnarInt64 struct {
	arr    *array.Int64
	defVal int64
}

func NewColumnarInt64(arr *array.Int64, defaultValue int64) *ColumnarInt64 {
	return &ColumnarInt64{arr: arr, defVal: defaultValue}
}

func (c *ColumnarInt64) Get(i int) int64 {
	if i < 0 || i >= c.arr.Len() {
		outOfRange("ColumnarInt64.Get", i, c.arr.Len())
	}
	if c.arr.IsNull(i) {
		return c.defVal
	}
	return c.arr.Value(i)
}

func (c *ColumnarInt64) Set(int, int64) {
	panic("ColumnarInt64: columnar backends are read-only")
}

func (c *ColumnarInt64) Len() int { return c.arr.Len() }

func (c *ColumnarInt64) Backend() Backend { return Columnar }

func (c *ColumnarInt64) ValueType() ValueType { return Int64 }

func (c *ColumnarInt64) DefaultValue() int64 { return c.defVal }

func (c *ColumnarInt64) Writable() bool { return false }

func (c *ColumnarInt64) Cursor() Cursor[int64] {
	n := c.arr.Len()
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = c.Get(i)
	}
	return newSingleCursor(out)
}

// ColumnarFloat64 wraps an Arrow float64 array as a read-only Collection.
type ColumnarFloat64 struct {
	arr    *array.Float64
	defVal float64
}

func NewColumnarFloat64(arr *array.Float64, defaultValue float64) *ColumnarFloat64 {
	return &ColumnarFloat64{arr: arr, defVal: defaultValue}
}

func (c *ColumnarFloat64) Get(i int) float64 {
	if i < 0 || i >= c.arr.Len() {
		outOfRange("ColumnarFloat64.Get", i, c.arr.Len())
	}
	if c.arr.IsNull(i) {
		return c.defVal
	}
	return c.arr.Value(i)
}

func (c *ColumnarFloat64) Set(int, float64) {
	panic("ColumnarFloat64: columnar backends are read-only")
}

func (c *ColumnarFloat64) Len() int { return c.arr.Len() }

func (c *ColumnarFloat64) Backend() Backend { return Columnar }

func (c *ColumnarFloat64) ValueType() ValueType { return Float64 }

func (c *ColumnarFloat64) DefaultValue() float64 { return c.defVal }

func (c *ColumnarFloat64) Writable() bool { return false }

func (c *ColumnarFloat64) Cursor() Cursor[float64] {
	n := c.arr.Len()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = c.Get(i)
	}
	return newSingleCursor(out)
}

// ColumnarString wraps an Arrow string array as a read-only Collection.
type ColumnarString struct {
	arr    *array.String
	defVal string
}

func NewColumnarString(arr *array.String, defaultValue string) *ColumnarString {
	return &ColumnarString{arr: arr, defVal: defaultValue}
}

func (c *ColumnarString) Get(i int) string {
	if i < 0 || i >= c.arr.Len() {
		outOfRange("ColumnarString.Get", i, c.arr.Len())
	}
	if c.arr.IsNull(i) {
		return c.defVal
	}
	return c.arr.Value(i)
}

func (c *ColumnarString) Set(int, string) {
	panic("ColumnarString: columnar backends are read-only")
}

func (c *ColumnarString) Len() int { return c.arr.Len() }

func (c *ColumnarString) Backend() Backend { return Columnar }

func (c *ColumnarString) ValueType() ValueType { return String }

func (c *ColumnarString) DefaultValue() string { return c.defVal }

func (c *ColumnarString) Writable() bool { return false }

func (c *ColumnarString) Cursor() Cursor[string] {
	n := c.arr.Len()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = c.Get(i)
	}
	return newSingleCursor(out)
}
