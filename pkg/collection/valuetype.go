package collection

// ValueType enumerates the primitive and array types the storage substrate
// recognizes. The set is closed: property descriptors, accumulators, and
// Arrow table references all validate against exactly these values.
type ValueType int

const (
	Unknown ValueType = iota
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Bool
	Char
	String
	Int8Array
	Int16Array
	Int32Array
	Int64Array
	Float32Array
	Float64Array
)

// String renders the value type for error messages and logs.
func (v ValueType) String() string {
	switch v {
	case Int8:
		return "Int8"
	case Int16:
		return "Int16"
	case Int32:
		return "Int32"
	case Int64:
		return "Int64"
	case Float32:
		return "Float32"
	case Float64:
		return "Float64"
	case Bool:
		return "Bool"
	case Char:
		return "Char"
	case String:
		return "String"
	case Int8Array:
		return "Int8Array"
	case Int16Array:
		return "Int16Array"
	case Int32Array:
		return "Int32Array"
	case Int64Array:
		return "Int64Array"
	case Float32Array:
		return "Float32Array"
	case Float64Array:
		return "Float64Array"
	default:
		return "Unknown"
	}
}

// IsNumeric reports whether the type supports numeric aggregation (sum,
// mean, and the rest of the Stats family). Booleans, chars, strings and
// array types are excluded: the aggregation is semantically undefined for
// them, so callers of Stats get an explicit "not ok" rather than garbage.
func (v ValueType) IsNumeric() bool {
	switch v {
	case Int8, Int16, Int32, Int64, Float32, Float64:
		return true
	default:
		return false
	}
}

// Widens reports whether a value of type "from" can be widened to "to"
// without loss, per the import pipeline's widening-only conversion policy
// (narrower integer -> wider integer, f32 -> f64). Equal types always widen.
func Widens(from, to ValueType) bool {
	if from == to {
		return true
	}
	switch from {
	case Int8:
		return to == Int16 || to == Int32 || to == Int64
	case Int16:
		return to == Int32 || to == Int64
	case Int32:
		return to == Int64
	case Float32:
		return to == Float64
	default:
		return false
	}
}
