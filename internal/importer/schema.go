// Package importer implements §4.8's Arrow-fronted graph-store
// construction pipeline: table references, batch references, a scanner
// with atomic batch reservation, optional filtering consumers, per-type
// accumulators, and a work-stealing task runner, grounded on the
// teacher's internal/scheduler task-dispatch machinery and
// pkg/parallel.WorkerPool.
package importer

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/graphscale/graphscale/pkg/collection"
	apperrors "github.com/graphscale/graphscale/pkg/errors"
)

// PropertyColumnRef is one property's column binding within a table.
type PropertyColumnRef struct {
	Key          string
	ColumnIndex  int
	ValueType    collection.ValueType
	DefaultValue interface{}
}

// NodeTableReference binds a node table's schema: which column is the id,
// which (if any) carries labels, and which columns are properties.
// Constructed validated: construction fails fast on unknown columns,
// type mismatches, or a missing/mistyped id column, matching §4.8's
// "Schema is validated at reference construction" requirement.
type NodeTableReference struct {
	Schema      *arrow.Schema
	IDColumn    int
	LabelColumn int // -1 if absent
	Properties  []PropertyColumnRef
}

func NewNodeTableReference(schema *arrow.Schema, idColumn, labelColumn int, properties []PropertyColumnRef) (*NodeTableReference, error) {
	if idColumn < 0 || idColumn >= len(schema.Fields()) {
		return nil, apperrors.New(apperrors.CodeSchemaValidation, "node table reference: id column index out of range")
	}
	if !isIntegerArrowType(schema.Field(idColumn).Type) {
		return nil, apperrors.New(apperrors.CodeSchemaValidation, "node table reference: id column must be integer-typed")
	}
	if labelColumn >= len(schema.Fields()) {
		return nil, apperrors.New(apperrors.CodeSchemaValidation, "node table reference: label column index out of range")
	}
	if err := validatePropertyColumns(schema, properties); err != nil {
		return nil, err
	}
	return &NodeTableReference{Schema: schema, IDColumn: idColumn, LabelColumn: labelColumn, Properties: properties}, nil
}

// EdgeTableReference binds an edge table's schema: source, target,
// optional relationship-type column, and property columns.
type EdgeTableReference struct {
	Schema       *arrow.Schema
	SourceColumn int
	TargetColumn int
	TypeColumn   int // -1 if absent; all rows share DefaultType
	DefaultType  string
	Properties   []PropertyColumnRef
}

func NewEdgeTableReference(schema *arrow.Schema, sourceColumn, targetColumn, typeColumn int, defaultType string, properties []PropertyColumnRef) (*EdgeTableReference, error) {
	for _, col := range []int{sourceColumn, targetColumn} {
		if col < 0 || col >= len(schema.Fields()) {
			return nil, apperrors.New(apperrors.CodeSchemaValidation, "edge table reference: source/target column index out of range")
		}
		if !isIntegerArrowType(schema.Field(col).Type) {
			return nil, apperrors.New(apperrors.CodeSchemaValidation, "edge table reference: source/target column must be integer-typed")
		}
	}
	if typeColumn >= len(schema.Fields()) {
		return nil, apperrors.New(apperrors.CodeSchemaValidation, "edge table reference: type column index out of range")
	}
	if err := validatePropertyColumns(schema, properties); err != nil {
		return nil, err
	}
	return &EdgeTableReference{
		Schema: schema, SourceColumn: sourceColumn, TargetColumn: targetColumn,
		TypeColumn: typeColumn, DefaultType: defaultType, Properties: properties,
	}, nil
}

func validatePropertyColumns(schema *arrow.Schema, properties []PropertyColumnRef) error {
	for _, p := range properties {
		if p.ColumnIndex < 0 || p.ColumnIndex >= len(schema.Fields()) {
			return apperrors.Newf(apperrors.CodeSchemaValidation, "property %q: column index %d out of range", p.Key, p.ColumnIndex)
		}
		columnType := arrowValueType(schema.Field(p.ColumnIndex).Type)
		if columnType == collection.Unknown {
			return apperrors.Newf(apperrors.CodeUnsupportedPropertyType, "property %q: unsupported Arrow column type", p.Key)
		}
		if columnType != p.ValueType && !collection.Widens(columnType, p.ValueType) {
			return apperrors.Newf(apperrors.CodePropertyTypeMismatch,
				"property %q: column type %s does not widen to declared type %s", p.Key, columnType, p.ValueType)
		}
	}
	return nil
}

func isIntegerArrowType(t arrow.DataType) bool {
	switch t.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64, arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return true
	default:
		return false
	}
}

// arrowValueType maps an Arrow column type to the storage substrate's
// ValueType, returning Unknown for anything the pipeline does not
// support (lists other than Int64 and Float64 lists, structs, etc).
func arrowValueType(t arrow.DataType) collection.ValueType {
	switch t.ID() {
	case arrow.INT8:
		return collection.Int8
	case arrow.INT16:
		return collection.Int16
	case arrow.INT32:
		return collection.Int32
	case arrow.INT64, arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return collection.Int64
	case arrow.FLOAT32:
		return collection.Float32
	case arrow.FLOAT64:
		return collection.Float64
	case arrow.BOOL:
		return collection.Bool
	case arrow.STRING, arrow.LARGE_STRING:
		return collection.String
	case arrow.LIST, arrow.LARGE_LIST:
		var elem arrow.DataType
		switch lt := t.(type) {
		case *arrow.ListType:
			elem = lt.Elem()
		case *arrow.LargeListType:
			elem = lt.Elem()
		default:
			return collection.Unknown
		}
		switch elem.ID() {
		case arrow.INT64:
			return collection.Int64Array
		case arrow.FLOAT64:
			return collection.Float64Array
		default:
			return collection.Unknown
		}
	default:
		return collection.Unknown
	}
}
