package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/spf13/cobra"

	"github.com/graphscale/graphscale/internal/graphstore"
	"github.com/graphscale/graphscale/internal/importer"
	"github.com/graphscale/graphscale/pkg/collection"
)

// graphSourceFlags is the set of Arrow table flags every command that
// needs a graph store (import, pregel run, pipeline run) registers.
type graphSourceFlags struct {
	NodesPath      string
	EdgesPath      string
	IDColumn       string
	LabelColumn    string
	SourceColumn   string
	TargetColumn   string
	TypeColumn     string
	DefaultType    string
	NodeProperties string
	EdgeProperties string
	GraphName      string
	DatabaseName   string
	Concurrency    int
	BatchSize      int
	Deterministic  bool
	SkipDangling   bool
}

func (f *graphSourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.NodesPath, "nodes", "", "Path to the node table's Arrow IPC file (required)")
	cmd.Flags().StringVar(&f.EdgesPath, "edges", "", "Path to the edge table's Arrow IPC file (required)")
	cmd.Flags().StringVar(&f.IDColumn, "id-column", "id", "Node table column carrying each node's original id")
	cmd.Flags().StringVar(&f.LabelColumn, "label-column", "", "Node table column carrying each node's label (optional)")
	cmd.Flags().StringVar(&f.SourceColumn, "source-column", "source", "Edge table column carrying each relationship's source id")
	cmd.Flags().StringVar(&f.TargetColumn, "target-column", "target", "Edge table column carrying each relationship's target id")
	cmd.Flags().StringVar(&f.TypeColumn, "type-column", "", "Edge table column carrying each relationship's type (optional)")
	cmd.Flags().StringVar(&f.DefaultType, "default-type", "RELATED", "Relationship type assigned when --type-column is absent")
	cmd.Flags().StringVar(&f.NodeProperties, "node-properties", "", "Comma-separated name:type node property columns")
	cmd.Flags().StringVar(&f.EdgeProperties, "edge-properties", "", "Comma-separated name:type edge property columns")
	cmd.Flags().StringVar(&f.GraphName, "graph-name", "graph", "Name recorded for the imported graph")
	cmd.Flags().StringVar(&f.DatabaseName, "database-name", "graphscale", "Database name recorded for the imported graph")
	cmd.Flags().IntVar(&f.Concurrency, "concurrency", 4, "Number of concurrent import tasks per pass")
	cmd.Flags().IntVar(&f.BatchSize, "batch-size", 10_000, "Row batch size each import task reserves")
	cmd.Flags().BoolVar(&f.Deterministic, "deterministic", false, "Assign mapped node ids in ascending original-id order instead of first-seen order")
	cmd.Flags().BoolVar(&f.SkipDangling, "skip-dangling-edges", true, "Drop relationships whose endpoint id was never seen as a node")
	cmd.MarkFlagRequired("nodes")
	cmd.MarkFlagRequired("edges")
}

// buildGraph reads both Arrow IPC files named by f and runs the §4.8
// import pipeline, returning the resulting graph store and its
// aggregated result for the caller to report.
func buildGraph(ctx context.Context, f *graphSourceFlags) (*graphstore.GraphStore, importer.AggregatedImportResult, error) {
	nodeSchema, nodeChunks, err := readArrowIPCFile(f.NodesPath)
	if err != nil {
		return nil, importer.AggregatedImportResult{}, err
	}
	edgeSchema, edgeChunks, err := readArrowIPCFile(f.EdgesPath)
	if err != nil {
		return nil, importer.AggregatedImportResult{}, err
	}

	nodeProps, err := parsePropertyColumns(nodeSchema, f.NodeProperties)
	if err != nil {
		return nil, importer.AggregatedImportResult{}, fmt.Errorf("node properties: %w", err)
	}
	edgeProps, err := parsePropertyColumns(edgeSchema, f.EdgeProperties)
	if err != nil {
		return nil, importer.AggregatedImportResult{}, fmt.Errorf("edge properties: %w", err)
	}

	idCol := columnIndex(nodeSchema, f.IDColumn)
	if idCol < 0 {
		return nil, importer.AggregatedImportResult{}, fmt.Errorf("node id column %q not found", f.IDColumn)
	}
	nodeRef, err := importer.NewNodeTableReference(nodeSchema, idCol, columnIndex(nodeSchema, f.LabelColumn), nodeProps)
	if err != nil {
		return nil, importer.AggregatedImportResult{}, err
	}

	srcCol := columnIndex(edgeSchema, f.SourceColumn)
	dstCol := columnIndex(edgeSchema, f.TargetColumn)
	if srcCol < 0 || dstCol < 0 {
		return nil, importer.AggregatedImportResult{}, fmt.Errorf("edge source/target columns %q/%q not found", f.SourceColumn, f.TargetColumn)
	}
	edgeRef, err := importer.NewEdgeTableReference(edgeSchema, srcCol, dstCol, columnIndex(edgeSchema, f.TypeColumn), f.DefaultType, edgeProps)
	if err != nil {
		return nil, importer.AggregatedImportResult{}, err
	}

	cfg := importer.Config{
		Concurrency:       f.Concurrency,
		BatchSize:         f.BatchSize,
		Deterministic:     f.Deterministic,
		SkipDanglingEdges: f.SkipDangling,
		GraphName:         f.GraphName,
		DatabaseName:      f.DatabaseName,
	}
	return importer.Import(ctx, nodeChunks, edgeChunks, nodeRef, edgeRef, cfg)
}

// readArrowIPCFile loads every record batch from an Arrow IPC file in the
// random-access file format (the streaming format is not accepted) into
// memory, retaining each record
// (Retain/Release semantics per arrow-go) for the lifetime of the import
// run.
func readArrowIPCFile(path string) (*arrow.Schema, []arrow.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	reader, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, nil, fmt.Errorf("open Arrow IPC file %q: %w", path, err)
	}

	records := make([]arrow.Record, 0, reader.NumRecords())
	for i := 0; i < reader.NumRecords(); i++ {
		rec, err := reader.Record(i)
		if err != nil {
			return nil, nil, fmt.Errorf("read record %d from %q: %w", i, path, err)
		}
		rec.Retain()
		records = append(records, rec)
	}
	return reader.Schema(), records, nil
}

// columnIndex finds a field by name, returning -1 if name is empty.
func columnIndex(schema *arrow.Schema, name string) int {
	if name == "" {
		return -1
	}
	for i, f := range schema.Fields() {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// parsePropertyColumns parses "name:type,name:type" flag values (e.g.
// "age:int64,score:float64") into PropertyColumnRefs resolved against
// schema, defaulting DefaultValue to the type's zero value.
func parsePropertyColumns(schema *arrow.Schema, spec string) ([]importer.PropertyColumnRef, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var refs []importer.PropertyColumnRef
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.SplitN(part, ":", 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid property column spec %q: want name:type", part)
		}
		name, typeName := strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])
		idx := columnIndex(schema, name)
		if idx < 0 {
			return nil, fmt.Errorf("property column %q not found in schema", name)
		}
		vt, defaultValue, err := parseValueType(typeName)
		if err != nil {
			return nil, fmt.Errorf("property column %q: %w", name, err)
		}
		refs = append(refs, importer.PropertyColumnRef{
			Key:          name,
			ColumnIndex:  idx,
			ValueType:    vt,
			DefaultValue: defaultValue,
		})
	}
	return refs, nil
}

func parseValueType(name string) (collection.ValueType, interface{}, error) {
	switch strings.ToLower(name) {
	case "int8":
		return collection.Int8, int8(0), nil
	case "int16":
		return collection.Int16, int16(0), nil
	case "int32":
		return collection.Int32, int32(0), nil
	case "int64":
		return collection.Int64, int64(0), nil
	case "float32":
		return collection.Float32, float32(0), nil
	case "float64":
		return collection.Float64, float64(0), nil
	case "bool":
		return collection.Bool, false, nil
	case "string":
		return collection.String, "", nil
	default:
		return collection.Unknown, nil, fmt.Errorf("unsupported property type %q", name)
	}
}
