package importer

import (
	"context"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/graphscale/graphscale/pkg/property"

	"github.com/graphscale/graphscale/internal/graphstore"
)

// Config holds the tuning knobs for one import run: how many concurrent
// tasks scan each table, the batch size each cursor reserves, and the
// two build-time policy flags named in §9's Open Question decisions.
type Config struct {
	Concurrency       int
	BatchSize         int
	Deterministic     bool
	SkipDanglingEdges bool
	GraphName         string
	DatabaseName      string
}

// Import runs the two-pass pipeline of §4.8: nodes are fully scanned and
// the id map sealed before relationships are scanned (relationship
// import needs the id map to remap original endpoints to mapped ids).
// Each pass is internally parallel across Concurrency tasks.
func Import(
	ctx context.Context,
	nodeChunks []arrow.Record,
	edgeChunks []arrow.Record,
	nodeRef *NodeTableReference,
	edgeRef *EdgeTableReference,
	cfg Config,
) (*graphstore.GraphStore, AggregatedImportResult, error) {
	nodeAcc := NewNodeAccumulator(0, descriptorsFromRefs(nodeRef.Properties))
	nodeScanner := NewScanner(nodeChunks, cfg.BatchSize)
	nodeResult, err := runNodeScan(ctx, nodeScanner, nodeRef, nodeAcc, cfg.Concurrency)
	if err != nil {
		return nil, nodeResult, err
	}

	ids := nodeAcc.BuildIdMap(cfg.Deterministic)
	nodeProperties, err := nodeAcc.BuildProperties(ids)
	if err != nil {
		return nil, nodeResult, err
	}

	relAcc := NewRelationshipAccumulator(0, descriptorsFromRefs(edgeRef.Properties), cfg.SkipDanglingEdges)
	edgeScanner := NewScanner(edgeChunks, cfg.BatchSize)
	edgeResult, err := runEdgeScan(ctx, edgeScanner, edgeRef, relAcc, cfg.Concurrency)
	if err != nil {
		return nil, edgeResult, err
	}

	topologies, typeOrder, err := relAcc.BuildTopology(ids)
	if err != nil {
		return nil, edgeResult, err
	}
	relProperties, err := relAcc.BuildProperties(typeOrder)
	if err != nil {
		return nil, edgeResult, err
	}

	graphProperties, _ := property.NewBuilder(property.ScopeGraph).Build(1)

	store, err := graphstore.New(
		cfg.GraphName,
		graphstore.DatabaseInfo{Name: cfg.DatabaseName},
		ids,
		topologies,
		graphProperties,
		nodeProperties,
		relProperties,
	)
	if err != nil {
		return nil, edgeResult, err
	}

	total := AggregatedImportResult{
		TotalRecords:    nodeResult.TotalRecords + edgeResult.TotalRecords,
		TotalProperties: nodeResult.TotalProperties + edgeResult.TotalProperties,
		Duration:        nodeResult.Duration + edgeResult.Duration,
		PerTask:         append(append([]ImportResult{}, nodeResult.PerTask...), edgeResult.PerTask...),
	}
	if total.Duration > 0 {
		total.RecordsPerSec = float64(total.TotalRecords) / total.Duration.Seconds()
	}
	return store, total, nil
}

func descriptorsFromRefs(refs []PropertyColumnRef) []property.Descriptor {
	out := make([]property.Descriptor, len(refs))
	for i, r := range refs {
		out[i] = property.Descriptor{Key: r.Key, ValueType: r.ValueType, DefaultValue: r.DefaultValue}
	}
	return out
}

func runNodeScan(ctx context.Context, scanner *Scanner, ref *NodeTableReference, acc *NodeAccumulator, concurrency int) (AggregatedImportResult, error) {
	runner := NewTaskRunner(concurrency)
	tasks := make([]*ImportTask, concurrency)
	for i := 0; i < concurrency; i++ {
		cursor := scanner.NewCursor()
		tasks[i] = NewImportTask(cursor, nil, func(ctx context.Context, batch BatchRef) (int64, int64, error) {
			return processNodeBatch(batch, ref, acc)
		})
	}
	return runner.Run(ctx, tasks)
}

func runEdgeScan(ctx context.Context, scanner *Scanner, ref *EdgeTableReference, acc *RelationshipAccumulator, concurrency int) (AggregatedImportResult, error) {
	runner := NewTaskRunner(concurrency)
	tasks := make([]*ImportTask, concurrency)
	for i := 0; i < concurrency; i++ {
		cursor := scanner.NewCursor()
		tasks[i] = NewImportTask(cursor, nil, func(ctx context.Context, batch BatchRef) (int64, int64, error) {
			return processEdgeBatch(batch, ref, acc)
		})
	}
	return runner.Run(ctx, tasks)
}

func processNodeBatch(batch BatchRef, ref *NodeTableReference, acc *NodeAccumulator) (int64, int64, error) {
	idCol := batch.Column(ref.IDColumn)

	var propertiesImported int64
	for row := batch.Start(); row < batch.Start()+batch.Len(); row++ {
		originalID, err := readUint64(idCol, row)
		if err != nil {
			return 0, 0, err
		}

		var labels []string
		if ref.LabelColumn >= 0 {
			labels = readLabels(batch.Column(ref.LabelColumn), row)
		}

		values := make(map[string]interface{}, len(ref.Properties))
		for _, p := range ref.Properties {
			v, err := readProperty(batch.Column(p.ColumnIndex), row, p)
			if err != nil {
				return 0, 0, err
			}
			if v != nil {
				values[p.Key] = v
				propertiesImported++
			}
		}
		acc.AddNodeWithProperties(originalID, labels, values)
	}
	return int64(batch.Len()), propertiesImported, nil
}

func processEdgeBatch(batch BatchRef, ref *EdgeTableReference, acc *RelationshipAccumulator) (int64, int64, error) {
	sourceCol := batch.Column(ref.SourceColumn)
	targetCol := batch.Column(ref.TargetColumn)

	var propertiesImported int64
	for row := batch.Start(); row < batch.Start()+batch.Len(); row++ {
		source, err := readUint64(sourceCol, row)
		if err != nil {
			return 0, 0, err
		}
		target, err := readUint64(targetCol, row)
		if err != nil {
			return 0, 0, err
		}

		relType := ref.DefaultType
		if ref.TypeColumn >= 0 {
			if labels := readLabels(batch.Column(ref.TypeColumn), row); len(labels) > 0 {
				relType = labels[0]
			}
		}

		values := make(map[string]interface{}, len(ref.Properties))
		for _, p := range ref.Properties {
			v, err := readProperty(batch.Column(p.ColumnIndex), row, p)
			if err != nil {
				return 0, 0, err
			}
			if v != nil {
				values[p.Key] = v
				propertiesImported++
			}
		}
		acc.AddRelationship(source, target, relType, values)
	}
	return int64(batch.Len()), propertiesImported, nil
}
