package importer

import (
	"fmt"
	"sync"

	"github.com/graphscale/graphscale/pkg/collection"
	apperrors "github.com/graphscale/graphscale/pkg/errors"
	"github.com/graphscale/graphscale/pkg/property"

	"github.com/graphscale/graphscale/internal/idmap"
	"github.com/graphscale/graphscale/internal/topology"
)

// PropertyAccumulator is a sparse, entity-id-keyed map from entity id to
// a property value, populated during the parallel scan and densified
// into a property-values container at seal time, per §4.8.
type PropertyAccumulator struct {
	vt           collection.ValueType
	defaultValue interface{}

	mu     sync.Mutex
	values map[uint64]interface{}
}

func NewPropertyAccumulator(vt collection.ValueType, defaultValue interface{}) *PropertyAccumulator {
	return &PropertyAccumulator{vt: vt, defaultValue: defaultValue, values: make(map[uint64]interface{})}
}

func (p *PropertyAccumulator) Add(entityID uint64, v interface{}) {
	p.mu.Lock()
	p.values[entityID] = v
	p.mu.Unlock()
}

// Build densifies the sparse map over order (order[i] is the entity id
// that belongs at position i), substituting the default value for any
// entity that never received a row.
func (p *PropertyAccumulator) Build(order []uint64) property.Values {
	switch p.vt {
	case collection.Int8:
		return buildDense[int8](p, order)
	case collection.Int16:
		return buildDense[int16](p, order)
	case collection.Int32:
		return buildDense[int32](p, order)
	case collection.Int64:
		return buildDense[int64](p, order)
	case collection.Float32:
		return buildDense[float32](p, order)
	case collection.Float64:
		return buildDense[float64](p, order)
	case collection.Bool:
		return buildDense[bool](p, order)
	case collection.String:
		return buildDense[string](p, order)
	case collection.Int64Array:
		if p.defaultValue == nil {
			p.defaultValue = []int64{}
		}
		return buildDense[[]int64](p, order)
	case collection.Float64Array:
		if p.defaultValue == nil {
			p.defaultValue = []float64{}
		}
		return buildDense[[]float64](p, order)
	default:
		panic(fmt.Sprintf("property accumulator: unreachable value type %s (schema validation should have rejected it)", p.vt))
	}
}

// buildDense allocates a column of len(order) and fills every position,
// defaulting entities that never received a row (including a null cell,
// which the scan never adds to the sparse map).
func buildDense[T any](p *PropertyAccumulator, order []uint64) property.Values {
	def, _ := p.defaultValue.(T)
	col := collection.NewSingle[T](len(order), p.vt, def)
	for i, id := range order {
		raw, ok := p.values[id]
		if !ok {
			col.Set(i, def)
			continue
		}
		if v, ok := raw.(T); ok {
			col.Set(i, v)
		} else {
			col.Set(i, def)
		}
	}
	return property.NewValues[T](col)
}

// NodeAccumulator holds accumulated (original_id, labels) pairs and one
// PropertyAccumulator per configured node property, grounded on the
// teacher's IndexedObjectStore.AddObject but generalized from a single
// shallow-size slice to an arbitrary property set.
type NodeAccumulator struct {
	idBuilder   *idmap.Builder
	descriptors map[string]property.Descriptor
	properties  map[string]*PropertyAccumulator
}

func NewNodeAccumulator(estimatedNodes int, descriptors []property.Descriptor) *NodeAccumulator {
	n := &NodeAccumulator{
		idBuilder:   idmap.NewBuilder(estimatedNodes),
		descriptors: make(map[string]property.Descriptor, len(descriptors)),
		properties:  make(map[string]*PropertyAccumulator, len(descriptors)),
	}
	for _, d := range descriptors {
		n.descriptors[d.Key] = d
		n.properties[d.Key] = NewPropertyAccumulator(d.ValueType, d.DefaultValue)
	}
	return n
}

func (n *NodeAccumulator) AddNode(originalID uint64, labels []string) {
	n.idBuilder.Add(originalID, labels)
}

func (n *NodeAccumulator) AddNodeWithProperties(originalID uint64, labels []string, values map[string]interface{}) {
	n.idBuilder.Add(originalID, labels)
	for key, v := range values {
		if acc, ok := n.properties[key]; ok {
			acc.Add(originalID, v)
		}
	}
}

func (n *NodeAccumulator) BuildIdMap(deterministic bool) *idmap.IdMap {
	return n.idBuilder.Build(deterministic)
}

// BuildProperties walks 0..node_count, translating each mapped id back to
// its original id to look up the sparse accumulator maps, per §4.8.
func (n *NodeAccumulator) BuildProperties(ids *idmap.IdMap) (*property.Store, error) {
	order := make([]uint64, ids.NodeCount())
	for mapped := range order {
		order[mapped] = ids.ToOriginal(mapped)
	}

	b := property.NewBuilder(property.ScopeNode)
	for key, acc := range n.properties {
		b.Put(key, n.descriptors[key], acc.Build(order))
	}
	return b.Build(ids.NodeCount())
}

type edgeRecord struct {
	originalSource uint64
	originalTarget uint64
	relType        string
	index          int
}

// RelationshipAccumulator holds accumulated (original_source,
// original_target, type) triples and one PropertyAccumulator per
// configured relationship property, shared across every relationship
// type (matching EdgeTableReference's single property-column list).
type RelationshipAccumulator struct {
	skipDangling bool
	descriptors  map[string]property.Descriptor
	properties   map[string]*PropertyAccumulator

	mu    sync.Mutex
	edges []edgeRecord
}

func NewRelationshipAccumulator(estimatedEdges int, descriptors []property.Descriptor, skipDangling bool) *RelationshipAccumulator {
	r := &RelationshipAccumulator{
		skipDangling: skipDangling,
		descriptors:  make(map[string]property.Descriptor, len(descriptors)),
		properties:   make(map[string]*PropertyAccumulator, len(descriptors)),
		edges:        make([]edgeRecord, 0, estimatedEdges),
	}
	for _, d := range descriptors {
		r.descriptors[d.Key] = d
		r.properties[d.Key] = NewPropertyAccumulator(d.ValueType, d.DefaultValue)
	}
	return r
}

func (r *RelationshipAccumulator) AddRelationship(originalSource, originalTarget uint64, relType string, values map[string]interface{}) {
	r.mu.Lock()
	idx := len(r.edges)
	r.edges = append(r.edges, edgeRecord{originalSource: originalSource, originalTarget: originalTarget, relType: relType, index: idx})
	r.mu.Unlock()

	for key, v := range values {
		if acc, ok := r.properties[key]; ok {
			acc.Add(uint64(idx), v)
		}
	}
}

// BuildTopology remaps original ids to mapped ids and groups edges by
// type. It returns both the per-type topologies and the per-type
// ordered list of global edge indices (needed by BuildProperties to
// densify property accumulators in the same row order the topology was
// built in).
func (r *RelationshipAccumulator) BuildTopology(ids *idmap.IdMap) (map[string]*topology.Topology, map[string][]int, error) {
	r.mu.Lock()
	edges := make([]edgeRecord, len(r.edges))
	copy(edges, r.edges)
	r.mu.Unlock()

	builders := make(map[string]*topology.Builder)
	typeOrder := make(map[string][]int)

	for _, e := range edges {
		src, ok := ids.ToMapped(e.originalSource)
		if !ok {
			if r.skipDangling {
				continue
			}
			return nil, nil, apperrors.Newf(apperrors.CodeInvalidNodeID, "relationship accumulation: source %d not in id map", e.originalSource)
		}
		tgt, ok := ids.ToMapped(e.originalTarget)
		if !ok {
			if r.skipDangling {
				continue
			}
			return nil, nil, apperrors.Newf(apperrors.CodeInvalidNodeID, "relationship accumulation: target %d not in id map", e.originalTarget)
		}

		b, ok := builders[e.relType]
		if !ok {
			b = topology.NewBuilder(ids.NodeCount(), false)
			builders[e.relType] = b
		}
		if err := b.AddEdge(int32(src), int32(tgt)); err != nil {
			return nil, nil, err
		}
		typeOrder[e.relType] = append(typeOrder[e.relType], e.index)
	}

	topologies := make(map[string]*topology.Topology, len(builders))
	for relType, b := range builders {
		topologies[relType] = b.Build()
	}
	return topologies, typeOrder, nil
}

func (r *RelationshipAccumulator) BuildProperties(typeOrder map[string][]int) (map[string]*property.Store, error) {
	stores := make(map[string]*property.Store, len(typeOrder))
	for relType, indices := range typeOrder {
		order := make([]uint64, len(indices))
		for i, idx := range indices {
			order[i] = uint64(idx)
		}

		b := property.NewBuilder(property.ScopeRelationship)
		for key, acc := range r.properties {
			b.Put(key, r.descriptors[key], acc.Build(order))
		}
		store, err := b.Build(len(indices))
		if err != nil {
			return nil, err
		}
		stores[relType] = store
	}
	return stores, nil
}
