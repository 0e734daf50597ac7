package pregel

import (
	"github.com/graphscale/graphscale/pkg/collection"
	"github.com/graphscale/graphscale/pkg/hugearray"
)

// Schema is the per-superstep node-property schema a Pregel program
// declares (e.g. {"rank": f64, "iter": i64}), per §4.9. The engine
// restricts node-value properties to float64 and int64, the two types
// the specification's own worked example (PageRank-style rank plus an
// iteration counter) actually needs; a wider property type system would
// duplicate pkg/property for no user of this engine.
type Schema struct {
	Float64Keys []string
	Int64Keys   []string
}

// NodeValue is schema-driven per-node storage indexed by mapped id: one
// huge array per declared property, per §4.9.
type NodeValue struct {
	nodeCount    int
	float64Props map[string]*hugearray.Array[float64]
	int64Props   map[string]*hugearray.Array[int64]
}

func NewNodeValue(nodeCount int, schema Schema) *NodeValue {
	nv := &NodeValue{
		nodeCount:    nodeCount,
		float64Props: make(map[string]*hugearray.Array[float64], len(schema.Float64Keys)),
		int64Props:   make(map[string]*hugearray.Array[int64], len(schema.Int64Keys)),
	}
	for _, key := range schema.Float64Keys {
		nv.float64Props[key] = hugearray.New[float64](nodeCount, collection.Float64, 0)
	}
	for _, key := range schema.Int64Keys {
		nv.int64Props[key] = hugearray.New[int64](nodeCount, collection.Int64, 0)
	}
	return nv
}

func (nv *NodeValue) NodeCount() int { return nv.nodeCount }

func (nv *NodeValue) GetFloat64(key string, node int) float64 {
	return nv.float64Props[key].Get(node)
}

func (nv *NodeValue) SetFloat64(key string, node int, v float64) {
	nv.float64Props[key].Set(node, v)
}

func (nv *NodeValue) GetInt64(key string, node int) int64 {
	return nv.int64Props[key].Get(node)
}

func (nv *NodeValue) SetInt64(key string, node int, v int64) {
	nv.int64Props[key].Set(node, v)
}
