// Package graphstore implements §4.7's graph store: the read-only
// aggregate of an id map, per-type topologies, and three property
// stores, grounded on the teacher's ReferenceGraph aggregate (one struct
// holding every index a query needs, built once and never mutated
// in-place thereafter).
package graphstore

import (
	"fmt"
	"sort"

	apperrors "github.com/graphscale/graphscale/pkg/errors"
	"github.com/graphscale/graphscale/pkg/property"

	"github.com/graphscale/graphscale/internal/idmap"
	"github.com/graphscale/graphscale/internal/topology"
)

// DatabaseInfo names the source system a graph store was imported from,
// carried through for diagnostics and task records.
type DatabaseInfo struct {
	Name    string
	Version string
}

// Schema summarizes what node labels and relationship types a graph
// store holds, and which properties exist at each scope. Derived at
// construction time from the property stores and topology map; never
// mutated afterward.
type Schema struct {
	NodeLabels               []string
	RelationshipTypes        []string
	NodePropertyKeys         []string
	RelationshipPropertyKeys map[string][]string
}

// Capabilities are read-only flags describing what this graph store
// instance supports, so callers (the Pregel executor, the pipeline
// executor) can fail fast instead of discovering a missing capability
// mid-computation.
type Capabilities struct {
	HasIncomingTopology map[string]bool
}

// GraphStore is the one-shot-constructed, read-only aggregate described
// by §4.7. No method on GraphStore mutates it; write access exists only
// in the import pipeline that builds one.
type GraphStore struct {
	name         string
	databaseInfo DatabaseInfo
	schema       Schema
	capabilities Capabilities

	ids        *idmap.IdMap
	topologies map[string]*topology.Topology

	graphProperties        *property.Store
	nodeProperties         *property.Store
	relationshipProperties map[string]*property.Store
}

// New constructs a GraphStore from fully-built components. It validates
// the cross-component invariants of §4.7: topology endpoints within
// node_count, node-property element counts equal to node_count,
// relationship-property element counts equal to the owning type's
// relationship count.
func New(
	name string,
	dbInfo DatabaseInfo,
	ids *idmap.IdMap,
	topologies map[string]*topology.Topology,
	graphProperties *property.Store,
	nodeProperties *property.Store,
	relationshipProperties map[string]*property.Store,
) (*GraphStore, error) {
	nodeCount := ids.NodeCount()

	for relType, top := range topologies {
		if top.NodeCount() != nodeCount {
			return nil, apperrors.Newf(apperrors.CodeInvariantViolation,
				"topology %q: node count %d does not match id map node count %d", relType, top.NodeCount(), nodeCount)
		}
	}

	for _, key := range nodeProperties.Keys() {
		_, values, _ := nodeProperties.Get(key)
		if values.Len() != nodeCount {
			return nil, apperrors.Newf(apperrors.CodeInvariantViolation,
				"node property %q: element count %d does not match node count %d", key, values.Len(), nodeCount)
		}
	}

	for relType, store := range relationshipProperties {
		top, ok := topologies[relType]
		if !ok {
			return nil, apperrors.Newf(apperrors.CodeInvariantViolation,
				"relationship property store %q: no topology registered for this type", relType)
		}
		for _, key := range store.Keys() {
			_, values, _ := store.Get(key)
			if values.Len() != top.RelationshipCount() {
				return nil, apperrors.Newf(apperrors.CodeInvariantViolation,
					"relationship property %q on type %q: element count %d does not match relationship count %d",
					key, relType, values.Len(), top.RelationshipCount())
			}
		}
	}

	relTypes := make([]string, 0, len(topologies))
	relPropKeys := make(map[string][]string, len(relationshipProperties))
	hasIncoming := make(map[string]bool, len(topologies))
	for relType, top := range topologies {
		relTypes = append(relTypes, relType)
		hasIncoming[relType] = top.HasIncoming()
	}
	for relType, store := range relationshipProperties {
		relPropKeys[relType] = store.Keys()
	}

	return &GraphStore{
		name:         name,
		databaseInfo: dbInfo,
		schema: Schema{
			NodeLabels:               distinctLabels(ids),
			RelationshipTypes:        relTypes,
			NodePropertyKeys:         nodeProperties.Keys(),
			RelationshipPropertyKeys: relPropKeys,
		},
		capabilities:           Capabilities{HasIncomingTopology: hasIncoming},
		ids:                    ids,
		topologies:             topologies,
		graphProperties:        graphProperties,
		nodeProperties:         nodeProperties,
		relationshipProperties: relationshipProperties,
	}, nil
}

// distinctLabels unions every node's labels into the sorted, deduplicated
// set Schema.NodeLabels promises.
func distinctLabels(ids *idmap.IdMap) []string {
	seen := make(map[string]struct{})
	for i := 0; i < ids.NodeCount(); i++ {
		for _, label := range ids.Labels(i) {
			seen[label] = struct{}{}
		}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

func (g *GraphStore) Name() string                     { return g.name }
func (g *GraphStore) DatabaseInfo() DatabaseInfo       { return g.databaseInfo }
func (g *GraphStore) Schema() Schema                   { return g.schema }
func (g *GraphStore) Capabilities() Capabilities       { return g.capabilities }
func (g *GraphStore) NodeCount() int                   { return g.ids.NodeCount() }
func (g *GraphStore) IdMap() *idmap.IdMap              { return g.ids }
func (g *GraphStore) GraphProperties() *property.Store { return g.graphProperties }
func (g *GraphStore) NodeProperties() *property.Store  { return g.nodeProperties }

func (g *GraphStore) RelationshipProperties(relType string) (*property.Store, bool) {
	s, ok := g.relationshipProperties[relType]
	return s, ok
}

// Topology returns the topology for relType, or an error if the graph
// store holds no relationships of that type.
func (g *GraphStore) Topology(relType string) (*topology.Topology, error) {
	t, ok := g.topologies[relType]
	if !ok {
		return nil, apperrors.New(apperrors.CodeInvariantViolation, fmt.Sprintf("no relationship type %q in this graph store", relType))
	}
	return t, nil
}

func (g *GraphStore) RelationshipTypes() []string { return g.schema.RelationshipTypes }
