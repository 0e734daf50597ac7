package cmd

import (
	"context"
	"testing"

	"github.com/graphscale/graphscale/internal/graphstore"
	"github.com/graphscale/graphscale/internal/idmap"
	"github.com/graphscale/graphscale/internal/topology"
	"github.com/graphscale/graphscale/pkg/property"
)

func buildDegreeTestGraph(t *testing.T, withRelationships bool) *graphstore.GraphStore {
	t.Helper()
	b := idmap.NewBuilder(3)
	for i := 0; i < 3; i++ {
		b.Add(uint64(i), nil)
	}
	ids := b.Build(true)

	topologies := map[string]*topology.Topology{}
	if withRelationships {
		topoBuilder := topology.NewBuilder(3, false)
		if err := topoBuilder.AddEdge(0, 1); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
		if err := topoBuilder.AddEdge(0, 2); err != nil {
			t.Fatalf("AddEdge: %v", err)
		}
		topologies["FOLLOWS"] = topoBuilder.Build()
	}

	nodeProps, err := property.NewBuilder(property.ScopeNode).Build(3)
	if err != nil {
		t.Fatalf("node property Build() error = %v", err)
	}
	graphProps, err := property.NewBuilder(property.ScopeGraph).Build(1)
	if err != nil {
		t.Fatalf("graph property Build() error = %v", err)
	}

	graph, err := graphstore.New("test", graphstore.DatabaseInfo{}, ids, topologies, graphProps, nodeProps, nil)
	if err != nil {
		t.Fatalf("graphstore.New: %v", err)
	}
	return graph
}

func TestDegreeProcedureComputesOutDegree(t *testing.T) {
	graph := buildDegreeTestGraph(t, true)

	values, err := degreeProcedure(context.Background(), graph, map[string]interface{}{})
	if err != nil {
		t.Fatalf("degreeProcedure error: %v", err)
	}
	typed, ok := values.(interface{ Get(int) int64 })
	if !ok {
		t.Fatalf("expected a Get(int) int64 accessor")
	}
	if got := typed.Get(0); got != 2 {
		t.Fatalf("node 0 degree = %d, want 2", got)
	}
	if got := typed.Get(1); got != 0 {
		t.Fatalf("node 1 degree = %d, want 0", got)
	}
}

func TestDegreeProcedureNoRelationshipsReturnsZeros(t *testing.T) {
	graph := buildDegreeTestGraph(t, false)

	values, err := degreeProcedure(context.Background(), graph, nil)
	if err != nil {
		t.Fatalf("degreeProcedure error: %v", err)
	}
	if values.Len() != 3 {
		t.Fatalf("values.Len() = %d, want 3", values.Len())
	}
}

func TestDegreeProcedureHonorsRelationshipTypeOverride(t *testing.T) {
	graph := buildDegreeTestGraph(t, true)

	values, err := degreeProcedure(context.Background(), graph, map[string]interface{}{"relationshipType": "UNKNOWN"})
	if err != nil {
		t.Fatalf("degreeProcedure error: %v", err)
	}
	typed := values.(interface{ Get(int) int64 })
	if got := typed.Get(0); got != 0 {
		t.Fatalf("unknown relationship type should yield zero degree, got %d", got)
	}
}
