package graphstore

import (
	"testing"

	"github.com/graphscale/graphscale/pkg/collection"
	"github.com/graphscale/graphscale/pkg/property"

	"github.com/graphscale/graphscale/internal/idmap"
	"github.com/graphscale/graphscale/internal/topology"
)

func buildTestIdMap(t *testing.T, n int) *idmap.IdMap {
	t.Helper()
	b := idmap.NewBuilder(n)
	for i := 0; i < n; i++ {
		b.Add(uint64(i+1), []string{"Person"})
	}
	return b.Build(true)
}

func TestNewBuildsValidGraphStore(t *testing.T) {
	ids := buildTestIdMap(t, 3)

	topoBuilder := topology.NewBuilder(3, false)
	_ = topoBuilder.AddEdge(0, 1)
	_ = topoBuilder.AddEdge(1, 2)
	top := topoBuilder.Build()
	topologies := map[string]*topology.Topology{"KNOWS": top}

	nodeBuilder := property.NewBuilder(property.ScopeNode)
	nodeBuilder.Put("age", property.Descriptor{Key: "age", ValueType: collection.Int64}, property.Of[int64](3, 0, collection.Int64))
	nodeProps, err := nodeBuilder.Build(3)
	if err != nil {
		t.Fatalf("node property Build() error = %v", err)
	}

	relBuilder := property.NewBuilder(property.ScopeRelationship)
	relBuilder.Put("since", property.Descriptor{Key: "since", ValueType: collection.Int64}, property.Of[int64](2, 2020, collection.Int64))
	relProps, err := relBuilder.Build(2)
	if err != nil {
		t.Fatalf("relationship property Build() error = %v", err)
	}

	graphProps, err := property.NewBuilder(property.ScopeGraph).Build(1)
	if err != nil {
		t.Fatalf("graph property Build() error = %v", err)
	}

	store, err := New("test", DatabaseInfo{Name: "neo4j"}, ids, topologies, graphProps, nodeProps,
		map[string]*property.Store{"KNOWS": relProps})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if store.NodeCount() != 3 {
		t.Fatalf("NodeCount() = %d, want 3", store.NodeCount())
	}
	top2, err := store.Topology("KNOWS")
	if err != nil || top2.RelationshipCount() != 2 {
		t.Fatalf("Topology(KNOWS) = %v, %v", top2, err)
	}
	if _, err := store.Topology("MISSING"); err == nil {
		t.Fatal("expected error for unknown relationship type")
	}
}

func TestNewPopulatesDistinctSortedNodeLabels(t *testing.T) {
	b := idmap.NewBuilder(4)
	b.Add(1, []string{"Person"})
	b.Add(2, []string{"Person", "Admin"})
	b.Add(3, []string{"Company"})
	b.Add(4, nil)
	ids := b.Build(true)

	nodeProps, _ := property.NewBuilder(property.ScopeNode).Build(4)
	graphProps, _ := property.NewBuilder(property.ScopeGraph).Build(1)

	store, err := New("test", DatabaseInfo{}, ids, map[string]*topology.Topology{}, graphProps, nodeProps, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := []string{"Admin", "Company", "Person"}
	got := store.Schema().NodeLabels
	if len(got) != len(want) {
		t.Fatalf("NodeLabels = %v, want %v", got, want)
	}
	for i, label := range want {
		if got[i] != label {
			t.Fatalf("NodeLabels = %v, want %v", got, want)
		}
	}
}

func TestNewRejectsNodePropertyCountMismatch(t *testing.T) {
	ids := buildTestIdMap(t, 3)
	nodeBuilder := property.NewBuilder(property.ScopeNode)
	nodeBuilder.Put("age", property.Descriptor{Key: "age", ValueType: collection.Int64}, property.Of[int64](2, 0, collection.Int64))
	nodeProps, err := nodeBuilder.Build(2)
	if err != nil {
		t.Fatalf("node property Build() error = %v", err)
	}
	graphProps, _ := property.NewBuilder(property.ScopeGraph).Build(1)

	_, err = New("test", DatabaseInfo{}, ids, map[string]*topology.Topology{}, graphProps, nodeProps, nil)
	if err == nil {
		t.Fatal("expected New() to reject node property count mismatch with node count")
	}
}

func TestNewRejectsTopologyNodeCountMismatch(t *testing.T) {
	ids := buildTestIdMap(t, 3)
	topoBuilder := topology.NewBuilder(5, false)
	top := topoBuilder.Build()

	nodeProps, _ := property.NewBuilder(property.ScopeNode).Build(3)
	graphProps, _ := property.NewBuilder(property.ScopeGraph).Build(1)

	_, err := New("test", DatabaseInfo{}, ids, map[string]*topology.Topology{"KNOWS": top}, graphProps, nodeProps, nil)
	if err == nil {
		t.Fatal("expected New() to reject topology node count mismatch")
	}
}
