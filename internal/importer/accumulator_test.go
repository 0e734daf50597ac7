package importer

import (
	"testing"

	"github.com/graphscale/graphscale/pkg/collection"
	"github.com/graphscale/graphscale/pkg/property"
)

func TestNodeAccumulatorBuildsIdMapAndProperties(t *testing.T) {
	acc := NewNodeAccumulator(3, []property.Descriptor{
		{Key: "age", ValueType: collection.Int64, DefaultValue: int64(-1)},
	})
	acc.AddNodeWithProperties(10, []string{"Person"}, map[string]interface{}{"age": int64(30)})
	acc.AddNodeWithProperties(20, []string{"Person"}, map[string]interface{}{"age": int64(40)})
	acc.AddNode(30, []string{"Person"}) // no age supplied -> default

	ids := acc.BuildIdMap(true)
	if ids.NodeCount() != 3 {
		t.Fatalf("NodeCount() = %d, want 3", ids.NodeCount())
	}

	store, err := acc.BuildProperties(ids)
	if err != nil {
		t.Fatalf("BuildProperties() error = %v", err)
	}
	_, values, ok := store.Get("age")
	if !ok {
		t.Fatal("expected age property in store")
	}
	typed := values.(property.TypedValues[int64])

	mapped30, _ := ids.ToMapped(30)
	if got := typed.Get(mapped30); got != -1 {
		t.Fatalf("age for node with no supplied value = %d, want default -1", got)
	}
	mapped10, _ := ids.ToMapped(10)
	if got := typed.Get(mapped10); got != 30 {
		t.Fatalf("age for node 10 = %d, want 30", got)
	}
}

func TestRelationshipAccumulatorBuildsTopologyAndProperties(t *testing.T) {
	nodeAcc := NewNodeAccumulator(2, nil)
	nodeAcc.AddNode(1, nil)
	nodeAcc.AddNode(2, nil)
	ids := nodeAcc.BuildIdMap(true)

	relAcc := NewRelationshipAccumulator(2, []property.Descriptor{
		{Key: "since", ValueType: collection.Int64, DefaultValue: int64(0)},
	}, false)
	relAcc.AddRelationship(1, 2, "KNOWS", map[string]interface{}{"since": int64(2020)})
	relAcc.AddRelationship(2, 1, "KNOWS", nil)

	topologies, typeOrder, err := relAcc.BuildTopology(ids)
	if err != nil {
		t.Fatalf("BuildTopology() error = %v", err)
	}
	top, ok := topologies["KNOWS"]
	if !ok || top.RelationshipCount() != 2 {
		t.Fatalf("expected KNOWS topology with 2 relationships, got %v, %v", top, ok)
	}

	stores, err := relAcc.BuildProperties(typeOrder)
	if err != nil {
		t.Fatalf("BuildProperties() error = %v", err)
	}
	_, values, ok := stores["KNOWS"].Get("since")
	if !ok {
		t.Fatal("expected since property in KNOWS store")
	}
	typed := values.(property.TypedValues[int64])
	if typed.Get(0) != 2020 {
		t.Fatalf("since[0] = %d, want 2020", typed.Get(0))
	}
	if typed.Get(1) != 0 {
		t.Fatalf("since[1] = %d, want default 0", typed.Get(1))
	}
}

func TestRelationshipAccumulatorFailsOnDanglingWithoutSkip(t *testing.T) {
	nodeAcc := NewNodeAccumulator(1, nil)
	nodeAcc.AddNode(1, nil)
	ids := nodeAcc.BuildIdMap(true)

	relAcc := NewRelationshipAccumulator(1, nil, false)
	relAcc.AddRelationship(1, 999, "KNOWS", nil)

	if _, _, err := relAcc.BuildTopology(ids); err == nil {
		t.Fatal("expected dangling target to fail without skip-dangling")
	}
}

func TestRelationshipAccumulatorSkipsDanglingWhenConfigured(t *testing.T) {
	nodeAcc := NewNodeAccumulator(1, nil)
	nodeAcc.AddNode(1, nil)
	ids := nodeAcc.BuildIdMap(true)

	relAcc := NewRelationshipAccumulator(1, nil, true)
	relAcc.AddRelationship(1, 999, "KNOWS", nil)

	topologies, _, err := relAcc.BuildTopology(ids)
	if err != nil {
		t.Fatalf("BuildTopology() error = %v", err)
	}
	if top, ok := topologies["KNOWS"]; ok && top.RelationshipCount() != 0 {
		t.Fatalf("expected dangling edge to be skipped, got %d relationships", top.RelationshipCount())
	}
}
