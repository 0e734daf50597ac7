package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/graphscale/graphscale/pkg/collection"
	"github.com/graphscale/graphscale/pkg/property"

	"github.com/graphscale/graphscale/internal/graphstore"
	"github.com/graphscale/graphscale/internal/idmap"
	"github.com/graphscale/graphscale/internal/topology"
)

// buildTestGraph returns a graph store with n nodes, no relationships,
// and no pre-populated properties: every property in these tests comes
// from a procedure, not from the store itself.
func buildTestGraph(t *testing.T, n int) *graphstore.GraphStore {
	t.Helper()
	b := idmap.NewBuilder(n)
	for i := 0; i < n; i++ {
		b.Add(uint64(i+1), []string{"Node"})
	}
	ids := b.Build(true)

	nodeProps, err := property.NewBuilder(property.ScopeNode).Build(n)
	if err != nil {
		t.Fatalf("node property Build() error = %v", err)
	}
	graphProps, err := property.NewBuilder(property.ScopeGraph).Build(1)
	if err != nil {
		t.Fatalf("graph property Build() error = %v", err)
	}

	store, err := graphstore.New("test", graphstore.DatabaseInfo{}, ids,
		map[string]*topology.Topology{}, graphProps, nodeProps, nil)
	if err != nil {
		t.Fatalf("graphstore.New() error = %v", err)
	}
	return store
}

// constantProcedure is a stub Procedure used across these tests: it
// ignores the graph's actual topology and returns a constant int64 column
// sized to the graph's node count, reading "value" out of config.
func constantProcedure(value int64) Procedure {
	return func(_ context.Context, graph *graphstore.GraphStore, config map[string]interface{}) (property.Values, error) {
		if v, ok := config["value"]; ok {
			value = v.(int64)
		}
		return property.Of[int64](graph.NodeCount(), value, collection.Int64), nil
	}
}

// errFailingProcedure is a stub Procedure that always fails, used to
// exercise Executor's error propagation from a procedure call.
func errFailingProcedure() Procedure {
	return func(context.Context, *graphstore.GraphStore, map[string]interface{}) (property.Values, error) {
		return nil, errors.New("procedure boom")
	}
}
