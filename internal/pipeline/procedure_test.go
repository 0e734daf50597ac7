package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/graphscale/graphscale/internal/graphstore"
	"github.com/graphscale/graphscale/pkg/property"
)

func TestProcedureRegistryRegisterAndLookup(t *testing.T) {
	reg := NewProcedureRegistry()
	proc := func(ctx context.Context, graph *graphstore.GraphStore, config map[string]interface{}) (property.Values, error) {
		return nil, nil
	}
	reg.Register("degree", proc)

	_, ok := reg.Lookup("degree")
	if !ok {
		t.Fatal("Lookup(degree) should find the registered procedure")
	}
	if _, ok := reg.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) should report not found")
	}
}

func TestProcedureRegistryRegisteredNames(t *testing.T) {
	reg := NewProcedureRegistry()
	reg.Register("a", func(context.Context, *graphstore.GraphStore, map[string]interface{}) (property.Values, error) {
		return nil, nil
	})
	reg.Register("b", func(context.Context, *graphstore.GraphStore, map[string]interface{}) (property.Values, error) {
		return nil, nil
	})

	names := reg.RegisteredNames()
	if len(names) != 2 {
		t.Fatalf("RegisteredNames() = %v, want 2 entries", names)
	}
}

func TestProcedureRegistryConcurrentRegisterIsSafe(t *testing.T) {
	reg := NewProcedureRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg.Register("p", func(context.Context, *graphstore.GraphStore, map[string]interface{}) (property.Values, error) {
				return nil, nil
			})
			reg.Lookup("p")
		}(i)
	}
	wg.Wait()
}
