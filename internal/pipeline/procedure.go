package pipeline

import (
	"context"
	"sync"

	"github.com/graphscale/graphscale/internal/graphstore"
	"github.com/graphscale/graphscale/pkg/property"
)

// Procedure is a named graph algorithm the pipeline executor can run
// during its NodePropertySteps phase: given a read-only graph view and a
// step's configuration, it produces one property-values column.
type Procedure func(ctx context.Context, graph *graphstore.GraphStore, config map[string]interface{}) (property.Values, error)

// ProcedureRegistry maps algorithm name to Procedure: a plain map guarded
// by a RWMutex, safe for concurrent registration at program init and
// concurrent lookup during execution. It is instance-owned rather than
// package-level - each executor is handed one, rather than every pipeline
// sharing global state.
type ProcedureRegistry struct {
	mu         sync.RWMutex
	procedures map[string]Procedure
}

func NewProcedureRegistry() *ProcedureRegistry {
	return &ProcedureRegistry{procedures: make(map[string]Procedure)}
}

// Register binds name to proc, overwriting any previous binding.
func (r *ProcedureRegistry) Register(name string, proc Procedure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.procedures[name] = proc
}

func (r *ProcedureRegistry) Lookup(name string) (Procedure, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	proc, ok := r.procedures[name]
	return proc, ok
}

// RegisteredNames returns every currently registered procedure name, in
// no particular order.
func (r *ProcedureRegistry) RegisteredNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.procedures))
	for name := range r.procedures {
		names = append(names, name)
	}
	return names
}
