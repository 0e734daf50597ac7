package cmd

import (
	"context"

	"github.com/graphscale/graphscale/internal/graphstore"
	"github.com/graphscale/graphscale/internal/pipeline"
	"github.com/graphscale/graphscale/pkg/collection"
	"github.com/graphscale/graphscale/pkg/property"
)

// buildProcedureRegistry registers the node-property procedures the
// "pipeline run" command can name in a descriptor: "degree" (relationship
// out-degree within a named relationship type or, when none is named, the
// first type the graph store lists, an order that is not defined).
func buildProcedureRegistry() *pipeline.ProcedureRegistry {
	registry := pipeline.NewProcedureRegistry()
	registry.Register("degree", degreeProcedure)
	return registry
}

func degreeProcedure(ctx context.Context, graph *graphstore.GraphStore, config map[string]interface{}) (property.Values, error) {
	relType, _ := config["relationshipType"].(string)
	if relType == "" {
		types := graph.RelationshipTypes()
		if len(types) > 0 {
			relType = types[0]
		}
	}

	out := collection.NewPaged[int64](graph.NodeCount(), collection.Int64, 0)
	if relType != "" {
		top, err := graph.Topology(relType)
		if err == nil {
			for node := 0; node < graph.NodeCount(); node++ {
				out.Set(node, int64(len(top.Outgoing(node))))
			}
		}
	}
	return property.NewValues[int64](out), nil
}
