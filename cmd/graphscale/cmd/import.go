package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importFlags graphSourceFlags

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import Arrow-fronted node and edge tables into a graph store",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := GetLogger()
		logger.Info("importing graph %q from %s / %s", importFlags.GraphName, importFlags.NodesPath, importFlags.EdgesPath)

		graph, result, err := buildGraph(cmd.Context(), &importFlags)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		relationships := 0
		for _, relType := range graph.RelationshipTypes() {
			if top, err := graph.Topology(relType); err == nil {
				relationships += top.RelationshipCount()
			}
		}
		logger.Info("imported %d nodes, %d relationships across %d types",
			graph.NodeCount(), relationships, len(graph.RelationshipTypes()))
		logger.Info("records/sec: %.1f, duration: %s, properties imported: %d",
			result.RecordsPerSec, result.Duration, result.TotalProperties)
		for i, task := range result.PerTask {
			logger.Debug("task %d: %d records, %d properties, %s", i, task.RecordsImported, task.PropertiesImported, task.Duration)
		}
		return nil
	},
}

func init() {
	importFlags.register(importCmd)
	rootCmd.AddCommand(importCmd)
}
