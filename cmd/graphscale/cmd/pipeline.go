package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphscale/graphscale/internal/pipeline"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Drive a pipeline descriptor through its declared phases",
}

var (
	pipelineFlags      graphSourceFlags
	pipelineProcedure  string
	pipelineRelType    string
	pipelineTrainRatio float64
	pipelineValRatio   float64
)

var pipelineRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Import a graph and run a one-step node-property pipeline against it",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := GetLogger()
		ctx := cmd.Context()

		graph, _, err := buildGraph(ctx, &pipelineFlags)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}

		descriptor := pipeline.NewDescriptor("cli-pipeline", []pipeline.PropertyDescriptor{
			{
				Name:      pipelineProcedure,
				Procedure: pipelineProcedure,
				Config:    map[string]interface{}{"relationshipType": pipelineRelType},
			},
		}, nil, nil)

		executor := pipeline.NewExecutor(descriptor, graph, buildProcedureRegistry())
		ratios := pipeline.SplitRatios{Train: pipelineTrainRatio, Validation: pipelineValRatio}
		if err := executor.Run(ctx, ratios); err != nil {
			return fmt.Errorf("run pipeline: %w", err)
		}

		state := executor.State()
		splits := state.Splits()
		logger.Info("pipeline halted at phase %s", state.Phase())
		logger.Info("dataset split: %d train, %d validation, %d test", len(splits.Train), len(splits.Validation), len(splits.Test))

		if values, ok := state.FeatureValue(pipelineProcedure); ok {
			logger.Info("feature %q computed for %d nodes", pipelineProcedure, values.Len())
		}
		return nil
	},
}

func init() {
	pipelineFlags.register(pipelineRunCmd)
	pipelineRunCmd.Flags().StringVar(&pipelineProcedure, "procedure", "degree", "Registered node-property procedure to run")
	pipelineRunCmd.Flags().StringVar(&pipelineRelType, "relationship-type", "", "Relationship type the procedure operates over (default: the first type the graph store lists; that order is not defined)")
	pipelineRunCmd.Flags().Float64Var(&pipelineTrainRatio, "train-ratio", 0.8, "Fraction of nodes assigned to the training split")
	pipelineRunCmd.Flags().Float64Var(&pipelineValRatio, "validation-ratio", 0.1, "Fraction of nodes assigned to the validation split")

	pipelineCmd.AddCommand(pipelineRunCmd)
	rootCmd.AddCommand(pipelineCmd)
}
