package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/graphscale/graphscale/internal/progress"
	"github.com/graphscale/graphscale/pkg/config"
	"github.com/graphscale/graphscale/pkg/logging"
	"github.com/graphscale/graphscale/pkg/telemetry"
)

var (
	// Global flags
	configPath    string
	logLevelFlag  string
	logFormatFlag string

	cfg               *config.Config
	logger            logging.Logger
	taskStore         progress.TaskStore
	shutdownTelemetry telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "graphscale",
	Short: "An in-memory property graph analytics engine",
	Long: `graphscale imports property graphs from Arrow-fronted tables into an
in-memory graph store, runs Pregel-style bulk synchronous parallel
computations over them, and drives node-property/feature/training
pipelines through their declared phases.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		if logLevelFlag != "" {
			loaded.Log.Level = logLevelFlag
		}
		if logFormatFlag != "" {
			loaded.Log.Format = logFormatFlag
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		level := logging.ParseLevel(cfg.Log.Level)
		format := logging.ParseFormat(cfg.Log.Format)
		logger = logging.NewDefaultLogger(level, format, os.Stdout)

		shutdown, err := telemetry.InitWithConfig(cmd.Context(), &telemetry.Config{
			Enabled:     cfg.Tracing.Enabled,
			ServiceName: "graphscale",
			Endpoint:    cfg.Tracing.Endpoint,
			Sampler:     "traceidratio",
			SamplerArg:  fmt.Sprintf("%f", cfg.Tracing.SampleRatio),
		})
		if err != nil {
			return fmt.Errorf("initialize tracing: %w", err)
		}
		shutdownTelemetry = shutdown

		store, err := buildTaskStore(cfg.TaskStore)
		if err != nil {
			return fmt.Errorf("build task store: %w", err)
		}
		taskStore = store

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if shutdownTelemetry != nil {
			return shutdownTelemetry(context.Background())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	binName := BinName()
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a configuration file (defaults are used when omitted)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "", "Override the configured log format: text, json")

	rootCmd.Example = `  # Import node and edge tables and report the result
  ` + binName + ` import --nodes nodes.arrow --edges edges.arrow --graph-name social

  # Run the built-in PageRank program over an imported graph
  ` + binName + ` pregel run --nodes nodes.arrow --edges edges.arrow --program pagerank

  # Drive a pipeline descriptor through node-property/feature/split phases
  ` + binName + ` pipeline run --nodes nodes.arrow --edges edges.arrow --procedure degree

  # Inspect recorded tasks
  ` + binName + ` tasks list --user default`
}

// GetLogger returns the logger constructed from the loaded configuration.
func GetLogger() logging.Logger {
	if logger == nil {
		return logging.Default
	}
	return logger
}

// GetConfig returns the configuration loaded by PersistentPreRunE.
func GetConfig() *config.Config { return cfg }

// GetTaskStore returns the task store wired from TaskStoreConfig.
func GetTaskStore() progress.TaskStore {
	if taskStore == nil {
		return progress.NoopStore{}
	}
	return taskStore
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
