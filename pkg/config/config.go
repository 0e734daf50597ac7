// Package config provides configuration management for the graph engine:
// a layered loader (compiled-in defaults, an optional config file,
// GRAPHSCALE_* environment overrides) over the option surface of §6 plus
// the ambient logging/task-store/tracing/storage settings of §4.13,
// adapted from the teacher's viper-backed config package.
package config

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every configuration surface this repository exposes.
type Config struct {
	Import    ImportConfig    `mapstructure:"import"`
	Pregel    PregelConfig    `mapstructure:"pregel"`
	Log       LogConfig       `mapstructure:"log"`
	TaskStore TaskStoreConfig `mapstructure:"taskstore"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Storage   StorageConfig   `mapstructure:"storage"`
}

// ImportConfig covers the import-scoped options enumerated in §6.
type ImportConfig struct {
	GraphName      string `mapstructure:"graph_name"`
	BatchSize      int    `mapstructure:"batch_size"`
	Concurrency    int    `mapstructure:"concurrency"`
	PrefetchSize   int    `mapstructure:"prefetch_size"`
	ValidateSchema bool   `mapstructure:"validate_schema"`
	LogProgress    bool   `mapstructure:"log_progress"`
}

// PregelConfig covers the Pregel-scoped options enumerated in §6. This
// struct is the ambient-stack's loaded defaults for three of them
// (max_iterations, is_asynchronous, relationship_weight_property), not
// the generic type parameter itself; it has no concurrency field.
type PregelConfig struct {
	MaxIterations              int    `mapstructure:"max_iterations"`
	IsAsynchronous             bool   `mapstructure:"is_asynchronous"`
	RelationshipWeightProperty string `mapstructure:"relationship_weight_property"`
}

// LogConfig controls the logger's verbosity and output encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// TaskStoreConfig selects and configures the progress task-store backend.
type TaskStoreConfig struct {
	Backend string `mapstructure:"backend"` // none, memory, or persistent
	DSN     string `mapstructure:"dsn"`
}

// TracingConfig bootstraps the OpenTelemetry exporter.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
}

// StorageConfig selects the object-storage backend an Arrow batch source
// reads table data from.
type StorageConfig struct {
	Backend   string `mapstructure:"backend"` // local or cos
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	SecretID  string `mapstructure:"secret_id"`
	SecretKey string `mapstructure:"secret_key"`
	Domain    string `mapstructure:"domain"`
	Scheme    string `mapstructure:"scheme"`
	LocalPath string `mapstructure:"local_path"`
}

// Load reads configuration from the specified file path (optional), then
// layers GRAPHSCALE_* environment variables on top, in that precedence
// order over the compiled-in defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/graphscale")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found via the search path; defaults and env
			// overrides still apply.
		} else if os.IsNotExist(err) {
			// An explicit path was given but doesn't exist; same fallback.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("graphscale")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadFromReader loads configuration from in-memory content (YAML, TOML,
// or JSON per configType), skipping the environment-override layer -
// useful for tests that want a deterministic, file-free config.
func LoadFromReader(configType string, content []byte) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType(configType)
	if err := v.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("import.graph_name", "graph")
	v.SetDefault("import.batch_size", 10_000)
	v.SetDefault("import.concurrency", runtime.NumCPU())
	v.SetDefault("import.prefetch_size", 4)
	v.SetDefault("import.validate_schema", true)
	v.SetDefault("import.log_progress", false)

	v.SetDefault("pregel.max_iterations", 20)
	v.SetDefault("pregel.is_asynchronous", false)
	v.SetDefault("pregel.relationship_weight_property", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("taskstore.backend", "memory")
	v.SetDefault("taskstore.dsn", "")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("tracing.sample_ratio", 1.0)

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local_path", "./storage")
}

// Validate reports every invalid field at once, not just the first, so a
// misconfigured deployment gets one complete error rather than a
// fix-one-rerun-find-the-next loop.
func (c *Config) Validate() error {
	var problems []string

	if c.Import.Concurrency < 1 {
		problems = append(problems, "import.concurrency must be at least 1")
	}
	if c.Import.BatchSize < 1 {
		problems = append(problems, "import.batch_size must be at least 1")
	}
	if c.Pregel.MaxIterations < 1 {
		problems = append(problems, "pregel.max_iterations must be at least 1")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format must be \"text\" or \"json\", got %q", c.Log.Format))
	}
	switch c.TaskStore.Backend {
	case "none", "memory", "persistent":
	default:
		problems = append(problems, fmt.Sprintf("taskstore.backend must be none, memory, or persistent, got %q", c.TaskStore.Backend))
	}
	if c.TaskStore.Backend == "persistent" && c.TaskStore.DSN == "" {
		problems = append(problems, "taskstore.dsn is required when taskstore.backend is \"persistent\"")
	}
	if c.Tracing.Enabled && c.Tracing.Endpoint == "" {
		problems = append(problems, "tracing.endpoint is required when tracing.enabled is true")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		problems = append(problems, fmt.Sprintf("tracing.sample_ratio must be within [0,1], got %v", c.Tracing.SampleRatio))
	}
	switch c.Storage.Backend {
	case "local", "cos":
	default:
		problems = append(problems, fmt.Sprintf("storage.backend must be local or cos, got %q", c.Storage.Backend))
	}
	if c.Storage.Backend == "cos" && (c.Storage.Bucket == "" || c.Storage.Region == "") {
		problems = append(problems, "storage.bucket and storage.region are required when storage.backend is \"cos\"")
	}
	if c.Storage.Backend == "local" && c.Storage.LocalPath == "" {
		problems = append(problems, "storage.local_path is required when storage.backend is \"local\"")
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
}
