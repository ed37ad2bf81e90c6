// Package config holds the minfix configuration model and its viper-based
// loader.
package config

import "errors"

// Config is the top-level configuration struct for minfix.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Patterns PatternsConfig `mapstructure:"patterns"`
	Output   OutputConfig   `mapstructure:"output"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// PipelineConfig holds pipeline resource knobs.
type PipelineConfig struct {
	// Workers bounds file-level parallelism; 0 means one worker per CPU.
	Workers int `mapstructure:"workers"`
}

// PatternsConfig holds the per-repository path classification globs.
type PatternsConfig struct {
	TestGlobs []string `mapstructure:"test_globs"`
	MockGlobs []string `mapstructure:"mock_globs"`
}

// OutputConfig holds report output settings.
type OutputConfig struct {
	// Path is the per-file report destination; an empty value writes the
	// summary to stdout only. A ".lz4" suffix enables compression.
	Path string `mapstructure:"path"`

	// ShowDiffs renders a unified diff per emitted record for manual
	// review.
	ShowDiffs bool `mapstructure:"show_diffs"`
}

// MetricsConfig holds diagnostics endpoint settings.
type MetricsConfig struct {
	// Addr enables the diagnostics HTTP server when non-empty, e.g.
	// "localhost:9090".
	Addr string `mapstructure:"addr"`
}

// Defaults.
const (
	DefaultPipelineWorkers = 0
	DefaultOutputPath      = ""
	DefaultMetricsAddr     = ""
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidWorkers indicates the workers value is negative.
	ErrInvalidWorkers = errors.New("pipeline.workers must be non-negative")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.Pipeline.Workers < 0 {
		return ErrInvalidWorkers
	}

	return nil
}
