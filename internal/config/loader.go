package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/MattePalte/Bugs-Quantum-Computing-Platforms/pkg/minimize"
)

// configName is the config file name without extension.
const configName = ".minfix"

// configType is the config file format.
const configType = "yaml"

// envPrefix is the environment variable prefix for minfix settings.
const envPrefix = "MINFIX"

// envKeySeparator is the nested key separator in environment variable names.
const envKeySeparator = "_"

// LoadConfig loads configuration from file, env vars, and defaults.
// If configPath is non-empty, it is used as the explicit config file path.
// Otherwise, the config file is searched in CWD and $HOME.
// Missing config file is not an error; defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	applyDefaults(viperCfg)

	viperCfg.SetConfigType(configType)
	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	viperCfg.AutomaticEnv()

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viperCfg.AddConfigPath(home)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFound) {
			return nil, fmt.Errorf("read config: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("validate config: %w", validateErr)
	}

	return &cfg, nil
}

// PathRules builds the classifier rules from the configured patterns,
// falling back to the built-in defaults for empty lists.
func (c *Config) PathRules() *minimize.PathRules {
	rules := minimize.DefaultPathRules()

	if len(c.Patterns.TestGlobs) > 0 {
		rules.TestPatterns = c.Patterns.TestGlobs
	}

	if len(c.Patterns.MockGlobs) > 0 {
		rules.MockPatterns = c.Patterns.MockGlobs
	}

	return rules
}

func applyDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("pipeline.workers", DefaultPipelineWorkers)
	viperCfg.SetDefault("patterns.test_globs", []string{})
	viperCfg.SetDefault("patterns.mock_globs", []string{})
	viperCfg.SetDefault("output.path", DefaultOutputPath)
	viperCfg.SetDefault("output.show_diffs", false)
	viperCfg.SetDefault("metrics.addr", DefaultMetricsAddr)
}
