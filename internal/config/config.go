package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures optional per-project installer configuration.
type Config struct {
	Version int                   `yaml:"version"`
	Tools   map[string]ToolConfig `yaml:"tools,omitempty"`
}

// ToolConfig holds per-tool overrides.
type ToolConfig struct {
	Minimum string `yaml:"minimum,omitempty"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{Version: 1}
}

// Load reads the YAML configuration from disk if it exists, otherwise returns
// the default configuration.
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// ToolMinimums returns the configured minimum-version overrides keyed by
// lowercase tool name, skipping blank entries.
func (c Config) ToolMinimums() map[string]string {
	if len(c.Tools) == 0 {
		return nil
	}
	minimums := make(map[string]string, len(c.Tools))
	for name, tc := range c.Tools {
		minimum := strings.TrimSpace(tc.Minimum)
		if minimum == "" {
			continue
		}
		minimums[strings.ToLower(name)] = minimum
	}
	if len(minimums) == 0 {
		return nil
	}
	return minimums
}
