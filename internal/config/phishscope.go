// Package config loads phishscope configuration from an optional YAML file
// plus environment overrides. Flags layered on top by the CLI win over
// both.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all phishscope configuration.
type Config struct {
	Gemini  GeminiConfig  `yaml:"gemini"`
	Logging LoggingConfig `yaml:"logging"`
}

// GeminiConfig configures the analysis backend.
type GeminiConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`
	Timeout    string `yaml:"timeout"`
	MaxRetries int    `yaml:"max_retries"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Gemini: GeminiConfig{
			Model:      "gemini-2.5-flash",
			Timeout:    "2m",
			MaxRetries: 2,
		},
	}
}

// Load reads the config file at path, layering it over the defaults and
// then applying environment overrides. A missing file is not an error;
// defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Gemini.APIKey = key
	}
	if model := os.Getenv("PHISHSCOPE_MODEL"); model != "" {
		c.Gemini.Model = model
	}
	if timeout := os.Getenv("PHISHSCOPE_TIMEOUT"); timeout != "" {
		c.Gemini.Timeout = timeout
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("no Gemini API key configured (set GEMINI_API_KEY or gemini.api_key)")
	}
	if _, err := c.GeminiTimeout(); err != nil {
		return err
	}
	return nil
}

// GeminiTimeout parses the configured backend timeout.
func (c *Config) GeminiTimeout() (time.Duration, error) {
	if c.Gemini.Timeout == "" {
		return 2 * time.Minute, nil
	}
	d, err := time.ParseDuration(c.Gemini.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid gemini timeout %q: %w", c.Gemini.Timeout, err)
	}
	return d, nil
}
