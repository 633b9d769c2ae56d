// Package config loads run configuration from an optional YAML file with
// sensible defaults; command-line flags override both.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every knob for a simulation run.
type Config struct {
	Population   int           `yaml:"population"`
	Seed         int64         `yaml:"seed"`
	Days         int           `yaml:"days"` // 0 = run until interrupted
	TickInterval time.Duration `yaml:"-"`
	DBPath       string        `yaml:"db_path"` // Empty disables the run archive
	APIPort      int           `yaml:"api_port"` // 0 disables the HTTP API
	Interactive  bool          `yaml:"interactive"`
}

// UnmarshalYAML decodes tick_interval from a duration string ("500ms", "2s")
// since yaml.v3 has no native time.Duration support.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	aux := struct {
		*plain       `yaml:",inline"`
		TickInterval string `yaml:"tick_interval"`
	}{plain: (*plain)(c)}

	if err := value.Decode(&aux); err != nil {
		return err
	}
	if aux.TickInterval != "" {
		d, err := time.ParseDuration(aux.TickInterval)
		if err != nil {
			return fmt.Errorf("tick_interval: %w", err)
		}
		c.TickInterval = d
	}
	return nil
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Population:   200,
		Seed:         42,
		TickInterval: time.Second,
		DBPath:       "data/datingworld.db",
		APIPort:      8080,
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate rejects configurations that could not produce a sane run.
func (c Config) Validate() error {
	if c.Population < 1 {
		return fmt.Errorf("population must be positive, got %d", c.Population)
	}
	if c.Days < 0 {
		return fmt.Errorf("days must not be negative, got %d", c.Days)
	}
	if c.TickInterval < 0 {
		return fmt.Errorf("tick_interval must not be negative, got %s", c.TickInterval)
	}
	return nil
}
