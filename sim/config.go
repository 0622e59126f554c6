package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RestaurantConfig configures one restaurant source.
type RestaurantConfig struct {
	Interval float64 `yaml:"interval"` // time between generated orders (must be > 0)
}

// OperatorConfig configures one operator.
type OperatorConfig struct {
	ProcessingMean float64 `yaml:"processing_mean"` // exponential service mean (must be > 0)
}

// Config is the full scenario configuration for one simulation run.
// Loaded from YAML via LoadConfig or built from CLI flags.
type Config struct {
	Seed           int64              `yaml:"seed"`
	Horizon        float64            `yaml:"horizon"`
	BufferCapacity int                `yaml:"buffer_capacity"`
	Restaurants    []RestaurantConfig `yaml:"restaurants"`
	Operators      []OperatorConfig   `yaml:"operators"`
}

// DefaultConfig returns the stock scenario: 3 restaurants generating every
// 2.0 time units, 2 operators with mean service 3.0, a 5-slot buffer.
func DefaultConfig() Config {
	return Config{
		Seed:           42,
		Horizon:        100,
		BufferCapacity: 5,
		Restaurants: []RestaurantConfig{
			{Interval: 2.0}, {Interval: 2.0}, {Interval: 2.0},
		},
		Operators: []OperatorConfig{
			{ProcessingMean: 3.0}, {ProcessingMean: 3.0},
		},
	}
}

// UniformConfig builds a configuration with n identical restaurants and m
// identical operators, the shape the CLI flag surface describes.
func UniformConfig(numRestaurants, numOperators, bufferCapacity int, interval, processingMean, horizon float64, seed int64) Config {
	cfg := Config{
		Seed:           seed,
		Horizon:        horizon,
		BufferCapacity: bufferCapacity,
	}
	for i := 0; i < numRestaurants; i++ {
		cfg.Restaurants = append(cfg.Restaurants, RestaurantConfig{Interval: interval})
	}
	for i := 0; i < numOperators; i++ {
		cfg.Operators = append(cfg.Operators, OperatorConfig{ProcessingMean: processingMean})
	}
	return cfg
}

// LoadConfig reads and validates a scenario file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse scenario file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the configuration for a runnable scenario.
func (c *Config) Validate() error {
	if len(c.Restaurants) == 0 {
		return fmt.Errorf("at least one restaurant required")
	}
	if len(c.Operators) == 0 {
		return fmt.Errorf("at least one operator required")
	}
	if c.BufferCapacity <= 0 {
		return fmt.Errorf("buffer_capacity must be positive, got %d", c.BufferCapacity)
	}
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive, got %g", c.Horizon)
	}
	for i, r := range c.Restaurants {
		if r.Interval <= 0 {
			return fmt.Errorf("restaurant %d: interval must be positive, got %g", i, r.Interval)
		}
	}
	for i, op := range c.Operators {
		if op.ProcessingMean <= 0 {
			return fmt.Errorf("operator %d: processing_mean must be positive, got %g", i, op.ProcessingMean)
		}
	}
	return nil
}
