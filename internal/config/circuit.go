package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

const DefaultConfigPath = "configs/circuit.yaml"

var ErrInvalidConfig = errors.New("invalid circuit config")

// LoadCircuitConfig reads the file named by CIRCUIT_CONFIG_PATH, or the
// default path. Only a missing file at the default path falls back to defaults.
func LoadCircuitConfig() (*CircuitConfig, error) {
	path := os.Getenv("CIRCUIT_CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	var cfg CircuitConfig

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *CircuitConfig {
	var cfg CircuitConfig
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *CircuitConfig) {
	if cfg.Solver.Target == "" {
		cfg.Solver.Target = "a"
	}
	if cfg.Solver.Override == "" {
		cfg.Solver.Override = "b"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 24 * time.Hour
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = "circuit:result:"
	}
	if cfg.Stream.Jobs == "" {
		cfg.Stream.Jobs = "circuit-jobs"
	}
	if cfg.Stream.Results == "" {
		cfg.Stream.Results = "circuit-results"
	}
	if cfg.Stream.Group == "" {
		cfg.Stream.Group = "circuit-solvers"
	}
}

func (c *CircuitConfig) Validate() error {
	if c.Solver.PartTwoEnabled() && c.Solver.Target == c.Solver.Override {
		return fmt.Errorf("%w: solver.override must differ from solver.target (%q)", ErrInvalidConfig, c.Solver.Target)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("%w: cache.ttl must be positive, got %s", ErrInvalidConfig, c.Cache.TTL)
	}
	if c.Stream.Jobs == c.Stream.Results {
		return fmt.Errorf("%w: stream.jobs and stream.results must differ (%q)", ErrInvalidConfig, c.Stream.Jobs)
	}
	return nil
}
