package config

import "time"

// CircuitConfig represents the complete solver configuration
type CircuitConfig struct {
	Solver SolverConfig `yaml:"solver"`
	Cache  CacheConfig  `yaml:"cache"`
	Stream StreamConfig `yaml:"stream"`
}

// SolverConfig holds the defaults applied to requests that leave them empty
type SolverConfig struct {
	Target   string `yaml:"target"`
	Override string `yaml:"override"`
	PartTwo  *bool  `yaml:"part_two"`
	Checks   *bool  `yaml:"checks"`
}

type CacheConfig struct {
	TTL       time.Duration `yaml:"ttl"`
	KeyPrefix string        `yaml:"key_prefix"`
}

// StreamConfig names the Redis streams used for queued solving
type StreamConfig struct {
	Jobs    string `yaml:"jobs"`
	Results string `yaml:"results"`
	Group   string `yaml:"group"`
}

func (s SolverConfig) PartTwoEnabled() bool {
	return s.PartTwo == nil || *s.PartTwo
}

func (s SolverConfig) ChecksEnabled() bool {
	return s.Checks == nil || *s.Checks
}
