package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a YAML config file.
const EnvVar = "CONFORMAL_CONFIG"

// Config holds tool settings that are not given on the command line.
type Config struct {
	// EligibleLimit is how many leading fixed vertices reach the solver.
	EligibleLimit int           `yaml:"eligible_limit"`
	Solver        SolverConfig  `yaml:"solver"`
	Preview       PreviewConfig `yaml:"preview"`
}

// SolverConfig tunes the conformal map solve.
type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance"`
	MaxIterations int     `yaml:"max_iterations"`
}

// PreviewConfig sizes the UV preview page, in millimetres.
type PreviewConfig struct {
	SizeMM   float64 `yaml:"size_mm"`
	MarginMM float64 `yaml:"margin_mm"`
	StrokeMM float64 `yaml:"stroke_mm"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		EligibleLimit: 2,
		Solver: SolverConfig{
			Tolerance:     1e-10,
			MaxIterations: 20000,
		},
		Preview: PreviewConfig{
			SizeMM:   200,
			MarginMM: 10,
			StrokeMM: 0.2,
		},
	}
}

// Load reads the file named by CONFORMAL_CONFIG, or returns Default when unset.
func Load() (Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a YAML config; fields absent from the file keep their defaults.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the tool cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.EligibleLimit < 1 {
		errs = append(errs, fmt.Errorf("eligible_limit must be at least 1, got %d", c.EligibleLimit))
	}
	if c.Solver.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("solver.tolerance must be positive, got %g", c.Solver.Tolerance))
	}
	if c.Solver.MaxIterations < 1 {
		errs = append(errs, fmt.Errorf("solver.max_iterations must be at least 1, got %d", c.Solver.MaxIterations))
	}
	if c.Preview.SizeMM <= 2*c.Preview.MarginMM || c.Preview.MarginMM < 0 {
		errs = append(errs, fmt.Errorf("preview.size_mm (%g) must exceed twice preview.margin_mm (%g)", c.Preview.SizeMM, c.Preview.MarginMM))
	}
	if c.Preview.StrokeMM <= 0 {
		errs = append(errs, fmt.Errorf("preview.stroke_mm must be positive, got %g", c.Preview.StrokeMM))
	}
	return errors.Join(errs...)
}
