// Package config handles interpreting the tablebench.json config file.
//
// The config file is optional: everything it carries can also be given on the
// command line, and flags win over file values. It exists so a repeatable
// benchmark setup can live next to the data it measures.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// DefaultIterations is the number of measured passes used when neither the
// config file nor the command line says otherwise.
const DefaultIterations = 5

// InputEnvVar names the environment variable consulted for the input path
// when neither the config file nor the command line provides one. A .env file
// in the working directory is loaded first, if present.
const InputEnvVar = "TABLEBENCH_INPUT"

// Config holds the tablebench configuration.
type Config struct {
	// Input is the path of the file every target reads.
	Input string `json:"input"`
	// Iterations is the number of measured passes (0 = use default).
	Iterations int `json:"iterations"`
	// Warmup is the number of untimed passes before measurement.
	Warmup int `json:"warmup"`
	// Targets filters the registered targets by name (empty = all).
	Targets []string `json:"targets"`
	// Details enables the per-iteration block in the report.
	Details bool `json:"details"`
}

// Default returns a Config with the baseline settings.
func Default() Config {
	return Config{Iterations: DefaultIterations}
}

// ParseConfig parses a JSON configuration string.
func ParseConfig(jsonStr string) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal([]byte(jsonStr), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ReadConfigFile reads and parses a configuration file from the given path.
func ReadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseConfig(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Validate verifies the configuration is usable before any measurement
// begins. It does not stop at the first problem; all problems are accumulated
// and returned together.
func (c *Config) Validate() error {
	var errs []error
	if c.Input == "" {
		errs = append(errs, errors.New("input: no input file configured"))
	}
	if c.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("iterations: must be positive, got %d", c.Iterations))
	}
	if c.Warmup < 0 {
		errs = append(errs, fmt.Errorf("warmup: must not be negative, got %d", c.Warmup))
	}
	for i, name := range c.Targets {
		if name == "" {
			errs = append(errs, fmt.Errorf("targets[%d]: empty target name", i))
		}
	}
	return errors.Join(errs...)
}
