// Package config resolves toolchain configuration: today, just the unit
// search path, left environment-configurable rather than fixed at build
// time. A YAML file supplies defaults; the PSCAL_UNIT_PATH environment
// variable, if set, is appended after it.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvUnitPath is the environment variable that extends the configured unit
// search path.
const EnvUnitPath = "PSCAL_UNIT_PATH"

// Config is the toolchain's on-disk configuration surface.
type Config struct {
	UnitSearchPath []string `yaml:"unit_search_path"`
}

// Default returns a Config with no configured search path.
func Default() *Config {
	return &Config{}
}

// Load reads a YAML config from data, then appends any directories named
// in the PSCAL_UNIT_PATH environment variable (colon-separated, matching
// PATH conventions), in that order.
func Load(data []byte) (*Config, error) {
	cfg := Default()
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	raw := os.Getenv(EnvUnitPath)
	if raw == "" {
		return
	}
	for _, dir := range strings.Split(raw, ":") {
		if dir != "" {
			c.UnitSearchPath = append(c.UnitSearchPath, dir)
		}
	}
}

// SearchPath returns the configured unit search path in resolution order
// (file entries first, then environment-provided directories).
func (c *Config) SearchPath() []string {
	return append([]string{}, c.UnitSearchPath...)
}
