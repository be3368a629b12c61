// Package config loads session settings from defaults, an optional YAML
// file and TINK_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/nathoo/tink/engine/epic"
	"github.com/nathoo/tink/engine/loom"
	"github.com/nathoo/tink/types"
)

// DefaultPath is the config file read when none is named.
const DefaultPath = "tink.yaml"

// Config holds the settings of a session.
type Config struct {
	Tier     string   `yaml:"tier" env:"TINK_TIER"`
	HandSize int      `yaml:"hand_size" env:"TINK_HAND_SIZE"`
	Seed     int64    `yaml:"seed" env:"TINK_SEED"` // 0 picks a time-based seed
	Weighted bool     `yaml:"weighted" env:"TINK_WEIGHTED"`
	Pack     string   `yaml:"pack" env:"TINK_PACK"`
	LogFile  string   `yaml:"log_file" env:"TINK_LOG_FILE"`
	Unlock   []string `yaml:"unlock" env:"TINK_UNLOCK" envSeparator:","`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Tier:     string(types.TierHex),
		HandSize: 5,
	}
}

// Load builds the config from defaults, the YAML file at path and the
// environment, then validates it. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("loading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("loading config %s: %w", path, err)
			}
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// ParseEnv overlays environment variables onto target. Unset variables
// leave fields untouched.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks that the settings describe a playable session.
func (c *Config) Validate() error {
	c.Tier = strings.ToLower(strings.TrimSpace(c.Tier))
	if loom.Size(types.Tier(c.Tier)) == 0 {
		return fmt.Errorf("unknown tier %q", c.Tier)
	}
	// Spare threads stay in hand, so the hand may outgrow a small loom.
	if limit := loom.Size(types.TierGrand); c.HandSize < 1 || c.HandSize > limit {
		return fmt.Errorf("hand_size %d: want 1..%d", c.HandSize, limit)
	}
	projections := epic.Projections()
	for _, id := range c.Unlock {
		if _, ok := epic.ByID(projections, id); !ok {
			return fmt.Errorf("unknown projection %q in unlock", id)
		}
	}
	return nil
}
