// SPDX-License-Identifier: MIT

// Package cli holds the logic behind the spacectl command: configuration,
// space loading, and the sample/check operations.
package cli

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/lvspace/descriptor"
	"github.com/katalvlaran/lvspace/space"
)

// Config holds spacectl defaults read from the environment. Command-line
// flags override these values.
type Config struct {
	SpaceFile string `env:"SPACECTL_SPACE"`
	Seed      *int64 `env:"SPACECTL_SEED"`
	Count     int    `env:"SPACECTL_COUNT" envDefault:"1"`
}

// LoadConfig parses Config from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

// LoadSpace reads and parses a YAML space descriptor.
func LoadSpace(path string) (space.Space, error) {
	if path == "" {
		return nil, fmt.Errorf("no space descriptor given (set --space or SPACECTL_SPACE)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read space descriptor: %w", err)
	}
	sp, err := descriptor.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return sp, nil
}
