// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds the settings shared by every command.
type Config struct {
	LogLevel      string `env:"CHATSQL_LOG_LEVEL" envDefault:"info"`
	LogFormat     string `env:"CHATSQL_LOG_FORMAT" envDefault:"json"`
	HTTPAddr      string `env:"CHATSQL_HTTP_ADDR" envDefault:":8080"`
	MaxInputBytes int64  `env:"CHATSQL_MAX_INPUT_BYTES" envDefault:"1048576"`
	OutputFormat  string `env:"CHATSQL_OUTPUT_FORMAT" envDefault:"json"`
}

// Load reads the environment into a Config. Files in envFiles are loaded
// first when they exist; variables already set in the environment win.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.MaxInputBytes <= 0 {
		return nil, fmt.Errorf("CHATSQL_MAX_INPUT_BYTES must be positive, got %d", cfg.MaxInputBytes)
	}
	return &cfg, nil
}
