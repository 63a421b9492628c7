package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	pathEnv     = "CONFIG_PATH"
	defaultPath = "./config.yaml"
)

// Load reads configuration from the file named by CONFIG_PATH (fallback
// ./config.yaml) and environment variables, then validates it.
// Priority: ENV > file > defaults (via env-default tags).
// A missing fallback file is not an error; a missing explicit one is.
func Load() (*Config, error) {
	path, explicit := os.Getenv(pathEnv), true
	if path == "" {
		path, explicit = defaultPath, false
	}
	return load(path, explicit)
}

// LoadFile is Load with an explicit file path. An empty path reads ENV
// and defaults only.
func LoadFile(path string) (*Config, error) {
	return load(path, path != "")
}

func load(path string, explicit bool) (*Config, error) {
	var cfg Config

	_, statErr := os.Stat(path)
	switch {
	case path != "" && statErr == nil:
		// cleanenv picks the parser (YAML, TOML, JSON, EDN) from the extension.
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// LoadLog reads only the logging section from ENV and defaults. Tools that
// never touch the database use it instead of Load.
func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return LogConfig{}, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return LogConfig{}, fmt.Errorf("config: validate: log: %w", err)
	}
	return cfg, nil
}
