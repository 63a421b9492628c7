package seeder

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds seeder pipeline settings.
type Config struct {
	KradPath      string `yaml:"krad_path"      env:"SEEDER_KRAD_PATH"`
	BatchSize     int    `yaml:"batch_size"     env:"SEEDER_BATCH_SIZE"     env-default:"500"`
	DecodeWorkers int    `yaml:"decode_workers" env:"SEEDER_DECODE_WORKERS" env-default:"1"`
	DryRun        bool   `yaml:"dry_run"        env:"SEEDER_DRY_RUN"`
}

// LoadConfig reads seeder configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("seeder config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("seeder config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("seeder config: read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("seeder config: %w", err)
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.DecodeWorkers <= 0 {
		return fmt.Errorf("decode_workers must be positive, got %d", c.DecodeWorkers)
	}
	return nil
}
