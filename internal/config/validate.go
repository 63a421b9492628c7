package config

import (
	"fmt"
	"strings"
)

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"json", "text"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	if strings.TrimSpace(d.DSN) == "" {
		return fmt.Errorf("dsn is required")
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be in [0, max_conns] (got %d, max_conns %d)", d.MinConns, d.MaxConns)
	}
	return nil
}

func (l *LogConfig) validate() error {
	if !oneOf(l.Level, validLevels) {
		return fmt.Errorf("level must be one of %v (got %q)", validLevels, l.Level)
	}
	if !oneOf(l.Format, validFormats) {
		return fmt.Errorf("format must be one of %v (got %q)", validFormats, l.Format)
	}
	return nil
}

func oneOf(s string, allowed []string) bool {
	s = strings.TrimSpace(s)
	for _, a := range allowed {
		if strings.EqualFold(s, a) {
			return true
		}
	}
	return false
}
