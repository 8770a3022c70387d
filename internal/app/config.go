package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/dimgrid/internal/render"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Paths are .hcl files or directories searched recursively.
	Paths  []string
	Format render.Format
	// Strict turns any resolution diagnostic into a failed run.
	Strict bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one definition path is required")
	}

	if cfg.Format == "" {
		cfg.Format = render.FormatText
	}
	format, err := render.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	return &cfg, nil
}
