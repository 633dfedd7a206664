package config

import (
	"errors"
	"os"

	"github.com/me/cwl2man/internal/logging"
	"github.com/me/cwl2man/internal/manifest"
)

// Config holds the settings for one conversion run.
type Config struct {
	Patterns        []string // CWL files or glob patterns
	Output          string   // Manifest path; empty writes to stdout
	Name            string   // Manifest name
	ManifestVersion string   // Optional manifest version field
	Verbose         bool     // Debug logging
	LogLevel        string   // Log level: debug, info, warn, error
	LogFormat       string   // Log format: text, json
}

// Default returns sensible defaults. CWL2MAN_LOG_FORMAT overrides the log format.
func Default() Config {
	cfg := Config{
		Name:      manifest.DefaultName,
		LogLevel:  "info",
		LogFormat: string(logging.FormatText),
	}
	if f := os.Getenv("CWL2MAN_LOG_FORMAT"); f != "" {
		cfg.LogFormat = f
	}
	return cfg
}

// Validate checks that the configuration can drive a run.
func (c Config) Validate() error {
	if len(c.Patterns) == 0 {
		return errors.New("at least one CWL file or pattern is required")
	}
	if c.Name == "" {
		return errors.New("manifest name must not be empty")
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}
