package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/artpar/filetree/internal/core"
)

// ID strategies accepted in IDs.Strategy.
const (
	IDStrategySequence = "sequence"
	IDStrategyUUID     = "uuid"
)

// Config holds application configuration.
type Config struct {
	Labels core.Labels `yaml:"labels"`
	IDs    IDConfig    `yaml:"ids"`
	Touch  bool        `yaml:"touch"`
	Log    LogConfig   `yaml:"log"`
}

// IDConfig selects how node ids are generated.
type IDConfig struct {
	Strategy string `yaml:"strategy"`
	Prefix   string `yaml:"prefix"`
}

// LogConfig controls the log file. Logging is off when File is empty.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Labels: core.DefaultLabels(),
		IDs:    IDConfig{Strategy: IDStrategySequence},
		Log:    LogConfig{Level: "info"},
	}
}

// DefaultPath returns ~/.config/filetree/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "filetree", "config.yaml")
}

// Load reads the config file at path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.IDs.Strategy {
	case "", IDStrategySequence, IDStrategyUUID:
	default:
		return fmt.Errorf("unknown id strategy %q", c.IDs.Strategy)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// IDGenerator builds the generator selected by the config.
func (c Config) IDGenerator() core.IDGenerator {
	if c.IDs.Strategy == IDStrategyUUID {
		return core.UUIDGenerator{}
	}
	return core.NewSequenceGenerator(c.IDs.Prefix)
}

// LabelsOrDefault fills empty labels with the built-in defaults.
func (c Config) LabelsOrDefault() core.Labels {
	labels := c.Labels
	def := core.DefaultLabels()
	if labels.File == "" {
		labels.File = def.File
	}
	if labels.Folder == "" {
		labels.Folder = def.Folder
	}
	return labels
}

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
