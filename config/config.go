// Package config loads the annotext configuration from a YAML file and
// environment variables. Command line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/revelaction/annotext/annotate"
	"github.com/revelaction/annotext/logging"
	"gopkg.in/yaml.v3"
)

// Default configuration values.
const (
	DefaultConfigDir   = ".annotext"
	DefaultConfigFile  = "config.yaml"
	DefaultStoragePath = "./corpus/annotext.db"
)

// Environment variables overriding the file configuration.
const (
	EnvConfig       = "ANNOTEXT_CONFIG"
	EnvDependencies = "ANNOTEXT_DEPENDENCIES"
	EnvLogLevel     = "ANNOTEXT_LOG_LEVEL"
	EnvStorage      = "ANNOTEXT_STORAGE"
)

// LogConfig holds logging settings.
type LogConfig struct {
	Level logging.Level `yaml:"level"`

	// JSON switches from console output to JSON lines.
	JSON bool `yaml:"json"`
}

// StorageConfig holds the storage settings.
type StorageConfig struct {
	// Path is a SQLite database file or a directory of markup files.
	Path string `yaml:"path"`
}

// Config holds the annotext configuration settings.
type Config struct {
	Build   annotate.Options `yaml:"build"`
	Log     LogConfig        `yaml:"log"`
	Storage StorageConfig    `yaml:"storage"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Build: annotate.DefaultOptions(),
		Log: LogConfig{
			Level: logging.LevelInfo,
		},
		Storage: StorageConfig{
			Path: DefaultStoragePath,
		},
	}
}

// ConfigPath returns the configuration file path: $ANNOTEXT_CONFIG if set,
// otherwise ~/.annotext/config.yaml.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile), nil
}

// Load loads the configuration. Configuration is loaded in this order
// (later sources override earlier):
// 1. Default values
// 2. Config file at path, or ConfigPath() when path is empty
// 3. Environment variables (ANNOTEXT_DEPENDENCIES, ANNOTEXT_LOG_LEVEL, ANNOTEXT_STORAGE)
//
// A missing file is an error only when path was given explicitly.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("getting config path: %w", err)
		}
		path = p
	}

	err := loadFromFile(cfg, path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("loading config file: %w", err)
	}

	loadFromEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file at path onto cfg. Keys absent from
// the file keep their current value.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(expandPath(path))
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// loadFromEnv overlays environment variables onto the configuration.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvDependencies); v != "" {
		cfg.Build.Dependencies = annotate.DependencyKind(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = logging.Level(strings.ToLower(v))
	}

	if v := os.Getenv(EnvStorage); v != "" {
		cfg.Storage.Path = v
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := c.Build.Validate(); err != nil {
		return err
	}

	switch c.Log.Level {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	return nil
}

// Logging returns the logger configuration.
func (c *Config) Logging() *logging.Config {
	return &logging.Config{
		Level:      c.Log.Level,
		JSONFormat: c.Log.JSON,
		Output:     os.Stderr,
	}
}

// StoragePath returns the storage path with ~ expanded.
func (c *Config) StoragePath() string {
	return expandPath(c.Storage.Path)
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path // Return original if home dir lookup fails.
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
