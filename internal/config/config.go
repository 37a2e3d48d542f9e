// Package config loads jotter settings from defaults, an optional
// jotter.yaml, JOTTER_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aretw0/jotter/internal/platform"
	"github.com/aretw0/jotter/pkg/adapters/fs"
)

// Config keys.
const (
	KeyFile        = "file"
	KeyBackend     = "backend"
	KeyNotesDir    = "notes_dir"
	KeyReadOnly    = "read_only"
	KeyLock        = "lock"
	KeyLockTimeout = "lock_timeout"
	KeyLogLevel    = "log_level"
)

// EnvPrefix is prepended to every key when read from the environment.
const EnvPrefix = "JOTTER"

// Config is the resolved configuration of a jotter invocation.
type Config struct {
	File        string        `yaml:"file" mapstructure:"file"`
	Backend     string        `yaml:"backend" mapstructure:"backend"`
	NotesDir    string        `yaml:"notes_dir" mapstructure:"notes_dir"`
	ReadOnly    bool          `yaml:"read_only" mapstructure:"read_only"`
	Lock        bool          `yaml:"lock" mapstructure:"lock"`
	LockTimeout time.Duration `yaml:"lock_timeout" mapstructure:"lock_timeout"`
	LogLevel    string        `yaml:"log_level" mapstructure:"log_level"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() *Config {
	return &Config{
		File:        "notes.json",
		Backend:     platform.BackendDocument,
		NotesDir:    ".",
		LockTimeout: fs.DefaultLockTimeout,
		LogLevel:    "info",
	}
}

// New returns a viper instance with defaults, search paths and environment
// binding in place. Flags are bound on top of it by the caller.
func New() *viper.Viper {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault(KeyFile, d.File)
	v.SetDefault(KeyBackend, d.Backend)
	v.SetDefault(KeyNotesDir, d.NotesDir)
	v.SetDefault(KeyReadOnly, d.ReadOnly)
	v.SetDefault(KeyLock, d.Lock)
	v.SetDefault(KeyLockTimeout, d.LockTimeout)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetConfigName("jotter")
	v.SetConfigType("yaml")

	// Search paths
	v.AddConfigPath(".")
	if root, err := platform.FindRoot("."); err == nil {
		v.AddConfigPath(root)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "jotter"))
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "jotter"))
	}

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file (configFile if set, otherwise the first
// jotter.yaml on the search path) and returns the validated configuration.
// A missing jotter.yaml is not an error; a missing explicit file is.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no backend can honour.
func (c *Config) Validate() error {
	switch c.Backend {
	case platform.BackendDocument:
		if c.File == "" {
			return fmt.Errorf("config: %s cannot be empty", KeyFile)
		}
	case platform.BackendStamped:
		if c.NotesDir == "" {
			return fmt.Errorf("config: %s cannot be empty", KeyNotesDir)
		}
	default:
		return fmt.Errorf("config: unknown backend %q (want %q or %q)", c.Backend, platform.BackendDocument, platform.BackendStamped)
	}
	if c.LockTimeout < 0 {
		return fmt.Errorf("config: %s cannot be negative", KeyLockTimeout)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: invalid %s %q: %w", KeyLogLevel, c.LogLevel, err)
	}
	return level, nil
}

// Location is the storage URI of the selected backend.
func (c *Config) Location() string {
	if c.Backend == platform.BackendStamped {
		return c.NotesDir
	}
	return c.File
}

// Options maps the configuration onto platform options.
func (c *Config) Options() []platform.Option {
	return []platform.Option{
		platform.WithBackend(c.Backend),
		platform.WithReadOnly(c.ReadOnly),
		platform.WithLock(c.Lock),
		platform.WithLockTimeout(c.LockTimeout),
	}
}
