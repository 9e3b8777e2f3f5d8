package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nested keys: AKASHA_SERVER__PORT sets server.port.
const EnvPrefix = "AKASHA_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (AKASHA_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps AKASHA_ORACLE__THINK_DELAY_MS to oracle.think_delay_ms.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.Bookmarks.Database == "" {
		return fmt.Errorf("bookmarks.database is required")
	}
	if c.Bookmarks.Slot == "" {
		return fmt.Errorf("bookmarks.slot is required")
	}
	if c.Oracle.ThinkDelayMS < 0 {
		return fmt.Errorf("oracle.think_delay_ms must be non-negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	return nil
}

// DatabasePath resolves the bookmark database location.
func (c *Config) DatabasePath() string {
	if filepath.IsAbs(c.Bookmarks.Database) {
		return c.Bookmarks.Database
	}
	return filepath.Join(c.DataDir, c.Bookmarks.Database)
}

// ThinkDelay is the oracle's cosmetic pause before answering.
func (c *Config) ThinkDelay() time.Duration {
	return time.Duration(c.Oracle.ThinkDelayMS) * time.Millisecond
}
