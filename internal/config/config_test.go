package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Bookmarks.Slot != "akasha_saved" {
		t.Errorf("expected default slot %q, got %q", "akasha_saved", cfg.Bookmarks.Slot)
	}
	if cfg.Oracle.ThinkDelayMS != 2000 {
		t.Errorf("expected default think delay 2000, got %d", cfg.Oracle.ThinkDelayMS)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Dataset.Dir != "" {
		t.Errorf("expected embedded dataset by default, got %q", cfg.Dataset.Dir)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.akasha.yml")

	original := DefaultConfig()
	original.Dataset.Dir = "records"
	original.Dataset.Include = []string{"**/*.json"}
	original.Oracle.ThinkDelayMS = 0
	original.Oracle.Seed = 42
	original.Server.Port = 9000
	original.LogLevel = "debug"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("AKASHA_LOG_LEVEL", "warn")
	t.Setenv("AKASHA_SERVER__PORT", "9191")
	t.Setenv("AKASHA_ORACLE__THINK_DELAY_MS", "0")
	t.Setenv("AKASHA_BOOKMARKS__SLOT", "elsewhere")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.LogLevel != "warn" {
		t.Errorf("log_level override failed: got %q", loaded.LogLevel)
	}
	if loaded.Server.Port != 9191 {
		t.Errorf("server.port override failed: got %d", loaded.Server.Port)
	}
	if loaded.Oracle.ThinkDelayMS != 0 {
		t.Errorf("oracle.think_delay_ms override failed: got %d", loaded.Oracle.ThinkDelayMS)
	}
	if loaded.Bookmarks.Slot != "elsewhere" {
		t.Errorf("bookmarks.slot override failed: got %q", loaded.Bookmarks.Slot)
	}
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"AKASHA_DATA_DIR":               "data_dir",
		"AKASHA_SERVER__ALLOW_ALL":      "server.allow_all",
		"AKASHA_ORACLE__THINK_DELAY_MS": "oracle.think_delay_ms",
	}
	for in, want := range tests {
		if got := envKey(in); got != want {
			t.Errorf("envKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty database", func(c *Config) { c.Bookmarks.Database = "" }, true},
		{"empty slot", func(c *Config) { c.Bookmarks.Slot = "" }, true},
		{"negative delay", func(c *Config) { c.Oracle.ThinkDelayMS = -1 }, true},
		{"zero delay", func(c *Config) { c.Oracle.ThinkDelayMS = 0 }, false},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatabasePath(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.DatabasePath(), filepath.Join(".akasha", "akasha.db"); got != want {
		t.Errorf("DatabasePath() = %q, want %q", got, want)
	}

	abs := filepath.Join(t.TempDir(), "saved.db")
	cfg.Bookmarks.Database = abs
	if got := cfg.DatabasePath(); got != abs {
		t.Errorf("absolute path not kept: %q", got)
	}
}

func TestThinkDelay(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ThinkDelay(); got != 2*time.Second {
		t.Errorf("ThinkDelay() = %v", got)
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.json", []string{"**/*.json"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, splitAndTrim(tt.input)); diff != "" {
			t.Errorf("splitAndTrim(%q) (-want +got):\n%s", tt.input, diff)
		}
	}
}
