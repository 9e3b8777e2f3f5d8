package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/akasha/internal/bookmarks"
	"github.com/ziadkadry99/akasha/internal/config"
	"github.com/ziadkadry99/akasha/internal/db"
	"github.com/ziadkadry99/akasha/internal/lookup"
	"github.com/ziadkadry99/akasha/internal/lore"
	"github.com/ziadkadry99/akasha/internal/oracle"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `akasha init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openLibrary loads the embedded library, or the configured dataset
// directory when one is set.
func openLibrary(cfg *config.Config) (*lore.Library, error) {
	if cfg.Dataset.Dir == "" {
		return lore.Default()
	}
	include := cfg.Dataset.Include
	if len(include) == 0 {
		include = lore.DefaultInclude
	}
	lib, err := lore.LoadFS(os.DirFS(cfg.Dataset.Dir), include)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", cfg.Dataset.Dir, err)
	}
	stats := lib.Stats()
	logger.Debug("dataset loaded",
		zap.String("dir", cfg.Dataset.Dir),
		zap.Int("spheres", stats.Spheres),
		zap.Int("excerpts", stats.Excerpts))
	return lib, nil
}

// newResponder builds the oracle over lib, seeded when the config asks.
func newResponder(cfg *config.Config, lib *lore.Library) *oracle.Responder {
	var rnd oracle.Random
	if cfg.Oracle.Seed != 0 {
		rnd = oracle.Seeded(cfg.Oracle.Seed)
	}
	return oracle.New(lib.Excerpts(), rnd)
}

// openBookmarks opens the bookmark database and restores the saved set.
// The caller closes the returned DB.
func openBookmarks(ctx context.Context, cfg *config.Config) (*bookmarks.Store, *db.DB, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	store := bookmarks.NewStore(database, cfg.Bookmarks.Slot, logger)
	store.Load(ctx)
	return store, database, nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printExcerpt writes a transmission in the reading layout used by every
// listing command.
func printExcerpt(w io.Writer, e lore.Excerpt) {
	header := e.Source
	if e.SphereTitle != "" {
		header += " · " + e.SphereTitle
	}
	fmt.Fprintf(w, "%s\n%s\n", header, lookup.FormatDate(e.Date))
	if e.ID != "" {
		fmt.Fprintf(w, "id: %s\n", e.ID)
	}
	fmt.Fprintf(w, "\n  %s\n\n", strings.ReplaceAll(e.Content, "\n", "\n  "))
}
