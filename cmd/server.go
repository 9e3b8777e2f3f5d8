package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/akasha/internal/bookmarks"
	"github.com/ziadkadry99/akasha/internal/catalog"
	"github.com/ziadkadry99/akasha/internal/chat"
	"github.com/ziadkadry99/akasha/internal/config"
	"github.com/ziadkadry99/akasha/internal/lore"
	"github.com/ziadkadry99/akasha/internal/oracle"
	"github.com/ziadkadry99/akasha/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API and oracle websocket",
	Long:  `Starts the akasha HTTP server with the content API, saved transmissions and the websocket oracle chat.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("allow-all") {
			cfg.Server.AllowAll, _ = cmd.Flags().GetBool("allow-all")
		}

		lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		store, database, err := openBookmarks(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAll,
		}, lib, logger)

		registerAllRoutes(srv, cfg, lib, newResponder(cfg, lib), store)

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("server shutdown", zap.Error(err))
			}
		}()

		stats := lib.Stats()
		fmt.Fprintf(os.Stderr, "akasha server %s starting on %s\n", Version, srv.Addr())
		fmt.Fprintf(os.Stderr, "  Database: %s\n", database.Path())
		fmt.Fprintf(os.Stderr, "  Spheres: %d, transmissions: %d, civilizations: %d\n",
			stats.Spheres, stats.Excerpts, stats.Civilizations)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// registerAllRoutes wires up every feature's routes.
func registerAllRoutes(srv *server.Server, cfg *config.Config, lib *lore.Library, responder *oracle.Responder, store *bookmarks.Store) {
	r := srv.Router()

	// Spheres, excerpts, civilizations, topics, timeline
	catalog.RegisterRoutes(r, catalog.New(lib, responder, logger))

	// Saved transmissions
	bookmarks.RegisterRoutes(r, store)

	// Oracle chat
	chat.RegisterRoutes(r, chat.New(responder, cfg.ThinkDelay(), logger))
}

func init() {
	serverCmd.Flags().Int("port", 8080, "Port to listen on (overrides server.port)")
	serverCmd.Flags().Bool("allow-all", false, "Allow all CORS origins (overrides server.allow_all)")
	rootCmd.AddCommand(serverCmd)
}
