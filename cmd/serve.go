package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/akasha/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing search, oracle, civilization, topic and timeline tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := openLibrary(cfg)
		if err != nil {
			return err
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		stats := lib.Stats()
		fmt.Fprintf(os.Stderr, "akasha MCP server started on stdio (spheres=%d, transmissions=%d)\n", stats.Spheres, stats.Excerpts)

		srv := mcpserver.NewServer(lib, newResponder(cfg, lib))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
