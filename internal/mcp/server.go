package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/akasha/internal/lore"
	"github.com/ziadkadry99/akasha/internal/oracle"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the archive's read-only queries.
type Server struct {
	lib       *lore.Library
	responder *oracle.Responder
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server over lib.
func NewServer(lib *lore.Library, responder *oracle.Responder) *Server {
	s := &Server{
		lib:       lib,
		responder: responder,
	}

	s.mcp = server.NewMCPServer(
		"akasha",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchExcerptsTool, s.handleSearchExcerpts)
	s.mcp.AddTool(askOracleTool, s.handleAskOracle)
	s.mcp.AddTool(civilizationTransmissionsTool, s.handleCivilizationTransmissions)
	s.mcp.AddTool(topicTransmissionsTool, s.handleTopicTransmissions)
	s.mcp.AddTool(timelineTool, s.handleTimeline)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
