package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/recall-labs/recall/internal/engine"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes knowledge base tools.
type Server struct {
	engine            *engine.Engine
	defaultCollection string
	defaultTopK       int
	mcp               *server.MCPServer
}

// NewServer creates a new MCP server around the retrieval engine.
func NewServer(eng *engine.Engine, defaultCollection string, defaultTopK int) *Server {
	if defaultTopK <= 0 {
		defaultTopK = engine.DefaultTopK
	}
	s := &Server{
		engine:            eng,
		defaultCollection: defaultCollection,
		defaultTopK:       defaultTopK,
	}

	s.mcp = server.NewMCPServer(
		"recall",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchKnowledgeTool, s.handleSearchKnowledge)
	s.mcp.AddTool(ingestTextTool, s.handleIngestText)
	s.mcp.AddTool(resetCollectionTool, s.handleResetCollection)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
