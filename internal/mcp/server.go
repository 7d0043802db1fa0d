package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/robertwhiffin/ai-slide-generator-sub002/internal/composer"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes presentation tools, letting AI
// agents drive deck generation and editing over stdio.
type Server struct {
	engine *composer.Engine
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server backed by the composer engine.
func NewServer(engine *composer.Engine) *Server {
	s := &Server{
		engine: engine,
	}

	s.mcp = server.NewMCPServer(
		"slidegen",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(createPresentationTool, s.handleCreatePresentation)
	s.mcp.AddTool(editPresentationTool, s.handleEditPresentation)
	s.mcp.AddTool(getPresentationTool, s.handleGetPresentation)
	s.mcp.AddTool(listPresentationsTool, s.handleListPresentations)
	s.mcp.AddTool(exportPresentationTool, s.handleExportPresentation)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
