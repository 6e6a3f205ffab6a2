// Package mcp exposes the compiled design tokens to coding agents over the
// Model Context Protocol.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/tokengen/pkg/generator"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for tokengen, exposing token query tools.
type Server struct {
	mcpServer *server.MCPServer
	gen       *generator.Generator
	logger    *slog.Logger
}

// NewServer creates a new MCP server backed by gen. Every tool call compiles
// the current input, so edits to design.json are picked up without a
// restart. A nil logger uses slog.Default().
func NewServer(gen *generator.Generator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{gen: gen, logger: logger}

	s.mcpServer = server.NewMCPServer(
		"tokengen",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(s.loggingMiddleware()),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listTokensTool(), Handler: s.handleListTokens},
		server.ServerTool{Tool: getTokenTool(), Handler: s.handleGetToken},
		server.ServerTool{Tool: getStylesheetTool(), Handler: s.handleGetStylesheet},
		server.ServerTool{Tool: getPresetTool(), Handler: s.handleGetPreset},
		server.ServerTool{Tool: getScaleTool(), Handler: s.handleGetScale},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
