package mcp

import (
	"context"

	"docscan/internal/logging"
	"docscan/internal/query"

	"github.com/mark3labs/mcp-go/server"
)

// Version is set via ldflags at build time.
var Version = "dev"

// DefaultServerName is the name announced to MCP clients.
const DefaultServerName = "docscan"

// DocumentService is the document API the tools expose. *query.Engine
// implements it.
type DocumentService interface {
	Search(ctx context.Context, req query.SearchRequest) (*query.SearchResult, error)
	GetContent(ctx context.Context, req query.ContentRequest) (*query.ContentResult, error)
	List(ctx context.Context, req query.ListRequest) (*query.ListResult, error)
}

// Server wraps an MCP server exposing the document tools.
type Server struct {
	docs   DocumentService
	logger *logging.AppLogger
	mcp    *server.MCPServer
}

// NewServer creates an MCP server backed by docs. An empty name falls back
// to DefaultServerName.
func NewServer(docs DocumentService, logger *logging.AppLogger, name string) *Server {
	if name == "" {
		name = DefaultServerName
	}

	s := &Server{
		docs:   docs,
		logger: logger,
	}

	s.mcp = server.NewMCPServer(
		name,
		Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchFilesTool, s.handleSearchFiles)
	s.mcp.AddTool(getFileContentTool, s.handleGetFileContent)
	s.mcp.AddTool(listFilesTool, s.handleListFiles)
}

// Serve runs the server on stdio until stdin closes or the process is
// signalled. Stdout carries protocol messages only; transport errors go
// through the application logger.
func (s *Server) Serve() error {
	s.logger.Info("Starting MCP server on stdio", "version", Version)
	return server.ServeStdio(s.mcp, server.WithErrorLogger(s.logger.StandardLog()))
}
