// Package mcp exposes the chunking pipeline as an MCP stdio server with
// two tools: chunk_repository runs the pipeline, get_run_stats reports on
// recorded runs.
package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"

	"repochunk/internal/storage"
)

const (
	// ServerName is the MCP server name
	ServerName = "repochunk"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
	// DefaultDBPath is the default location for the run database
	DefaultDBPath = "~/.repochunk/repochunk.db"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp   *server.MCPServer
	store storage.Storage
}

// NewServer creates a new MCP server instance backed by the run database
// file at dbPath. The path has the same meaning as the chunk command's
// database flag.
func NewServer(dbPath string) (*Server, error) {
	if dbPath == "" || dbPath == DefaultDBPath {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".repochunk", "repochunk.db")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	s := &Server{
		mcp:   server.NewMCPServer(ServerName, ServerVersion),
		store: store,
	}
	s.registerTools()

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.store.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(chunkRepositoryTool(), s.handleChunkRepository)
	s.mcp.AddTool(getRunStatsTool(), s.handleGetRunStats)
}
