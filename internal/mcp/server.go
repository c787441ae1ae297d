// ABOUTME: MCP server setup for the habit tracker.
// ABOUTME: Wraps the MCP server around a single habit Store.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/habits/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with habit store access.
type Server struct {
	mcpServer *mcp.Server
	store     *tracker.Store
}

// NewServer creates a new MCP server backed by store.
func NewServer(store *tracker.Store) (*Server, error) {
	if store == nil {
		return nil, errors.New("mcp: nil store")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "habits",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     store,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
