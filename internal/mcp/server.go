// ABOUTME: MCP server initialization and configuration for wordsim.
// ABOUTME: Sets up server with similarity search tools for AI agent access.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/wordsim/internal/session"
)

// Server wraps the MCP server with a search session.
type Server struct {
	mcp     *gomcp.Server
	session *session.Session
	version string
}

// ServerOption configures optional Server settings.
type ServerOption func(*Server)

// WithVersion sets the implementation version reported to clients.
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		s.version = version
	}
}

// NewServer creates an MCP server exposing similarity search over sess.
func NewServer(sess *session.Session, opts ...ServerOption) (*Server, error) {
	if sess == nil {
		return nil, fmt.Errorf("search session is required")
	}

	s := &Server{
		session: sess,
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "wordsim",
			Version: s.version,
		},
		nil,
	)

	s.registerSearchTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
