// Package mcp re-exports the MCP server so embedders do not depend on the
// internal infrastructure layout.
package mcp

import infra "github.com/felixgeelhaar/ricemill/internal/infrastructure/mcp"

// Server exposes the MCP server implementation from the infrastructure layer.
type Server = infra.Server

// NewServer constructs an MCP server rooted at the provided workspace path.
func NewServer(root string) (*Server, error) {
	return infra.NewServer(root)
}
