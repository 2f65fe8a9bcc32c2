// Package mcp provides the Model Context Protocol server for
// gitprompts. It exposes the repository views as MCP prompts, plus
// leaner raw-record tools for agents that compose their own prompts.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/gitprompts/internal/views"
)

// NewServer creates an MCP server with all prompts and tools registered.
func NewServer(version string, service *views.Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gitprompts",
		Version: version,
	}, nil)
	registerPrompts(server, service)
	registerTools(server, service)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools. Every
// gitprompts tool is read-only; the server never mutates the repository.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}
