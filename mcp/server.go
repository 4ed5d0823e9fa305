package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/tool"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name         string
	version      string
	instructions string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// WithInstructions sets usage instructions surfaced to MCP clients.
func WithInstructions(instructions string) ServerOption {
	return func(c *serverConfig) {
		c.instructions = instructions
	}
}

// NewServer creates an MCP server that exposes tools from a forge
// tool.Registry. Each tool in the registry is registered with the MCP
// server, allowing MCP clients to discover and call the tools.
func NewServer(registry *tool.Registry, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "forge-mcp-server",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
		server.WithInstructions(cfg.instructions),
	)

	for _, t := range registry.Tools() {
		s.AddTool(ToMCPTool(t), createMCPHandler(registry, t.Name))
	}

	return s
}

// createMCPHandler wraps registry execution of one tool as an MCP tool handler.
func createMCPHandler(registry *tool.Registry, toolName string) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsJSON := "{}"
		if req.Params.Arguments != nil {
			data, err := json.Marshal(req.Params.Arguments)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to marshal arguments: %v", err)), nil
			}
			argsJSON = string(data)
		}

		result, err := registry.Execute(ctx, ai.ToolCall{
			Name:      toolName,
			Arguments: argsJSON,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		text, ok := result.(tool.TextResult)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("tool %q returned a non-text result", toolName)), nil
		}
		if text.IsError {
			return mcp.NewToolResultError(text.Content), nil
		}
		return mcp.NewToolResultText(text.Content), nil
	}
}

// ServeStdio starts an MCP server that communicates over stdin/stdout.
// This is the standard transport for MCP servers invoked as subprocesses.
func ServeStdio(registry *tool.Registry, opts ...ServerOption) error {
	s := NewServer(registry, opts...)
	return server.ServeStdio(s)
}
