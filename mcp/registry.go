package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/tool"
)

// QualifiedName returns the fully qualified name a remote tool is exposed
// under: mcp_<server>_<tool>.
func QualifiedName(server, toolName string) string {
	return fmt.Sprintf("mcp_%s_%s", server, toolName)
}

// RemoteRegistry provides access to tools from one MCP server. Tools are
// exposed under fully qualified names (mcp_<server>_<tool>) so multiple
// servers can be merged into a single tool set without collisions.
//
// RemoteRegistry is safe for concurrent use. The tool list is cached
// locally and can be refreshed with [RemoteRegistry.Refresh].
type RemoteRegistry struct {
	server string
	client *client.Client

	mu    sync.RWMutex
	tools map[string]ai.Tool // keyed by qualified name
}

// NewRemoteRegistry creates a RemoteRegistry connected to an MCP server via
// stdio. The server name becomes the qualification prefix; command is the
// path to the server executable, and args are passed to it.
//
// Example:
//
//	registry, err := mcp.NewRemoteRegistry(ctx, "tools", "./forge-tools", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer registry.Close()
func NewRemoteRegistry(ctx context.Context, serverName, command string, env []string, args ...string) (*RemoteRegistry, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}

	return newRemoteRegistryFromClient(ctx, serverName, c)
}

// NewRemoteRegistrySSE creates a RemoteRegistry connected to an MCP server via SSE.
func NewRemoteRegistrySSE(ctx context.Context, serverName, baseURL string) (*RemoteRegistry, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE MCP client: %w", err)
	}

	return newRemoteRegistryFromClient(ctx, serverName, c)
}

// NewRemoteRegistryFromClient creates a RemoteRegistry from an existing MCP
// client. This function will start and initialize it and fetch tools.
func NewRemoteRegistryFromClient(ctx context.Context, serverName string, c *client.Client) (*RemoteRegistry, error) {
	return newRemoteRegistryFromClient(ctx, serverName, c)
}

func newRemoteRegistryFromClient(ctx context.Context, serverName string, c *client.Client) (*RemoteRegistry, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "forge-mcp-client",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	r := &RemoteRegistry{
		server: serverName,
		client: c,
		tools:  make(map[string]ai.Tool),
	}

	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return r, nil
}

// Close closes the connection to the MCP server.
func (r *RemoteRegistry) Close() error {
	return r.client.Close()
}

// Server returns the server name used as the qualification prefix.
func (r *RemoteRegistry) Server() string {
	return r.server
}

// Refresh fetches the current list of tools from the MCP server.
// This can be called to update the tool list if the server's tools change.
func (r *RemoteRegistry) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]ai.Tool, len(result.Tools))
	for _, t := range result.Tools {
		converted := FromMCPTool(t)
		converted.Name = QualifiedName(r.server, t.Name)
		r.tools[converted.Name] = converted
	}

	return nil
}

// Tools returns all tools available from the MCP server, under their
// qualified names.
func (r *RemoteRegistry) Tools() []ai.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]ai.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		tools = append(tools, t)
	}
	return tools
}

// GetTool retrieves a tool definition by its qualified name.
func (r *RemoteRegistry) GetTool(name string) (ai.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// Names returns the qualified names of all available tools.
func (r *RemoteRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Len returns the number of available tools.
func (r *RemoteRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Has returns true if the registry has a tool with the given qualified name.
func (r *RemoteRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Execute calls a tool on the remote MCP server. The call name must be the
// qualified name; it is translated back to the server's local tool name.
// Remote failures are surfaced as error results, not Go errors, so the
// model can see them.
func (r *RemoteRegistry) Execute(ctx context.Context, call ai.ToolCall) (tool.Result, error) {
	remote := strings.TrimPrefix(call.Name, "mcp_"+r.server+"_")
	if remote == call.Name {
		return nil, fmt.Errorf("mcp: tool %q does not belong to server %q", call.Name, r.server)
	}

	result, err := r.client.CallTool(ctx, ToMCPCallToolRequest(remote, call.Arguments))
	if err != nil {
		return tool.TextResult{Content: err.Error(), IsError: true}, nil
	}

	return FromMCPCallToolResult(result), nil
}
