// Package mcp provides MCP (Model Context Protocol) integration for forge.
//
// MCP is a protocol that enables AI assistants to access external tools and data.
// This package provides bidirectional integration:
//
//   - Server: Expose a forge [tool.Registry] as an MCP server, allowing MCP
//     clients to discover and use your tools.
//   - Client: Connect to MCP servers and use their tools through
//     [RemoteRegistry]. Remote tools are surfaced under fully qualified names
//     of the form mcp_<server>_<tool> so calls can be routed back to the
//     owning server.
//
// # Exposing Tools as an MCP Server
//
//	registry := tool.NewRegistry().Add(
//	    tool.NewShellTool(),
//	    tool.FileTools()...,
//	)
//
//	// Serve over stdio (for subprocess-based MCP clients)
//	if err := mcp.ServeStdio(registry); err != nil {
//	    log.Fatal(err)
//	}
//
// # Consuming MCP Servers
//
//	remote, err := mcp.NewRemoteRegistry(ctx, "tools", "./forge-tools", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/tool"
)

// ToMCPTool converts a forge Tool to an MCP Tool.
// The forge Tool.Parameters JSON schema is used as the MCP Tool's RawInputSchema.
func ToMCPTool(t ai.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
}

// FromMCPTool converts an MCP Tool to a forge Tool.
// It extracts the JSON schema from either RawInputSchema or InputSchema.
func FromMCPTool(t mcp.Tool) ai.Tool {
	var schema json.RawMessage

	// Prefer raw schema if available
	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else {
		data, err := json.Marshal(t.InputSchema)
		if err == nil {
			schema = data
		}
	}

	return ai.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// ToMCPCallToolRequest converts a forge ToolCall to an MCP CallToolRequest.
// The name must already be the remote (unqualified) tool name.
func ToMCPCallToolRequest(name, arguments string) mcp.CallToolRequest {
	var args any
	if arguments != "" {
		// Try to parse as JSON
		if err := json.Unmarshal([]byte(arguments), &args); err != nil {
			// If not valid JSON, use the string directly
			args = arguments
		}
	}

	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// FromMCPCallToolResult converts an MCP CallToolResult to a tool.Result.
// The result content is extracted and concatenated as text. A result with
// no usable content produces a standard notice so the model never sees an
// empty tool message.
func FromMCPCallToolResult(result *mcp.CallToolResult) tool.Result {
	if result == nil {
		return tool.TextResult{Content: "tool server returned no result", IsError: true}
	}

	var textParts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			textParts = append(textParts, content.Text)
		case *mcp.TextContent:
			textParts = append(textParts, content.Text)
		default:
			// For non-text content, try to marshal as JSON
			if data, err := json.Marshal(content); err == nil {
				textParts = append(textParts, string(data))
			}
		}
	}

	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			textParts = append(textParts, string(data))
		}
	}

	content := strings.Join(textParts, "\n")
	if content == "" && !result.IsError {
		content = "tool server returned no content"
	}

	return tool.TextResult{Content: content, IsError: result.IsError}
}
