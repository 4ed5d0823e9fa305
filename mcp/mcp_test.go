package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/tool"
)

func TestQualifiedName(t *testing.T) {
	assert.Equal(t, "mcp_tools_execute_shell_command", QualifiedName("tools", "execute_shell_command"))
}

func TestToMCPTool(t *testing.T) {
	t.Run("converts forge tool to MCP tool", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object","properties":{"name":{"type":"string"}}}`)
		forgeTool := ai.Tool{
			Name:        "greet",
			Description: "Greet someone",
			Parameters:  schema,
		}

		mcpTool := ToMCPTool(forgeTool)

		assert.Equal(t, "greet", mcpTool.Name)
		assert.Equal(t, "Greet someone", mcpTool.Description)
		assert.Equal(t, schema, mcpTool.RawInputSchema)
	})
}

func TestFromMCPTool(t *testing.T) {
	t.Run("converts MCP tool with raw schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object"}`)
		mcpTool := mcp.NewToolWithRawSchema("weather", "Get weather", schema)

		forgeTool := FromMCPTool(mcpTool)

		assert.Equal(t, "weather", forgeTool.Name)
		assert.Equal(t, "Get weather", forgeTool.Description)
		assert.JSONEq(t, `{"type":"object"}`, string(forgeTool.Parameters))
	})

	t.Run("converts MCP tool with structured schema", func(t *testing.T) {
		mcpTool := mcp.NewTool("search",
			mcp.WithDescription("Search the web"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		)

		forgeTool := FromMCPTool(mcpTool)

		assert.Equal(t, "search", forgeTool.Name)
		assert.NotNil(t, forgeTool.Parameters)
	})
}

func TestToMCPCallToolRequest(t *testing.T) {
	t.Run("parses JSON arguments", func(t *testing.T) {
		req := ToMCPCallToolRequest("calculate", `{"a": 10, "b": 5}`)

		assert.Equal(t, "calculate", req.Params.Name)
		args, ok := req.Params.Arguments.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, float64(10), args["a"])
		assert.Equal(t, float64(5), args["b"])
	})

	t.Run("handles empty arguments", func(t *testing.T) {
		req := ToMCPCallToolRequest("noop", "")
		assert.Nil(t, req.Params.Arguments)
	})

	t.Run("passes through non-JSON arguments", func(t *testing.T) {
		req := ToMCPCallToolRequest("noop", "not json")
		assert.Equal(t, "not json", req.Params.Arguments)
	})
}

func TestFromMCPCallToolResult(t *testing.T) {
	t.Run("extracts text content", func(t *testing.T) {
		result := FromMCPCallToolResult(mcp.NewToolResultText("hello"))

		text, ok := result.(tool.TextResult)
		require.True(t, ok)
		assert.Equal(t, "hello", text.Content)
		assert.False(t, text.IsError)
	})

	t.Run("marks error results", func(t *testing.T) {
		result := FromMCPCallToolResult(mcp.NewToolResultError("it broke"))

		text := result.(tool.TextResult)
		assert.True(t, text.IsError)
		assert.Equal(t, "it broke", text.Content)
	})

	t.Run("nil result is an error", func(t *testing.T) {
		result := FromMCPCallToolResult(nil)

		text := result.(tool.TextResult)
		assert.True(t, text.IsError)
	})

	t.Run("empty success content gets a notice", func(t *testing.T) {
		result := FromMCPCallToolResult(&mcp.CallToolResult{})

		text := result.(tool.TextResult)
		assert.False(t, text.IsError)
		assert.Equal(t, "tool server returned no content", text.Content)
	})
}

func TestNewServerExposesRegistryTools(t *testing.T) {
	registry := tool.NewRegistry().Add(
		tool.Func("echo", "Echo input", func(ctx context.Context, args struct {
			Text string `json:"text" required:"true"`
		}) (string, error) {
			return args.Text, nil
		}),
	)

	s := NewServer(registry, WithName("test-server"), WithVersion("0.1.0"))
	assert.NotNil(t, s)
}
