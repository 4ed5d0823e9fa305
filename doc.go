// Package forge provides the building blocks for running autonomous
// coding agents against LLM providers.
//
// The forge library wraps provider-specific APIs behind a single
// [ChatProvider] interface and layers an agent execution engine on top:
// an agent holds a conversation, asks the model for the next step,
// dispatches the tool calls the model requests, and loops until the
// task is finished or interrupted.
//
// # Core Interfaces
//
// The root package defines the shared vocabulary:
//
//   - [ChatProvider]: send conversations and receive responses (text, streaming, tool calls)
//   - [Message], [ToolCall]: the conversation wire format
//   - [Tool], [SchemaFor]: tool declarations with reflected JSON schemas
//
// # Basic Usage
//
// Send a simple chat message:
//
//	p := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"))
//
//	messages := []forge.Message{
//	    forge.NewUserMessage("What is the capital of France?"),
//	}
//
//	resp, err := p.Chat(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content)
//
// # Configuration Options
//
// Customize requests with functional options:
//
//	resp, err := p.Chat(ctx, messages,
//	    forge.WithModel("claude-sonnet-4-5"),
//	    forge.WithMaxTokens(4096),
//	    forge.WithTemperature(0.7),
//	)
//
// # Tool Calling
//
// Declare tools with reflected schemas and register handlers:
//
//	type weatherArgs struct {
//	    Location string `json:"location" desc:"City name" required:"true"`
//	}
//
//	tool := forge.Tool{
//	    Name:        "get_weather",
//	    Description: "Get current weather for a location",
//	    Parameters:  forge.MustSchemaFor[weatherArgs](),
//	}
//
// # Higher-Level Abstractions
//
// For running full tasks, see:
//
//   - [github.com/spetersoncode/forge/agent]: the agent loop, interrupts, and orchestration
//   - [github.com/spetersoncode/forge/tool]: the tool registry and built-in tools
//   - [github.com/spetersoncode/forge/mcp]: MCP client and server integration
//   - [github.com/spetersoncode/forge/history]: conversation persistence and compaction
//   - [github.com/spetersoncode/forge/retry]: retry logic with exponential backoff
package forge
