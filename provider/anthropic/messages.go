package anthropic

import (
	"encoding/json"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/spetersoncode/forge"
)

func convertMessages(messages []ai.Message) ([]anthropic.MessageParam, []anthropic.TextBlockParam) {
	var result []anthropic.MessageParam
	var system []anthropic.TextBlockParam
	var toolBlocks []anthropic.ContentBlockParamUnion

	// Consecutive tool messages answer parallel tool calls from the same
	// assistant turn. The API wants all of their tool_result blocks in a
	// single user message, so buffer them and flush on the next role change.
	flushToolBlocks := func() {
		if len(toolBlocks) == 0 {
			return
		}
		result = append(result, anthropic.MessageParam{
			Role:    anthropic.MessageParamRoleUser,
			Content: toolBlocks,
		})
		toolBlocks = nil
	}

	for _, msg := range messages {
		if msg.Role != ai.RoleTool {
			flushToolBlocks()
		}
		switch msg.Role {
		case ai.RoleSystem:
			// Skip empty system messages - the API rejects empty text blocks
			if msg.Content != "" {
				system = append(system, anthropic.TextBlockParam{Text: msg.Content})
			}
		case ai.RoleUser:
			if msg.Content != "" {
				result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		case ai.RoleAssistant:
			if len(msg.ToolCalls) > 0 {
				var blocks []anthropic.ContentBlockParamUnion
				if msg.Content != "" {
					blocks = append(blocks, anthropic.NewTextBlock(msg.Content))
				}
				for _, tc := range msg.ToolCalls {
					var input any
					json.Unmarshal([]byte(tc.Arguments), &input)
					blocks = append(blocks, anthropic.NewToolUseBlock(tc.ID, input, tc.Name))
				}
				result = append(result, anthropic.MessageParam{
					Role:    anthropic.MessageParamRoleAssistant,
					Content: blocks,
				})
			} else if msg.Content != "" {
				result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
			}
		case ai.RoleTool:
			// Tool results are sent as user messages with tool_result blocks
			toolBlocks = append(toolBlocks, anthropic.NewToolResultBlock(msg.ToolCallID, msg.Content, false))
		default:
			if msg.Content != "" {
				result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
			}
		}
	}
	flushToolBlocks()

	return result, system
}
