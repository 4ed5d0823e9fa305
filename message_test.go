package forge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleConstants(t *testing.T) {
	assert.Equal(t, Role("user"), RoleUser)
	assert.Equal(t, Role("assistant"), RoleAssistant)
	assert.Equal(t, Role("system"), RoleSystem)
	assert.Equal(t, Role("tool"), RoleTool)
}

func TestMessageConstructors(t *testing.T) {
	sys := NewSystemMessage("be helpful")
	assert.Equal(t, RoleSystem, sys.Role)
	assert.Equal(t, "be helpful", sys.Content)

	user := NewUserMessage("hello")
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "hello", user.Content)

	asst := NewAssistantMessage("hi there")
	assert.Equal(t, RoleAssistant, asst.Role)
	assert.Equal(t, "hi there", asst.Content)
}

func TestNewToolMessage(t *testing.T) {
	msg := NewToolMessage("call-1", "read_file", "file contents")
	assert.Equal(t, RoleTool, msg.Role)
	assert.Equal(t, "call-1", msg.ToolCallID)
	assert.Equal(t, "read_file", msg.ToolName)
	assert.Equal(t, "file contents", msg.Content)
	assert.Empty(t, msg.ToolCalls)
}

func TestGenerateSessionID(t *testing.T) {
	a := GenerateSessionID()
	b := GenerateSessionID()
	assert.True(t, strings.HasPrefix(a, "session-"))
	assert.NotEqual(t, a, b)
}

func TestResponseMessage_DropsReasoning(t *testing.T) {
	resp := &Response{
		Content:   "done",
		Reasoning: "internal chain of thought",
		ToolCalls: []ToolCall{{ID: "call-1", Name: "echo", Arguments: "{}"}},
	}

	msg := resp.Message()
	assert.Equal(t, RoleAssistant, msg.Role)
	assert.Equal(t, "done", msg.Content)
	assert.Len(t, msg.ToolCalls, 1)
	assert.NotContains(t, msg.Content, "chain of thought")
}

func TestUsageTotal(t *testing.T) {
	u := Usage{InputTokens: 100, OutputTokens: 25}
	assert.Equal(t, 125, u.Total())
}
