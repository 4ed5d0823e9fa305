package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/tool"
)

func TestConfirmPolicyToolPatterns(t *testing.T) {
	policy := &ConfirmPolicy{ToolPatterns: []string{"write_*", "mcp_github_*"}}

	tests := []struct {
		name     string
		call     ai.ToolCall
		requires bool
	}{
		{"exact prefix match", ai.ToolCall{Name: "write_file"}, true},
		{"remote tool match", ai.ToolCall{Name: "mcp_github_create_issue"}, true},
		{"no match", ai.ToolCall{Name: "read_file"}, false},
		{"no match on infix", ai.ToolCall{Name: "file_write_helper"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.requires, policy.Requires(tt.call))
		})
	}
}

func TestConfirmPolicyShellPatterns(t *testing.T) {
	policy := &ConfirmPolicy{ShellPatterns: []string{"rm ", "git push"}}

	safe := ai.ToolCall{Name: "execute_shell_command", Arguments: `{"command":"ls -la"}`}
	assert.False(t, policy.Requires(safe))

	risky := ai.ToolCall{Name: "execute_shell_command", Arguments: `{"command":"git push origin main"}`}
	assert.True(t, policy.Requires(risky))

	// Shell patterns never gate other tools.
	other := ai.ToolCall{Name: "read_file", Arguments: `{"path":"rm "}`}
	assert.False(t, policy.Requires(other))

	// Unparseable shell arguments are gated rather than waved through.
	garbled := ai.ToolCall{Name: "execute_shell_command", Arguments: "not json"}
	assert.True(t, policy.Requires(garbled))
}

func TestNilPolicyRequiresNothing(t *testing.T) {
	var policy *ConfirmPolicy
	assert.False(t, policy.Requires(ai.ToolCall{Name: "write_file"}))
}

func TestDeniedCallIsRecordedAndNeverDispatched(t *testing.T) {
	var executed bool
	registry := lifecycleRegistry(
		tool.WithTool(ai.Tool{Name: "write_file", Parameters: []byte(`{"type":"object"}`)},
			func(ctx context.Context, call ai.ToolCall) (string, error) {
				executed = true
				return "wrote", nil
			}),
		tool.WithTool(ai.Tool{Name: "read_file", Parameters: []byte(`{"type":"object"}`)},
			func(ctx context.Context, call ai.ToolCall) (string, error) {
				return "contents", nil
			}),
	)
	provider := &mockProvider{responses: []mockResponse{
		{toolCalls: []ai.ToolCall{
			{ID: "c1", Name: "write_file", Arguments: "{}"},
			{ID: "c2", Name: "read_file", Arguments: "{}"},
		}},
		{toolCalls: []ai.ToolCall{finishCall("c3")}},
	}}

	policy := &ConfirmPolicy{ToolPatterns: []string{"write_*"}}
	deny := func(ctx context.Context, call ai.ToolCall) bool { return false }
	a := newTestAgent(provider, registry, WithConfirmation(policy, deny))

	_, err := a.RunTask(context.Background())
	require.NoError(t, err)

	msgs := toolMessages(a)
	require.GreaterOrEqual(t, len(msgs), 2)
	assert.Equal(t, "c1", msgs[0].ToolCallID)
	assert.Equal(t, deniedNotice, msgs[0].Content)
	assert.Equal(t, "contents", msgs[1].Content)
	assert.False(t, executed)
	assert.Equal(t, 0, a.Controller().Len())
}
