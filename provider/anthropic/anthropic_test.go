package anthropic

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	ai "github.com/spetersoncode/forge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMessagesSeparatesSystem(t *testing.T) {
	msgs, system := convertMessages([]ai.Message{
		ai.NewSystemMessage("be terse"),
		ai.NewUserMessage("hello"),
		ai.NewAssistantMessage("hi"),
	})

	require.Len(t, system, 1)
	assert.Equal(t, "be terse", system[0].Text)
	require.Len(t, msgs, 2)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[0].Role)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[1].Role)
}

func TestConvertMessagesSkipsEmptyContent(t *testing.T) {
	msgs, system := convertMessages([]ai.Message{
		ai.NewSystemMessage(""),
		ai.NewUserMessage(""),
		ai.NewUserMessage("real"),
	})

	assert.Empty(t, system)
	require.Len(t, msgs, 1)
}

func TestConvertMessagesMergesParallelToolResults(t *testing.T) {
	msgs, _ := convertMessages([]ai.Message{
		ai.NewUserMessage("go"),
		{
			Role: ai.RoleAssistant,
			ToolCalls: []ai.ToolCall{
				{ID: "call_1", Name: "shell", Arguments: `{"command":"ls"}`},
				{ID: "call_2", Name: "fetch", Arguments: `{"url":"https://example.com"}`},
			},
		},
		ai.NewToolMessage("call_1", "shell", "file.txt"),
		ai.NewToolMessage("call_2", "fetch", "<html>"),
		ai.NewUserMessage("thanks"),
	})

	// Both tool results collapse into one user message between the
	// assistant turn and the trailing user message.
	require.Len(t, msgs, 4)
	assert.Equal(t, anthropic.MessageParamRoleAssistant, msgs[1].Role)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[2].Role)
	assert.Len(t, msgs[2].Content, 2)
	assert.Equal(t, anthropic.MessageParamRoleUser, msgs[3].Role)
}

func TestConvertTools(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"command": {"type": "string"}},
		"required": ["command"]
	}`)
	result := convertTools([]ai.Tool{
		{Name: "shell", Description: "Run a command", Parameters: schema},
	})

	require.Len(t, result, 1)
	require.NotNil(t, result[0].OfTool)
	assert.Equal(t, "shell", result[0].OfTool.Name)
	assert.Equal(t, []string{"command"}, result[0].OfTool.InputSchema.Required)
}

func TestConvertToolChoice(t *testing.T) {
	assert.NotNil(t, convertToolChoice(ai.ToolChoiceNone).OfNone)
	assert.NotNil(t, convertToolChoice(ai.ToolChoiceRequired).OfAny)
	assert.NotNil(t, convertToolChoice(ai.ToolChoiceAuto).OfAuto)
}

func TestCategorizeStatusCode(t *testing.T) {
	tests := []struct {
		code int
		want ai.ErrorCategory
	}{
		{429, ai.ErrorTransient},
		{529, ai.ErrorTransient},
		{500, ai.ErrorTransient},
		{503, ai.ErrorTransient},
		{401, ai.ErrorPermanent},
		{403, ai.ErrorPermanent},
		{400, ai.ErrorUserInput},
		{404, ai.ErrorUserInput},
		{418, ai.ErrorPermanent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, categorizeStatusCode(tt.code), "status %d", tt.code)
	}
}

func TestParseRetryAfter(t *testing.T) {
	resp := &http.Response{Header: http.Header{"Retry-After": []string{"30"}}}
	assert.Equal(t, 30*time.Second, parseRetryAfter(resp))

	assert.Zero(t, parseRetryAfter(nil))
	assert.Zero(t, parseRetryAfter(&http.Response{Header: http.Header{}}))
	assert.Zero(t, parseRetryAfter(&http.Response{Header: http.Header{"Retry-After": []string{"garbage"}}}))
}

func TestWrapErrorPassesThroughNonAPIErrors(t *testing.T) {
	err := assert.AnError
	assert.Equal(t, err, wrapError(err))
	assert.NoError(t, wrapError(nil))
}
