package agent

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/history"
)

func TestNewOrchestratorValidation(t *testing.T) {
	_, err := NewOrchestrator(Config{Model: "m"})
	assert.Error(t, err)

	_, err = NewOrchestrator(Config{Provider: &mockProvider{}})
	assert.Error(t, err)
}

func TestOrchestratorRunTaskPersistsHistory(t *testing.T) {
	dir := t.TempDir()
	provider := &mockProvider{responses: []mockResponse{
		{toolCalls: []ai.ToolCall{finishCall("c1")}},
	}}

	o, err := NewOrchestrator(Config{
		Provider:   provider,
		Model:      "test-model",
		ProjectDir: dir,
		Parameters: []Parameter{{Name: "task", Description: "The task.", Value: "say hello"}},
	})
	require.NoError(t, err)
	defer o.Close()

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", out.Result)

	files, err := o.Store().List()
	require.NoError(t, err)
	require.Len(t, files, 1)

	snap, err := o.Store().Load(files[0])
	require.NoError(t, err)
	assert.Equal(t, "main", snap.AgentName)
	assert.Equal(t, "test-model", snap.Model)
	assert.NotEmpty(t, snap.Messages)

	summaries, err := o.Store().Summaries()
	require.NoError(t, err)
	assert.Equal(t, []string{"did the thing"}, summaries)
}

func TestOrchestratorToolSetIncludesBuiltins(t *testing.T) {
	o, err := NewOrchestrator(Config{
		Provider:   &mockProvider{},
		Model:      "test-model",
		ProjectDir: t.TempDir(),
	})
	require.NoError(t, err)
	defer o.Close()

	for _, name := range []string{
		"finish_task",
		"shorten_conversation",
		"ask_user",
		"execute_shell_command",
		"read_file",
		"write_file",
		"edit_file",
		"todo_add",
		"todo_complete",
		"todo_list",
		"fetch",
		"launch_research_agent",
	} {
		assert.True(t, o.Agent().tools.Has(name), "missing tool %s", name)
	}
}

func TestOrchestratorResume(t *testing.T) {
	dir := t.TempDir()
	store := history.NewStore(dir)

	saved := lifecycleTranscript()
	_, err := store.Save("main", "test-model", saved)
	require.NoError(t, err)

	provider := &mockProvider{responses: []mockResponse{
		{toolCalls: []ai.ToolCall{finishCall("c1")}},
	}}
	o, err := NewOrchestrator(Config{
		Provider:   provider,
		Model:      "test-model",
		ProjectDir: dir,
		Resume:     true,
	})
	require.NoError(t, err)
	defer o.Close()

	// The resumed transcript was loaded as-is.
	require.Equal(t, saved.Len(), o.Agent().Transcript().Len())

	_, err = o.Run(context.Background())
	require.NoError(t, err)

	// Stepping on the resumed transcript did not insert a second start
	// message.
	var starts int
	for _, msg := range o.Agent().Transcript().Messages() {
		if msg.Role == ai.RoleUser && len(msg.Content) > 0 && msg.Content == saved.Messages()[0].Content {
			starts++
		}
	}
	assert.Equal(t, 1, starts)
}

func TestOrchestratorResumeRejectsEmptySnapshot(t *testing.T) {
	dir := t.TempDir()
	histDir := filepath.Join(dir, ".forge", "history")
	require.NoError(t, os.MkdirAll(histDir, 0o755))

	// A snapshot with no messages can only come from a corrupt or
	// hand-edited file; Save refuses to write one.
	payload := `{"agentName":"main","model":"m","createdAt":"2026-01-02T15:04:05Z","messages":[]}`
	path := filepath.Join(histDir, "history_20260102_150405.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	_, err := NewOrchestrator(Config{
		Provider:   &mockProvider{},
		Model:      "test-model",
		ProjectDir: dir,
		Resume:     true,
	})
	require.ErrorIs(t, err, ErrEmptyTranscript)
}

func TestOrchestratorResumeWithoutSnapshots(t *testing.T) {
	provider := &mockProvider{responses: []mockResponse{
		{toolCalls: []ai.ToolCall{finishCall("c1")}},
	}}
	o, err := NewOrchestrator(Config{
		Provider:   provider,
		Model:      "test-model",
		ProjectDir: t.TempDir(),
		Resume:     true,
	})
	require.NoError(t, err)
	defer o.Close()

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", out.Result)
}
