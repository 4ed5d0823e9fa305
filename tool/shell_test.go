package tool

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/forge"
)

func runShell(t *testing.T, reg Registration, args string) TextResult {
	t.Helper()
	r := NewRegistry().Add(reg)

	result, err := r.Execute(context.Background(), ai.ToolCall{
		ID:        "call-1",
		Name:      "execute_shell_command",
		Arguments: args,
	})
	require.NoError(t, err)

	text, ok := result.(TextResult)
	require.True(t, ok)
	return text
}

func TestShellToolSuccess(t *testing.T) {
	text := runShell(t, NewShellTool(), `{"command":"echo hello"}`)
	assert.False(t, text.IsError)
	assert.Equal(t, "hello\n", text.Content)
}

func TestShellToolNonZeroExit(t *testing.T) {
	text := runShell(t, NewShellTool(), `{"command":"echo oops >&2; exit 3"}`)
	assert.False(t, text.IsError)
	assert.Contains(t, text.Content, "Returncode: 3")
	assert.Contains(t, text.Content, "oops")
}

func TestShellToolEmptyCommand(t *testing.T) {
	text := runShell(t, NewShellTool(), `{"command":"  "}`)
	assert.True(t, text.IsError)
	assert.Contains(t, text.Content, "must not be empty")
}

func TestShellToolTimeout(t *testing.T) {
	text := runShell(t, NewShellTool(WithShellTimeout(100*time.Millisecond)),
		`{"command":"sleep 5"}`)
	assert.Contains(t, text.Content, "timed out")
}

func TestShellToolWorkDir(t *testing.T) {
	dir := t.TempDir()
	text := runShell(t, NewShellTool(WithWorkDir(dir)), `{"command":"pwd"}`)
	assert.Contains(t, text.Content, dir)
}

func TestShellToolTruncatesOutput(t *testing.T) {
	text := runShell(t, NewShellTool(WithShellResultLimit(100)),
		`{"command":"head -c 1000 /dev/zero | tr '\\0' 'x'"}`)
	assert.LessOrEqual(t, len(text.Content), 100)
	assert.Contains(t, text.Content, "[truncated output at: 100")
}
