package tool

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/forge"
)

func execFileTool(t *testing.T, r *Registry, name string, args any) TextResult {
	t.Helper()
	raw, err := json.Marshal(args)
	require.NoError(t, err)

	result, err := r.Execute(context.Background(), ai.ToolCall{
		ID:        "call-1",
		Name:      name,
		Arguments: string(raw),
	})
	require.NoError(t, err)

	text, ok := result.(TextResult)
	require.True(t, ok)
	return text
}

func TestWriteAndReadFile(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry().Add(FileTools(WithBasePath(dir))...)

	write := execFileTool(t, r, "write_file", map[string]any{
		"path":    "notes/hello.txt",
		"content": "line one\nline two\nline three",
	})
	assert.False(t, write.IsError)
	assert.Contains(t, write.Content, "Successfully wrote file")

	read := execFileTool(t, r, "read_file", map[string]any{
		"path": "notes/hello.txt",
	})
	assert.Equal(t, "line one\nline two\nline three", read.Content)
}

func TestReadFileLineRange(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry().Add(FileTools(WithBasePath(dir))...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("a\nb\nc\nd"), 0o644))

	read := execFileTool(t, r, "read_file", map[string]any{
		"path":       "f.txt",
		"start_line": 2,
		"end_line":   3,
	})
	assert.Equal(t, "b\nc", read.Content)
}

func TestEditFileReturnsDiff(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry().Add(FileTools(WithBasePath(dir))...)
	path := filepath.Join(dir, "code.go")
	require.NoError(t, os.WriteFile(path, []byte("func old() {}\n"), 0o644))

	edit := execFileTool(t, r, "edit_file", map[string]any{
		"path": "code.go",
		"edits": []map[string]string{
			{"old_text": "func old()", "new_text": "func renamed()"},
		},
	})
	assert.False(t, edit.IsError)
	assert.Contains(t, edit.Content, "-func old() {}")
	assert.Contains(t, edit.Content, "+func renamed() {}")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "func renamed() {}\n", string(data))
}

func TestEditFileRejectsAmbiguousEdit(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry().Add(FileTools(WithBasePath(dir))...)
	path := filepath.Join(dir, "dup.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\nx\n"), 0o644))

	edit := execFileTool(t, r, "edit_file", map[string]any{
		"path": "dup.txt",
		"edits": []map[string]string{
			{"old_text": "x", "new_text": "y"},
		},
	})
	assert.True(t, edit.IsError)
	assert.Contains(t, edit.Content, "not unique")

	// File must be untouched after a failed edit.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x\nx\n", string(data))
}

func TestEditFileMissingText(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry().Add(FileTools(WithBasePath(dir))...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("abc"), 0o644))

	edit := execFileTool(t, r, "edit_file", map[string]any{
		"path": "f.txt",
		"edits": []map[string]string{
			{"old_text": "zzz", "new_text": "y"},
		},
	})
	assert.True(t, edit.IsError)
	assert.Contains(t, edit.Content, "not found")
}

func TestFileToolsRejectPathEscape(t *testing.T) {
	dir := t.TempDir()
	r := NewRegistry().Add(FileTools(WithBasePath(dir))...)

	read := execFileTool(t, r, "read_file", map[string]any{
		"path": "../../etc/passwd",
	})
	assert.True(t, read.IsError)
	assert.Contains(t, read.Content, "outside base path")
}
