package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/forge"
)

func TestTodoManager(t *testing.T) {
	m := NewTodoManager()

	first := m.Add("write tests")
	second := m.Add("run linter")
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)

	done := m.Complete(1)
	require.NotNil(t, done)
	assert.True(t, done.Completed)

	assert.Nil(t, m.Complete(99))

	assert.Equal(t, "- [x] 1: write tests\n- [ ] 2: run linter", m.Format())
}

func TestTodoTools(t *testing.T) {
	m := NewTodoManager()
	r := NewRegistry().Add(TodoTools(m)...)

	add, err := r.Execute(context.Background(), ai.ToolCall{
		Name:      "todo_add",
		Arguments: `{"descriptions":["first","second"]}`,
	})
	require.NoError(t, err)
	assert.Contains(t, add.(TextResult).Content, "- [ ] 1: first")
	assert.Contains(t, add.(TextResult).Content, "- [ ] 2: second")

	complete, err := r.Execute(context.Background(), ai.ToolCall{
		Name:      "todo_complete",
		Arguments: `{"task_id":1}`,
	})
	require.NoError(t, err)
	assert.Contains(t, complete.(TextResult).Content, "Completed TODO 1: first")
	assert.Contains(t, complete.(TextResult).Content, "- [x] 1: first")

	list, err := r.Execute(context.Background(), ai.ToolCall{
		Name:      "todo_list",
		Arguments: `{}`,
	})
	require.NoError(t, err)
	assert.Contains(t, list.(TextResult).Content, "- [ ] 2: second")
}

func TestTodoAddRejectsEmptyDescription(t *testing.T) {
	m := NewTodoManager()
	r := NewRegistry().Add(TodoTools(m)...)

	result, err := r.Execute(context.Background(), ai.ToolCall{
		Name:      "todo_add",
		Arguments: `{"descriptions":[""]}`,
	})
	require.NoError(t, err)
	assert.True(t, result.(TextResult).IsError)
}
