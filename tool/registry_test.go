package tool

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/spetersoncode/forge"
)

func echoTool() (ai.Tool, Handler) {
	t := ai.Tool{
		Name:        "echo",
		Description: "Echo the input back",
		Parameters:  ai.MustSchemaFor[struct{}](),
	}
	h := func(ctx context.Context, call ai.ToolCall) (string, error) {
		return call.Arguments, nil
	}
	return t, h
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	tl, h := echoTool()

	require.NoError(t, r.Register(tl, h))
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Has("echo"))

	got, ok := r.GetTool("echo")
	assert.True(t, ok)
	assert.Equal(t, "echo", got.Name)
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	tl, h := echoTool()

	require.NoError(t, r.Register(tl, h))
	err := r.Register(tl, h)

	var dup *ErrToolAlreadyRegistered
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "echo", dup.Name)
}

func TestRegistryExecute(t *testing.T) {
	r := NewRegistry()
	tl, h := echoTool()
	require.NoError(t, r.Register(tl, h))

	result, err := r.Execute(context.Background(), ai.ToolCall{
		ID:        "call-1",
		Name:      "echo",
		Arguments: `{"text":"hello"}`,
	})
	require.NoError(t, err)

	text, ok := result.(TextResult)
	require.True(t, ok)
	assert.Equal(t, `{"text":"hello"}`, text.Content)
	assert.False(t, text.IsError)
}

func TestRegistryExecuteHandlerError(t *testing.T) {
	r := NewRegistry()
	tl := ai.Tool{Name: "boom", Parameters: ai.MustSchemaFor[struct{}]()}
	require.NoError(t, r.Register(tl, func(ctx context.Context, call ai.ToolCall) (string, error) {
		return "", errors.New("disk on fire")
	}))

	result, err := r.Execute(context.Background(), ai.ToolCall{ID: "c", Name: "boom", Arguments: "{}"})
	require.NoError(t, err)

	text, ok := result.(TextResult)
	require.True(t, ok)
	assert.True(t, text.IsError)
	assert.Contains(t, text.Content, "disk on fire")
}

func TestRegistryExecuteNotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.Execute(context.Background(), ai.ToolCall{Name: "missing"})

	var notFound *ErrToolNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Name)
}

func TestRegistryExecuteResultHandler(t *testing.T) {
	r := NewRegistry()
	tl := ai.Tool{Name: "finish_task", Parameters: ai.MustSchemaFor[struct{}]()}
	require.NoError(t, r.RegisterResult(tl, func(ctx context.Context, call ai.ToolCall) (Result, error) {
		return FinishResult{Result: "done", Summary: "did the thing"}, nil
	}, nil))

	result, err := r.Execute(context.Background(), ai.ToolCall{Name: "finish_task", Arguments: "{}"})
	require.NoError(t, err)

	finish, ok := result.(FinishResult)
	require.True(t, ok)
	assert.Equal(t, "done", finish.Result)
	assert.Equal(t, "did the thing", finish.Summary)
}

func TestRegistryCleanupHook(t *testing.T) {
	r := NewRegistry()
	called := false
	r.Add(Registration{
		Tool:    ai.Tool{Name: "with_cleanup", Parameters: ai.MustSchemaFor[struct{}]()},
		Handler: func(ctx context.Context, call ai.ToolCall) (string, error) { return "", nil },
		Cleanup: func(ctx context.Context) error {
			called = true
			return nil
		},
	})

	cleanup, ok := r.Cleanup("with_cleanup")
	require.True(t, ok)
	require.NoError(t, cleanup(context.Background()))
	assert.True(t, called)

	_, ok = r.Cleanup("missing")
	assert.False(t, ok)
}

func TestFunc_TypedHandler(t *testing.T) {
	type greetArgs struct {
		Name string `json:"name" desc:"Who to greet" required:"true"`
	}

	r := NewRegistry().Add(
		Func("greet", "Greet someone", func(ctx context.Context, args greetArgs) (string, error) {
			return fmt.Sprintf("Hello, %s!", args.Name), nil
		}),
	)

	result, err := r.Execute(context.Background(), ai.ToolCall{
		Name:      "greet",
		Arguments: `{"name":"Ada"}`,
	})
	require.NoError(t, err)

	text := result.(TextResult)
	assert.Equal(t, "Hello, Ada!", text.Content)
}

func TestFunc_TypedHandlerBadArgs(t *testing.T) {
	type greetArgs struct {
		Name string `json:"name"`
	}

	r := NewRegistry().Add(
		Func("greet", "Greet someone", func(ctx context.Context, args greetArgs) (string, error) {
			return "unreachable", nil
		}),
	)

	result, err := r.Execute(context.Background(), ai.ToolCall{
		Name:      "greet",
		Arguments: `{invalid`,
	})
	require.NoError(t, err)

	text := result.(TextResult)
	assert.True(t, text.IsError)
}
