package tool

import (
	"context"

	ai "github.com/spetersoncode/forge"
)

// Handler is a function that executes a tool call and returns a result.
// The context supports cancellation and timeout.
// The call contains the tool name, ID, and arguments as a JSON string.
// Returns the result content string, or an error if execution failed.
type Handler func(ctx context.Context, call ai.ToolCall) (string, error)

// ResultHandler is a Handler that returns a typed Result instead of plain
// text. Lifecycle tools use this to return FinishResult or ShortenResult.
type ResultHandler func(ctx context.Context, call ai.ToolCall) (Result, error)

// TypedHandler is a function that executes a tool call with typed arguments.
// The args parameter is automatically unmarshaled from the tool call's JSON arguments.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)

// CleanupFunc releases external resources held by a running tool call when
// it is cancelled. It runs under a bounded grace period; work left after
// the deadline is abandoned.
type CleanupFunc func(ctx context.Context) error

// ToolPair bundles a tool definition with its handler for bulk registration.
type ToolPair struct {
	Tool    ai.Tool
	Handler Handler
}
