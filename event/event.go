// Package event provides a unified event system for observing agent
// execution: step boundaries, streaming output, tool dispatch, interrupts,
// and history compaction.
package event

import (
	"time"

	ai "github.com/spetersoncode/forge"
)

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when an agent run begins.
	RunStart Type = "run_start"

	// RunEnd fires when an agent run completes successfully.
	RunEnd Type = "run_end"

	// RunError fires when an unrecoverable error occurs.
	RunError Type = "run_error"
)

// Step lifecycle events
const (
	// StepStart fires when an agent step begins.
	StepStart Type = "step_start"

	// StepEnd fires when an agent step completes.
	StepEnd Type = "step_end"
)

// Message lifecycle events
const (
	// MessageStart fires when an assistant message begins.
	MessageStart Type = "message_start"

	// MessageDelta fires for each streaming token.
	MessageDelta Type = "message_delta"

	// MessageEnd fires when an assistant message completes.
	MessageEnd Type = "message_end"
)

// Tool call lifecycle events
const (
	// ToolCallStart fires when a tool call is dispatched (contains tool name).
	ToolCallStart Type = "tool_call_start"

	// ToolCallResult fires with the tool execution result.
	ToolCallResult Type = "tool_call_result"

	// ToolCallDenied fires when a tool call is denied by the confirmer.
	ToolCallDenied Type = "tool_call_denied"
)

// Interrupt and history events
const (
	// Interrupted fires when an interrupt cancels pending tool calls.
	Interrupted Type = "interrupted"

	// HistoryShortened fires when the conversation is reset to a summary.
	HistoryShortened Type = "history_shortened"

	// HistoryTrimmed fires when old messages are dropped to fit the token budget.
	HistoryTrimmed Type = "history_trimmed"

	// HistorySaved fires when a history snapshot is written to disk.
	HistorySaved Type = "history_saved"
)

// Event represents an observable occurrence during agent execution.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// Agent names the agent that produced the event.
	Agent string

	// Delta contains streaming content for MessageDelta events.
	Delta string

	// Response contains the complete response for MessageEnd events.
	Response *ai.Response

	// ToolCall contains the tool call for tool-related events.
	ToolCall *ai.ToolCall

	// Step is the current iteration number (1-indexed) for step events.
	Step int

	// Error contains the error for RunError events.
	Error error

	// Message contains additional context (e.g., denial reason, summary, snapshot path).
	Message string

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emit sends an event with timestamp to the channel (non-blocking).
func Emit(ch chan<- Event, e Event) {
	if ch == nil {
		return
	}
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
		// Channel full - don't block
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
