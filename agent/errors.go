package agent

import (
	"errors"
)

// Sentinel errors for invariant violations. These indicate programming
// errors in the caller, not recoverable runtime conditions, and abort the
// run immediately.
var (
	// ErrOutputAlreadySet indicates a task loop was entered with the
	// agent's output already written.
	ErrOutputAlreadySet = errors.New("agent: output already set")

	// ErrMissingLifecycleTool indicates the tool set lacks a tool the
	// task loop requires (finish_task or shorten_conversation).
	ErrMissingLifecycleTool = errors.New("agent: required lifecycle tool missing from tool set")

	// ErrEmptyTranscript indicates a resume was attempted from a snapshot
	// that carries no messages. Fresh agents seed their own transcript; a
	// saved session with nothing in it cannot be continued.
	ErrEmptyTranscript = errors.New("agent: transcript is empty")

	// ErrInterrupted ends a run that was interrupted with no input source
	// available to collect follow-up from the user.
	ErrInterrupted = errors.New("agent: interrupted")
)
