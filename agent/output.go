package agent

import (
	"sync"
)

// Output is the terminal result of a task-mode run.
type Output struct {
	Result   string
	Summary  string
	Feedback string
}

// OutputHandle is the narrow write interface handed to terminal tools. It
// exposes only a set-once operation, so no tool can reach into the agent's
// state beyond recording its final output.
type OutputHandle struct {
	mu  sync.Mutex
	out *Output
}

// NewOutputHandle returns an empty handle.
func NewOutputHandle() *OutputHandle {
	return &OutputHandle{}
}

// Set records the output. Setting twice returns ErrOutputAlreadySet.
func (h *OutputHandle) Set(out Output) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.out != nil {
		return ErrOutputAlreadySet
	}
	h.out = &out
	return nil
}

// Get returns the recorded output and whether one has been set.
func (h *OutputHandle) Get() (Output, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.out == nil {
		return Output{}, false
	}
	return *h.out, true
}

// Clear discards the recorded output. Used by the feedback round when the
// client asks for rework.
func (h *OutputHandle) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.out = nil
}
