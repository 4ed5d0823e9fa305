package agent

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/spetersoncode/forge/tool"
)

// DefaultCleanupGrace bounds how long CancelAll waits for each cleanup hook
// before abandoning it with a warning.
const DefaultCleanupGrace = 5 * time.Second

type pendingTask struct {
	cancel  context.CancelFunc
	cleanup tool.CleanupFunc
}

// InterruptController tracks in-flight tool tasks and turns a user
// interrupt into coordinated cancellation. It is the only state shared
// between the step control flow and the interrupt control flow, so every
// method is safe to call from either at any point in a step.
type InterruptController struct {
	mu          sync.Mutex
	tasks       map[string]pendingTask
	interrupted bool
	grace       time.Duration
	logger      *slog.Logger
}

// NewInterruptController returns a controller with the given cleanup grace
// period. A zero grace uses DefaultCleanupGrace; a nil logger uses
// slog.Default.
func NewInterruptController(grace time.Duration, logger *slog.Logger) *InterruptController {
	if grace <= 0 {
		grace = DefaultCleanupGrace
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InterruptController{
		tasks:  make(map[string]pendingTask),
		grace:  grace,
		logger: logger,
	}
}

// Register tracks a running tool task under its call ID. Registering the
// same ID twice replaces the earlier entry.
func (c *InterruptController) Register(callID string, cancel context.CancelFunc, cleanup tool.CleanupFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks[callID] = pendingTask{cancel: cancel, cleanup: cleanup}
}

// Deregister removes a task. Safe to call for IDs that were never
// registered or were already removed by CancelAll.
func (c *InterruptController) Deregister(callID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tasks, callID)
}

// Len returns the number of registered tasks.
func (c *InterruptController) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Interrupted reports whether CancelAll has fired since the last Reset.
func (c *InterruptController) Interrupted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interrupted
}

// Reset clears the interrupted flag. Called by the loop once the interrupt
// has been surfaced to the user.
func (c *InterruptController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interrupted = false
}

// CancelAll cancels every registered task and runs its cleanup hook with a
// bounded grace period. The registry is empty when it returns. Calling it
// with no tasks registered still marks the interrupt; repeated calls are
// no-ops beyond that.
func (c *InterruptController) CancelAll(reason string) {
	c.mu.Lock()
	c.interrupted = true
	snapshot := c.tasks
	c.tasks = make(map[string]pendingTask)
	c.mu.Unlock()

	if len(snapshot) == 0 {
		return
	}
	c.logger.Info("cancelling in-flight tool tasks", "count", len(snapshot), "reason", reason)

	var wg sync.WaitGroup
	for callID, task := range snapshot {
		task.cancel()
		if task.cleanup == nil {
			continue
		}
		wg.Add(1)
		go func(callID string, cleanup tool.CleanupFunc) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), c.grace)
			defer cancel()

			done := make(chan error, 1)
			go func() { done <- cleanup(ctx) }()

			select {
			case err := <-done:
				if err != nil {
					c.logger.Warn("tool cleanup failed", "call_id", callID, "error", err)
				}
			case <-ctx.Done():
				c.logger.Warn("tool cleanup timed out", "call_id", callID, "grace", c.grace)
			}
		}(callID, task.cleanup)
	}
	wg.Wait()
}
