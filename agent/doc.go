// Package agent implements the autonomous execution engine: the step loop
// that turns one model response into concurrently dispatched tool calls
// with ordered result recording, the interrupt controller that stops all
// in-flight tool work on user interrupt, and the task/chat loops driving
// steps to completion.
//
// # Basic Usage
//
// Build a tool set, create an agent, and run it in task mode:
//
//	registry := tool.NewRegistry()
//	registry.Add(agent.LifecycleTools(ask)...)
//	registry.Add(tool.NewShellTool())
//
//	a := agent.New("main", "claude-sonnet-4-5", provider, agent.NewToolSet(registry),
//	    agent.WithParameters(agent.Parameter{Name: "task", Value: "Fix the failing test."}),
//	)
//	out, err := a.RunTask(ctx)
//
// The loop steps until the model calls finish_task; the resulting Output
// carries the result and a conversation summary. In chat mode (RunChat)
// control returns to the user whenever the model answers without tool
// calls, and /exit ends the session.
//
// # Interrupts
//
// Wire the controller to the process signal handler to make Ctrl-C cancel
// in-flight work:
//
//	go func() {
//	    <-sigCh
//	    a.Interrupt("user interrupt")
//	}()
//
// Every tool call issued before the interrupt still receives exactly one
// tool message: a normal result if it finished, an interruption notice if
// it was cancelled, or a skipped notice if it never started.
//
// # Orchestrator
//
// Orchestrator is the top-level composition: it assembles the full tool set
// (lifecycle tools, shell, file, todo, fetch, sub-agent launcher, remote
// tool servers), resumes saved history, runs the loop, and persists the
// transcript under the project's .forge directory.
package agent
