package agent

import (
	"context"
	"fmt"
	"sync"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/event"
	"github.com/spetersoncode/forge/history"
	"github.com/spetersoncode/forge/retry"
	"github.com/spetersoncode/forge/tool"
)

// Standardized tool message contents for calls that never ran normally.
// Interruption notices are distinct from error text so the model and
// telemetry can tell "user cancelled" apart from "tool failed".
const (
	deniedNotice      = "Tool call denied by the user."
	interruptedNotice = "Tool execution was interrupted by the user."
	skippedNotice     = "Tool execution was skipped due to user interruption."
)

// completionTaskID registers the in-flight backend call with the interrupt
// controller under a reserved key.
const completionTaskID = "__completion__"

// StepOutcome describes what one step did. The loop uses it to decide
// whether to finish, prompt the user, or keep stepping.
type StepOutcome struct {
	Response    *ai.Response
	Finished    bool
	Shortened   bool
	Interrupted bool
	NoToolCalls bool
}

// ExecuteStep performs one LLM round-trip and dispatches the resulting tool
// calls. The assistant message is appended verbatim before any dispatch, and
// every issued tool call receives exactly one tool message, recorded in
// issuance order regardless of completion order.
func (a *Agent) ExecuteStep(ctx context.Context) (*StepOutcome, error) {
	a.step++

	if a.transcript.Len() == 0 {
		a.transcript.Append(a.startMessage())
	}
	a.emit(event.Event{Type: event.StepStart})

	// Hard bound on transcript growth: if the model ignored the shorten
	// request, drop the oldest message groups before calling the backend.
	if dropped := history.Trim(a.transcript, a.trimLimit); dropped > 0 {
		a.emit(event.Event{Type: event.HistoryTrimmed, Message: fmt.Sprintf("dropped %d messages", dropped)})
	}

	resp, err := a.complete(ctx)
	if err != nil {
		if a.controller.Interrupted() {
			// The backend call was torn down by a user interrupt. No
			// assistant message was recorded, so there is nothing to
			// answer; surface the interrupt to the loop.
			a.emit(event.Event{Type: event.Interrupted})
			return &StepOutcome{Interrupted: true}, nil
		}
		return nil, err
	}

	a.transcript.AppendAssistant(resp)
	a.emit(event.Event{Type: event.StepEnd, Response: resp})

	outcome := &StepOutcome{Response: resp}

	if len(resp.ToolCalls) == 0 {
		outcome.NoToolCalls = true
		outcome.Interrupted = a.controller.Interrupted()
		a.maybeRequestShorten(outcome)
		return outcome, nil
	}

	if err := a.dispatchToolCalls(ctx, resp.ToolCalls, outcome); err != nil {
		return nil, err
	}

	if a.controller.Interrupted() {
		outcome.Interrupted = true
		a.emit(event.Event{Type: event.Interrupted})
	}
	a.maybeRequestShorten(outcome)

	return outcome, nil
}

// maybeRequestShorten asks the model to summarize when the completion
// reports token usage above the shorten threshold.
func (a *Agent) maybeRequestShorten(outcome *StepOutcome) {
	if outcome.Shortened || outcome.Finished || outcome.Response == nil {
		return
	}
	if outcome.Response.Usage.Total() > a.shortenThreshold {
		a.transcript.AppendUser(shortenRequestMessage)
	}
}

// complete runs the backend call with retry, streaming deltas out as
// events. The call is registered with the interrupt controller so a user
// interrupt cancels it.
func (a *Agent) complete(ctx context.Context) (*ai.Response, error) {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.controller.Register(completionTaskID, cancel, nil)
	defer a.controller.Deregister(completionTaskID)
	if a.controller.Interrupted() {
		// An interrupt fired between the step starting and this
		// registration; cancel immediately instead of blocking.
		cancel()
	}

	opts := append([]ai.Option{
		ai.WithModel(a.model),
		ai.WithTools(a.tools.Tools()...),
	}, a.chatOpts...)
	messages := a.transcript.Messages()

	a.emit(event.Event{Type: event.MessageStart})
	resp, err := retry.Do(callCtx, a.retryConfig, func() (*ai.Response, error) {
		stream, err := a.provider.ChatStream(callCtx, messages, opts...)
		if err != nil {
			return nil, err
		}

		var resp *ai.Response
		for ev := range stream {
			if ev.Err != nil {
				return nil, ev.Err
			}
			if ev.Delta != "" {
				a.emit(event.Event{Type: event.MessageDelta, Delta: ev.Delta})
			}
			if ev.Done {
				resp = ev.Response
			}
		}
		if resp == nil {
			if err := callCtx.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("agent: stream ended without a final response")
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	a.emit(event.Event{Type: event.MessageEnd, Response: resp})
	return resp, nil
}

type dispatchResult struct {
	result      tool.Result
	denied      bool
	skipped     bool
	interrupted bool
}

// dispatchToolCalls runs the calls concurrently and records their results
// in issuance order. Denied calls are settled during the serial
// confirmation pass and never reach the controller.
func (a *Agent) dispatchToolCalls(ctx context.Context, calls []ai.ToolCall, outcome *StepOutcome) error {
	results := make([]dispatchResult, len(calls))

	for i, call := range calls {
		if a.controller.Interrupted() {
			results[i] = dispatchResult{skipped: true}
			continue
		}
		if a.confirm != nil && a.confirmPolicy.Requires(call) && !a.confirm(ctx, call) {
			results[i] = dispatchResult{denied: true}
			a.emit(event.Event{Type: event.ToolCallDenied, ToolCall: &calls[i]})
		}
	}

	var wg sync.WaitGroup
	for i, call := range calls {
		if results[i].denied || results[i].skipped {
			continue
		}
		wg.Add(1)
		go func(i int, call ai.ToolCall) {
			defer wg.Done()
			results[i] = a.executeToolCall(ctx, call)
		}(i, call)
	}
	wg.Wait()

	var shortenSummary string
	for i, call := range calls {
		content, err := a.settleResult(call, results[i], outcome, &shortenSummary)
		if err != nil {
			return err
		}
		a.transcript.AppendToolResult(call, content)
		a.emit(event.Event{Type: event.ToolCallResult, ToolCall: &calls[i], Message: content})
	}

	if outcome.Shortened {
		history.Shorten(a.transcript, a.startMessage(), shortenSummary)
		a.emit(event.Event{Type: event.HistoryShortened})
	}
	return nil
}

// executeToolCall runs one call under its own cancellable context,
// registered with the interrupt controller for its duration.
func (a *Agent) executeToolCall(ctx context.Context, call ai.ToolCall) dispatchResult {
	if a.controller.Interrupted() {
		return dispatchResult{skipped: true}
	}

	repaired, err := tool.ParseArguments(call.Arguments)
	if err != nil {
		return dispatchResult{result: tool.TextResult{
			Content: fmt.Sprintf("Error: Tool call arguments `%s` are not valid JSON: %v", call.Arguments, err),
			IsError: true,
		}}
	}
	call.Arguments = repaired

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	cleanup, _ := a.tools.Cleanup(call.Name)
	a.controller.Register(call.ID, cancel, cleanup)
	defer a.controller.Deregister(call.ID)
	if a.controller.Interrupted() {
		return dispatchResult{skipped: true}
	}

	a.emit(event.Event{Type: event.ToolCallStart, ToolCall: &call})

	result, err := a.tools.Execute(callCtx, call)
	if callCtx.Err() != nil && a.controller.Interrupted() {
		return dispatchResult{interrupted: true}
	}
	if err != nil {
		return dispatchResult{result: tool.TextResult{Content: err.Error(), IsError: true}}
	}
	return dispatchResult{result: result}
}

// settleResult turns one dispatch result into the content of the call's
// tool message. An unrecognized result variant is a contract violation and
// aborts the step.
func (a *Agent) settleResult(call ai.ToolCall, dr dispatchResult, outcome *StepOutcome, shortenSummary *string) (string, error) {
	switch {
	case dr.denied:
		return deniedNotice, nil
	case dr.skipped:
		return skippedNotice, nil
	case dr.interrupted:
		return interruptedNotice, nil
	}

	switch res := dr.result.(type) {
	case tool.TextResult:
		return tool.Truncate(res.Content, a.resultLimit), nil
	case tool.FinishResult:
		if err := a.output.Set(Output{Result: res.Result, Summary: res.Summary, Feedback: res.Feedback}); err != nil {
			return err.Error(), nil
		}
		outcome.Finished = true
		return "Agent output set.", nil
	case tool.ShortenResult:
		outcome.Shortened = true
		*shortenSummary = res.Summary
		return "Conversation shortened and history reset.", nil
	default:
		return "", fmt.Errorf("agent: tool %q returned result type %T: %w", call.Name, dr.result, ai.ErrUnsupportedResult)
	}
}
