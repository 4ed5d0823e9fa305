package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/spetersoncode/forge/event"
)

// RunTask drives the step executor until a terminal tool sets the agent's
// output. Entering with the output already set is a programming error. The
// loop requires finish_task and shorten_conversation in the tool set.
func (a *Agent) RunTask(ctx context.Context) (Output, error) {
	if _, set := a.output.Get(); set {
		return Output{}, ErrOutputAlreadySet
	}
	for _, name := range []string{"finish_task", "shorten_conversation"} {
		if !a.tools.Has(name) {
			return Output{}, fmt.Errorf("%w: %s", ErrMissingLifecycleTool, name)
		}
	}

	a.emit(event.Event{Type: event.RunStart})

	for {
		if err := ctx.Err(); err != nil {
			return Output{}, err
		}

		outcome, err := a.ExecuteStep(ctx)
		if err != nil {
			a.emit(event.Event{Type: event.RunError, Error: err})
			return Output{}, err
		}

		if outcome.Interrupted {
			a.controller.Reset()
			if err := a.collectInterruptFeedback(ctx); err != nil {
				return Output{}, err
			}
			continue
		}

		if out, set := a.output.Get(); set {
			if a.feedback != nil {
				fb, err := a.feedback(ctx, out)
				if err != nil {
					return Output{}, err
				}
				if strings.TrimSpace(fb) != "" {
					a.output.Clear()
					a.transcript.Append(feedbackMessage(fb))
					continue
				}
			}
			a.emit(event.Event{Type: event.RunEnd, Message: out.Result})
			return out, nil
		}

		if outcome.NoToolCalls {
			a.transcript.AppendUser(noToolCallsMessage)
		}
	}
}

// RunChat drives an open-ended session: control returns to the user
// whenever the model responds without tool calls, and /exit ends the
// session. There is no finish condition reached through tool output.
func (a *Agent) RunChat(ctx context.Context) error {
	if a.prompt == nil {
		return fmt.Errorf("agent: chat mode requires a prompt source")
	}
	if !a.chatMode {
		a.chatMode = true
	}
	if a.transcript.Len() == 0 {
		a.transcript.Append(a.startMessage())
	}

	a.emit(event.Event{Type: event.RunStart})
	needInput := true

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if needInput {
			answer, err := a.prompt(ctx)
			if err != nil {
				// Input source is gone; end the session cleanly.
				a.emit(event.Event{Type: event.RunEnd})
				return nil
			}
			if a.controller.Interrupted() {
				// The interrupt arrived while the loop was idle waiting
				// for input. There was nothing running to cancel, so it
				// ends the session instead of feeding the next step.
				a.controller.Reset()
				a.emit(event.Event{Type: event.Interrupted})
				a.emit(event.Event{Type: event.RunEnd})
				return nil
			}
			if strings.TrimSpace(answer) == "/exit" {
				a.emit(event.Event{Type: event.RunEnd})
				return nil
			}
			a.transcript.AppendUser(answer)
		}

		outcome, err := a.ExecuteStep(ctx)
		if err != nil {
			a.emit(event.Event{Type: event.RunError, Error: err})
			return err
		}

		if outcome.Interrupted {
			a.controller.Reset()
			needInput = true
			continue
		}

		needInput = outcome.NoToolCalls
	}
}

// collectInterruptFeedback surfaces an interrupt to the user and injects
// their free-form response as a user message. Without an input source the
// interrupt ends the run, as does a second interrupt raised while the loop
// is idle waiting for the response.
func (a *Agent) collectInterruptFeedback(ctx context.Context) error {
	if a.prompt == nil {
		return ErrInterrupted
	}
	feedback, err := a.prompt(ctx)
	if err != nil {
		return ErrInterrupted
	}
	if a.controller.Interrupted() {
		a.controller.Reset()
		return ErrInterrupted
	}
	if strings.TrimSpace(feedback) == "" {
		feedback = "The user interrupted the current step. Please reassess before continuing."
	}
	a.transcript.AppendUser(feedback)
	return nil
}
