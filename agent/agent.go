package agent

import (
	"context"
	"log/slog"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/event"
	"github.com/spetersoncode/forge/history"
	"github.com/spetersoncode/forge/retry"
	"github.com/spetersoncode/forge/tool"
)

// PromptFunc collects one line of free-form user input. It blocks until the
// user answers; an error means the input source is gone and the session
// should end.
type PromptFunc func(ctx context.Context) (string, error)

// FeedbackFunc reviews a finished task output. An empty string accepts the
// output; non-empty text is injected as client feedback and the loop
// resumes.
type FeedbackFunc func(ctx context.Context, out Output) (string, error)

// Agent is one coordinating loop instance: a transcript it exclusively
// owns, a tool set, an interrupt controller, and a set-once output.
type Agent struct {
	name       string
	model      string
	provider   ai.ChatProvider
	tools      *ToolSet
	parameters []Parameter
	chatMode   bool

	transcript *history.Transcript
	output     *OutputHandle
	controller *InterruptController

	events           chan<- event.Event
	logger           *slog.Logger
	confirm          ConfirmFunc
	confirmPolicy    *ConfirmPolicy
	prompt           PromptFunc
	feedback         FeedbackFunc
	resultLimit      int
	shortenThreshold int
	trimLimit        int
	retryConfig      retry.Config
	chatOpts         []ai.Option

	step int
}

// Option configures an Agent.
type Option func(*Agent)

// WithParameters sets the client-provided task parameters rendered into the
// start message.
func WithParameters(params ...Parameter) Option {
	return func(a *Agent) {
		a.parameters = append(a.parameters, params...)
	}
}

// WithChatMode switches the agent to open-ended chat: no finish tool is
// required and control returns to the user whenever the model responds
// without tool calls.
func WithChatMode(enabled bool) Option {
	return func(a *Agent) {
		a.chatMode = enabled
	}
}

// WithTranscript resumes the agent from an existing transcript. A non-empty
// transcript is stepped as-is; the start message is not re-seeded.
func WithTranscript(t *history.Transcript) Option {
	return func(a *Agent) {
		if t != nil {
			a.transcript = t
		}
	}
}

// WithEvents directs lifecycle events to the given channel.
func WithEvents(ch chan<- event.Event) Option {
	return func(a *Agent) {
		a.events = ch
	}
}

// WithLogger sets the structured logger for engine internals.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// WithConfirmation gates tool calls matching the policy behind the given
// confirm function. Denied calls are recorded as tool messages and never
// dispatched.
func WithConfirmation(policy *ConfirmPolicy, fn ConfirmFunc) Option {
	return func(a *Agent) {
		a.confirmPolicy = policy
		a.confirm = fn
	}
}

// WithPrompt sets the user input source for chat mode and interrupt
// feedback.
func WithPrompt(fn PromptFunc) Option {
	return func(a *Agent) {
		a.prompt = fn
	}
}

// WithFeedback sets the client feedback collaborator consulted after the
// task output is first set.
func WithFeedback(fn FeedbackFunc) Option {
	return func(a *Agent) {
		a.feedback = fn
	}
}

// WithResultLimit caps tool result size in bytes before truncation.
// Default is tool.DefaultResultLimit.
func WithResultLimit(limit int) Option {
	return func(a *Agent) {
		a.resultLimit = limit
	}
}

// WithShortenThreshold sets the completion token count above which the
// agent is asked to summarize its conversation.
func WithShortenThreshold(tokens int) Option {
	return func(a *Agent) {
		a.shortenThreshold = tokens
	}
}

// WithTrimLimit sets the hard token bound on the transcript. Before each
// backend call, old message groups are dropped until the transcript fits.
// Unlike the shorten threshold this is enforced, not requested.
func WithTrimLimit(tokens int) Option {
	return func(a *Agent) {
		a.trimLimit = tokens
	}
}

// WithRetry sets the retry policy for LLM backend calls.
func WithRetry(cfg retry.Config) Option {
	return func(a *Agent) {
		a.retryConfig = cfg
	}
}

// WithChatOptions passes options through to every backend chat call.
func WithChatOptions(opts ...ai.Option) Option {
	return func(a *Agent) {
		a.chatOpts = append(a.chatOpts, opts...)
	}
}

// New creates an agent. The transcript starts empty and is seeded with a
// start message on the first step unless WithTranscript resumes one.
func New(name, model string, provider ai.ChatProvider, tools *ToolSet, opts ...Option) *Agent {
	a := &Agent{
		name:             name,
		model:            model,
		provider:         provider,
		tools:            tools,
		transcript:       history.New(),
		output:           NewOutputHandle(),
		resultLimit:      tool.DefaultResultLimit,
		shortenThreshold: history.DefaultShortenThreshold,
		trimLimit:        history.DefaultTrimLimit,
		retryConfig:      retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.controller == nil {
		a.controller = NewInterruptController(0, a.logger)
	}
	return a
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// Model returns the model identifier used for backend calls.
func (a *Agent) Model() string { return a.model }

// Transcript returns the agent's transcript. The caller must not mutate it
// while the agent is stepping.
func (a *Agent) Transcript() *history.Transcript { return a.transcript }

// Output returns the set-once output handle.
func (a *Agent) Output() *OutputHandle { return a.output }

// Controller returns the interrupt controller. Wire it to the process
// signal handler to make Ctrl-C cancel in-flight tool work.
func (a *Agent) Controller() *InterruptController { return a.controller }

// Interrupt cancels all in-flight tool tasks and the current backend call.
// Safe to call from any goroutine at any time.
func (a *Agent) Interrupt(reason string) {
	a.controller.CancelAll(reason)
}

func (a *Agent) emit(e event.Event) {
	e.Agent = a.name
	e.Step = a.step
	event.Emit(a.events, e)
}
