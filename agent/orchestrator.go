package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/event"
	"github.com/spetersoncode/forge/history"
	"github.com/spetersoncode/forge/mcp"
	"github.com/spetersoncode/forge/tool"
)

// DefaultHistoryKeep is how many snapshot files survive the post-run trim.
const DefaultHistoryKeep = 10

// Config describes one orchestrated session.
type Config struct {
	// AgentName names the root agent. Defaults to "main".
	AgentName string

	// Model is the backend model for the root agent and sub-agents.
	Model string

	// ExpertModel, when set, is used for sub-agents launched with
	// expert_knowledge. Falls back to Model.
	ExpertModel string

	// Provider is the LLM backend.
	Provider ai.ChatProvider

	// ProjectDir roots the state directory and the file tools.
	ProjectDir string

	// ChatMode runs an open-ended session instead of a task loop.
	ChatMode bool

	// Resume continues from the latest saved snapshot, if one exists.
	Resume bool

	// Parameters are the client-provided task parameters.
	Parameters []Parameter

	// ConfirmPolicy and Confirm gate matching tool calls behind user
	// confirmation.
	ConfirmPolicy *ConfirmPolicy
	Confirm       ConfirmFunc

	// Prompt collects free-form user input; Ask answers ask_user calls.
	Prompt PromptFunc
	Ask    AskFunc

	// Feedback reviews the task output before the loop exits.
	Feedback FeedbackFunc

	// Events receives lifecycle events for rendering.
	Events chan<- event.Event

	// Remote are tool-server registries merged into the tool set.
	Remote []*mcp.RemoteRegistry

	// HistoryKeep bounds retained snapshot files. Zero means
	// DefaultHistoryKeep.
	HistoryKeep int

	Logger *slog.Logger
}

// Orchestrator is the top-level composition: it builds the root agent with
// its full tool set, resumes saved history, runs the loop, and persists the
// transcript afterwards.
type Orchestrator struct {
	cfg   Config
	store *history.Store
	tools *ToolSet
	agent *Agent
}

// NewOrchestrator validates the config and assembles the agent.
func NewOrchestrator(cfg Config) (*Orchestrator, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("agent: orchestrator requires a chat provider")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("agent: orchestrator requires a model")
	}
	if cfg.AgentName == "" {
		cfg.AgentName = "main"
	}
	if cfg.ProjectDir == "" {
		cfg.ProjectDir = "."
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.HistoryKeep <= 0 {
		cfg.HistoryKeep = DefaultHistoryKeep
	}

	o := &Orchestrator{
		cfg:   cfg,
		store: history.NewStore(cfg.ProjectDir),
	}

	local := tool.NewRegistry()
	local.Add(LifecycleTools(cfg.Ask)...)
	local.Add(tool.NewShellTool(tool.WithWorkDir(cfg.ProjectDir)))
	local.Add(tool.FileTools(tool.WithBasePath(cfg.ProjectDir))...)
	local.Add(tool.TodoTools(tool.NewTodoManager())...)
	local.Add(tool.NewFetchTool())
	local.Add(NewAgentTool(o.createSubAgent))
	o.tools = NewToolSet(local, cfg.Remote...)

	agentOpts := []Option{
		WithParameters(cfg.Parameters...),
		WithChatMode(cfg.ChatMode),
		WithEvents(cfg.Events),
		WithLogger(cfg.Logger),
		WithConfirmation(cfg.ConfirmPolicy, cfg.Confirm),
		WithPrompt(cfg.Prompt),
		WithFeedback(cfg.Feedback),
	}

	if cfg.Resume {
		snap, err := o.store.Latest()
		if err != nil {
			return nil, err
		}
		if snap != nil {
			resumed := snap.Transcript()
			if resumed.Len() == 0 {
				return nil, fmt.Errorf("agent: resume snapshot: %w", ErrEmptyTranscript)
			}
			agentOpts = append(agentOpts, WithTranscript(resumed))
		}
	}

	o.agent = New(cfg.AgentName, cfg.Model, cfg.Provider, o.tools, agentOpts...)
	return o, nil
}

// Agent returns the root agent.
func (o *Orchestrator) Agent() *Agent {
	return o.agent
}

// Store returns the snapshot store for the session.
func (o *Orchestrator) Store() *history.Store {
	return o.store
}

// Run executes the session to completion and persists the transcript. In
// task mode the returned output is the agent's terminal result; in chat
// mode the output is empty.
func (o *Orchestrator) Run(ctx context.Context) (Output, error) {
	var out Output
	var runErr error

	if o.cfg.ChatMode {
		runErr = o.agent.RunChat(ctx)
	} else {
		out, runErr = o.agent.RunTask(ctx)
	}

	if err := o.saveHistory(); err != nil {
		o.cfg.Logger.Warn("failed to persist history", "error", err)
	}
	if runErr == nil && out.Summary != "" {
		if err := o.store.AppendSummary(out.Summary); err != nil {
			o.cfg.Logger.Warn("failed to record session summary", "error", err)
		}
	}
	return out, runErr
}

// Close shuts down remote tool servers.
func (o *Orchestrator) Close() error {
	return o.tools.Close()
}

func (o *Orchestrator) saveHistory() error {
	if o.agent.Transcript().Len() == 0 {
		return nil
	}
	path, err := o.store.Save(o.agent.Name(), o.agent.Model(), o.agent.Transcript())
	if err != nil {
		return err
	}
	event.Emit(o.cfg.Events, event.Event{Type: event.HistorySaved, Agent: o.agent.Name(), Message: path})
	return o.store.TrimFiles(o.cfg.HistoryKeep)
}

// createSubAgent is the factory behind the launch_research_agent tool. The
// child shares the session's tool set but owns its transcript, output, and
// interrupt controller.
func (o *Orchestrator) createSubAgent(ctx context.Context, params []Parameter, expertKnowledge bool) (*Agent, error) {
	model := o.cfg.Model
	if expertKnowledge && o.cfg.ExpertModel != "" {
		model = o.cfg.ExpertModel
	}
	name := fmt.Sprintf("research-%s", uuid.NewString()[:8])

	return New(name, model, o.cfg.Provider, o.tools,
		WithParameters(params...),
		WithEvents(o.cfg.Events),
		WithLogger(o.cfg.Logger),
		WithConfirmation(o.cfg.ConfirmPolicy, o.cfg.Confirm),
		WithPrompt(o.cfg.Prompt),
	), nil
}
