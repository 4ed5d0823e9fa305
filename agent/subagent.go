package agent

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/tool"
)

type launchAgentArgs struct {
	Task            string `json:"task" desc:"The task to assign to the sub-agent." required:"true"`
	ExpectedOutput  string `json:"expected_output" desc:"The expected output to return to the client." required:"true"`
	Instructions    string `json:"instructions" desc:"Special instructions for the agent."`
	ExpertKnowledge bool   `json:"expert_knowledge" desc:"Should only be set to true when the task is extraordinarily difficult."`
}

// SubAgentFactory creates a fresh agent for one sub-task. Each call gets
// its own transcript, output handle, and interrupt controller. The
// expertKnowledge flag lets the factory pick a stronger model for
// extraordinarily difficult tasks.
type SubAgentFactory func(ctx context.Context, params []Parameter, expertKnowledge bool) (*Agent, error)

// NewAgentTool wraps a sub-agent launcher as a callable tool. The handler
// suspends on the entire nested loop; cancelling the parent call cancels
// the child through the shared context, so the child's own controller and
// cleanup hooks still run.
func NewAgentTool(factory SubAgentFactory) tool.Registration {
	return tool.Registration{
		Tool: ai.Tool{
			Name:        "launch_research_agent",
			Description: "Launch a sub-agent to work on a given task. Examples for tasks are researching a topic or question, or developing a feature according to an implementation plan.",
			Parameters:  ai.MustSchemaFor[launchAgentArgs](),
		},
		ResultHandler: func(ctx context.Context, call ai.ToolCall) (tool.Result, error) {
			var args launchAgentArgs
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return nil, err
			}

			params := []Parameter{
				{Name: "task", Description: "The task to work on.", Value: args.Task},
				{Name: "expected_output", Description: "The expected output to return to the client.", Value: args.ExpectedOutput},
			}
			if args.Instructions != "" {
				params = append(params, Parameter{Name: "instructions", Description: "Special instructions for the agent.", Value: args.Instructions})
			}

			sub, err := factory(ctx, params, args.ExpertKnowledge)
			if err != nil {
				return nil, fmt.Errorf("create sub-agent: %w", err)
			}

			// The parent call's cancellation propagates through ctx into
			// the child's backend calls and tool contexts.
			out, err := sub.RunTask(ctx)
			if err != nil {
				return nil, fmt.Errorf("sub-agent %s: %w", sub.Name(), err)
			}
			return tool.TextResult{Content: out.Result}, nil
		},
	}
}
