package agent

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/tool"
)

// AskFunc collects a free-form answer from the user. The default answer may
// be empty; an error means the user could not be reached (non-interactive
// session, closed input).
type AskFunc func(ctx context.Context, question, defaultAnswer string) (string, error)

type finishTaskArgs struct {
	Result   string `json:"result" desc:"The result of the work on the task. The work of the agent is evaluated based on this result." required:"true"`
	Summary  string `json:"summary" desc:"A concise summary of the conversation the agent and the client had." required:"true"`
	Feedback string `json:"feedback" desc:"A summary of the feedback given by the client to the agent during the task."`
}

// FinishTaskTool signals task completion. The task loop requires it; its
// result carries the agent's terminal output.
func FinishTaskTool() tool.Registration {
	return tool.Registration{
		Tool: ai.Tool{
			Name:        "finish_task",
			Description: "Signals that the assigned task is complete. This tool must be called eventually to terminate the agent's execution loop.",
			Parameters:  ai.MustSchemaFor[finishTaskArgs](),
		},
		ResultHandler: func(ctx context.Context, call ai.ToolCall) (tool.Result, error) {
			var args finishTaskArgs
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return nil, err
			}
			return tool.FinishResult{
				Result:   args.Result,
				Summary:  args.Summary,
				Feedback: args.Feedback,
			}, nil
		},
	}
}

type shortenConversationArgs struct {
	Summary string `json:"summary" desc:"A summary of the conversation so far." required:"true"`
}

// ShortenConversationTool lets the model hand the framework a summary in
// exchange for a reset conversation history.
func ShortenConversationTool() tool.Registration {
	return tool.Registration{
		Tool: ai.Tool{
			Name:        "shorten_conversation",
			Description: "Give the framework a short, concise summary of your conversation with the client so far. This tool should only be called when the client tells you to call it.",
			Parameters:  ai.MustSchemaFor[shortenConversationArgs](),
		},
		ResultHandler: func(ctx context.Context, call ai.ToolCall) (tool.Result, error) {
			var args shortenConversationArgs
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return nil, err
			}
			return tool.ShortenResult{Summary: args.Summary}, nil
		},
	}
}

type askUserArgs struct {
	Question      string `json:"question" desc:"The question to ask the client." required:"true"`
	DefaultAnswer string `json:"default_answer" desc:"A sensible default answer to the question."`
}

// AskUserTool lets the model ask the user a question mid-task. The answer
// becomes the tool result.
func AskUserTool(ask AskFunc) tool.Registration {
	return tool.Registration{
		Tool: ai.Tool{
			Name:        "ask_user",
			Description: "Ask the user for input.",
			Parameters:  ai.MustSchemaFor[askUserArgs](),
		},
		ResultHandler: func(ctx context.Context, call ai.ToolCall) (tool.Result, error) {
			var args askUserArgs
			if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
				return nil, err
			}
			if ask == nil {
				return nil, fmt.Errorf("no user input source available")
			}
			answer, err := ask(ctx, args.Question, args.DefaultAnswer)
			if err != nil {
				return nil, err
			}
			return tool.TextResult{Content: answer}, nil
		},
	}
}

// LifecycleTools returns the built-ins every task-mode agent needs.
func LifecycleTools(ask AskFunc) []tool.Registration {
	return []tool.Registration{
		FinishTaskTool(),
		ShortenConversationTool(),
		AskUserTool(ask),
	}
}
