package agent

import (
	"context"
	"encoding/json"
	"path"
	"strings"

	ai "github.com/spetersoncode/forge"
)

// ConfirmFunc asks the user whether a tool call may run. It returns true to
// allow the call; false denies it and the denial is recorded as the call's
// tool message.
type ConfirmFunc func(ctx context.Context, call ai.ToolCall) bool

// ConfirmPolicy decides which tool calls are gated behind user
// confirmation. Gating happens before the call is ever registered with the
// interrupt controller.
type ConfirmPolicy struct {
	// ToolPatterns are shell-style patterns matched against tool names
	// (path.Match semantics, e.g. "write_*" or "mcp_github_*").
	ToolPatterns []string

	// ShellPatterns are substrings matched against the command of
	// execute_shell_command calls (e.g. "rm ", "git push").
	ShellPatterns []string
}

// Requires reports whether the call matches the policy.
func (p *ConfirmPolicy) Requires(call ai.ToolCall) bool {
	if p == nil {
		return false
	}
	for _, pattern := range p.ToolPatterns {
		if ok, err := path.Match(pattern, call.Name); err == nil && ok {
			return true
		}
	}
	if call.Name == "execute_shell_command" && len(p.ShellPatterns) > 0 {
		var args struct {
			Command string `json:"command"`
		}
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			// Unparseable shell arguments are gated rather than waved
			// through; the parse error surfaces later in dispatch.
			return true
		}
		for _, pattern := range p.ShellPatterns {
			if strings.Contains(args.Command, pattern) {
				return true
			}
		}
	}
	return false
}
