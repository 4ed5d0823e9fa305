package main

import (
	"context"
	"fmt"
	"strings"

	ai "github.com/spetersoncode/forge"
	"github.com/spetersoncode/forge/agent"
)

// promptUser reads the next user message from stdin.
func promptUser(ctx context.Context) (string, error) {
	fmt.Print("> ")
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askUser answers the agent's ask_user tool. Empty input accepts the
// suggested default.
func askUser(ctx context.Context, question, defaultAnswer string) (string, error) {
	fmt.Println(question)
	if defaultAnswer != "" {
		fmt.Printf("[default: %s] ", defaultAnswer)
	}
	fmt.Print("> ")
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	answer := strings.TrimSpace(line)
	if answer == "" {
		answer = defaultAnswer
	}
	return answer, nil
}

// feedbackUser shows the agent's result and reads optional feedback.
// An empty line accepts the result as-is.
func feedbackUser(ctx context.Context, out agent.Output) (string, error) {
	fmt.Println()
	fmt.Println(out.Result)
	fmt.Print("Feedback (enter to accept)\n> ")
	line, err := stdin.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// confirmToolCall gates tool calls matched by the confirmation policy.
func confirmToolCall(ctx context.Context, call ai.ToolCall) bool {
	fmt.Printf("Allow %s(%s)? [y/N] ", call.Name, call.Arguments)
	line, err := stdin.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
