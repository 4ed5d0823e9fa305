package agent

import (
	"fmt"
	"strings"

	ai "github.com/spetersoncode/forge"
)

// Parameter is one named input the client provides for an agent's task,
// rendered into the start message.
type Parameter struct {
	Name        string
	Description string
	Value       string
}

const taskStartTemplate = `## General

- You are an agent named ` + "`%s`" + `.
- You are given a set of parameters by your client, among which are your task and your description.
  - It is of the utmost importance that you try your best to fulfill the task as specified.
  - The task shall be done in a way which fits your description.
- You must use at least one tool call in every step.
  - Use the ` + "`finish_task`" + ` tool when you have fully finished your task, no questions should still be open.

## Parameters

Your client has provided the following parameters for your task:

%s`

const chatStartTemplate = `## General

- You are an agent named ` + "`%s`" + `.
- You are in chat mode. You may converse without using tools. When you do not know what to do next, reply without any tool calls to return control to the user. Use tools only when they materially advance the work.

## Parameters

Your client has provided the following parameters for your session:

%s`

const noToolCallsMessage = "I detected a step from you without any tool calls. This is not allowed. If you are done with your task, please call the `finish_task` tool to signal that you are done. Otherwise, continue your work."

const shortenRequestMessage = "Your conversation history has grown too large. Please summarize it by using the `shorten_conversation` tool."

const feedbackTemplate = `Your client has provided the following feedback on your work:

%s

Please rework your result to address the feedback.
Afterwards, call the ` + "`finish_task`" + ` tool again to signal that you are done.`

func formatParameters(params []Parameter) string {
	if len(params) == 0 {
		return "(none)"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("Name: %s\nDescription: %s\nValue: %s", p.Name, p.Description, p.Value)
	}
	return strings.Join(parts, "\n\n")
}

func (a *Agent) startMessage() ai.Message {
	params := formatParameters(a.parameters)
	if a.chatMode {
		return ai.NewUserMessage(fmt.Sprintf(chatStartTemplate, a.name, params))
	}
	return ai.NewUserMessage(fmt.Sprintf(taskStartTemplate, a.name, params))
}

func feedbackMessage(feedback string) ai.Message {
	return ai.NewUserMessage(fmt.Sprintf(feedbackTemplate, indent(feedback, "  ")))
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
