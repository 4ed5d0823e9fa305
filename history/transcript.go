// Package history manages conversation transcripts for agent runs: append
// helpers, token accounting, trimming and shortening, and snapshot
// persistence under the project-local state directory.
package history

import (
	ai "github.com/spetersoncode/forge"
)

// Transcript is an ordered conversation history. The first message appended
// is treated as the start message and survives trimming. Transcript is not
// safe for concurrent use; agent loops own their transcript.
type Transcript struct {
	messages []ai.Message
}

// New returns a transcript seeded with the given messages.
func New(messages ...ai.Message) *Transcript {
	t := &Transcript{}
	t.messages = append(t.messages, messages...)
	return t
}

// Append adds messages to the end of the transcript.
func (t *Transcript) Append(messages ...ai.Message) {
	t.messages = append(t.messages, messages...)
}

// AppendUser appends a user message with the given content.
func (t *Transcript) AppendUser(content string) {
	t.Append(ai.NewUserMessage(content))
}

// AppendAssistant appends an assistant response, including any tool calls
// it carries.
func (t *Transcript) AppendAssistant(resp *ai.Response) {
	t.Append(resp.Message())
}

// AppendToolResult appends a tool result message answering the given call.
func (t *Transcript) AppendToolResult(call ai.ToolCall, content string) {
	t.Append(ai.NewToolMessage(call.ID, call.Name, content))
}

// Reset replaces the entire transcript with the given messages.
func (t *Transcript) Reset(messages ...ai.Message) {
	t.messages = append(t.messages[:0], messages...)
}

// Messages returns a copy of the transcript contents.
func (t *Transcript) Messages() []ai.Message {
	out := make([]ai.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Last returns the final message and true, or a zero message and false when
// the transcript is empty.
func (t *Transcript) Last() (ai.Message, bool) {
	if len(t.messages) == 0 {
		return ai.Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// Sanitize drops trailing assistant messages whose tool calls have no
// recorded results. A transcript saved mid-dispatch would otherwise resume
// with dangling calls the backend rejects.
func (t *Transcript) Sanitize() {
	for len(t.messages) > 0 {
		last := t.messages[len(t.messages)-1]
		if last.Role == ai.RoleAssistant && len(last.ToolCalls) > 0 {
			t.messages = t.messages[:len(t.messages)-1]
			continue
		}
		break
	}
}
