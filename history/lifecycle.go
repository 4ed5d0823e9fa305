package history

import (
	"fmt"

	ai "github.com/spetersoncode/forge"
)

// Token thresholds for conversation maintenance. When a transcript crosses
// the shorten threshold the agent asks the model to summarize; the trim
// limit is the hard bound enforced by dropping old messages.
const (
	DefaultShortenThreshold = 100_000
	DefaultTrimLimit        = 200_000
)

// summaryTemplate carries a model-written summary into the reset
// conversation after shortening.
const summaryTemplate = "A summary of your conversation with the client until now:\n\n%s\n\nPlease continue your work."

// Shorten resets the transcript to exactly two messages: a fresh start
// message and a user message carrying the summary. It is a full reset, so
// any prior context not captured in the summary is gone.
func Shorten(t *Transcript, start ai.Message, summary string) {
	t.Reset(start, ai.NewUserMessage(fmt.Sprintf(summaryTemplate, summary)))
}

// Trim drops the oldest messages until the transcript fits within maxTokens.
// The start message is pinned and never dropped, and messages are removed in
// pairing-safe groups so an assistant message with tool calls always leaves
// together with its tool results. The final group is kept regardless of
// budget so the transcript never loses the in-flight exchange. Returns the
// number of messages dropped.
func Trim(t *Transcript, maxTokens int) int {
	if maxTokens <= 0 || len(t.messages) <= 2 {
		return 0
	}
	if CountTranscriptTokens(t) <= maxTokens {
		return 0
	}

	groups := groupMessages(t.messages[1:])
	if len(groups) <= 1 {
		return 0
	}

	startCost := CountMessageTokens(t.messages[0])
	costs := make([]int, len(groups))
	total := startCost
	for i, g := range groups {
		for _, msg := range g {
			costs[i] += CountMessageTokens(msg)
		}
		total += costs[i]
	}

	dropped := 0
	drop := 0
	for drop < len(groups)-1 && total > maxTokens {
		total -= costs[drop]
		dropped += len(groups[drop])
		drop++
	}
	if drop == 0 {
		return 0
	}

	kept := make([]ai.Message, 0, len(t.messages)-dropped)
	kept = append(kept, t.messages[0])
	for _, g := range groups[drop:] {
		kept = append(kept, g...)
	}
	t.messages = kept
	return dropped
}

// groupMessages splits messages into pairing-safe units: an assistant
// message with tool calls and the tool messages answering it form one
// group; every other message stands alone.
func groupMessages(messages []ai.Message) [][]ai.Message {
	var groups [][]ai.Message
	i := 0
	for i < len(messages) {
		msg := messages[i]
		if msg.Role == ai.RoleAssistant && len(msg.ToolCalls) > 0 {
			j := i + 1
			for j < len(messages) && messages[j].Role == ai.RoleTool {
				j++
			}
			groups = append(groups, messages[i:j])
			i = j
			continue
		}
		groups = append(groups, messages[i:i+1])
		i++
	}
	return groups
}
