package history

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	ai "github.com/spetersoncode/forge"
)

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

func getEncoding() *tiktoken.Tiktoken {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	return encoding
}

// CountTokens returns the token count of text using the cl100k_base
// encoding, falling back to a character heuristic when the encoding is
// unavailable.
func CountTokens(text string) int {
	if enc := getEncoding(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return estimateTokens(text)
}

// CountMessageTokens returns the approximate token cost of a message,
// including its tool call arguments and a small per-message overhead for
// role and framing tokens.
func CountMessageTokens(msg ai.Message) int {
	const perMessageOverhead = 4
	n := perMessageOverhead + CountTokens(msg.Content)
	for _, call := range msg.ToolCalls {
		n += CountTokens(call.Name) + CountTokens(call.Arguments)
	}
	return n
}

// CountTranscriptTokens returns the approximate token cost of the whole
// transcript.
func CountTranscriptTokens(t *Transcript) int {
	total := 0
	for _, msg := range t.messages {
		total += CountMessageTokens(msg)
	}
	return total
}

func estimateTokens(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	runes := len([]rune(trimmed))
	words := len(strings.Fields(trimmed))
	estimate := runes / 4
	if estimate < words {
		estimate = words
	}
	if estimate == 0 {
		estimate = 1
	}
	return estimate
}
