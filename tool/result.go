package tool

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// DefaultResultLimit is the maximum size of a tool result in bytes.
// Longer results are replaced by an overflow notice so a single noisy
// tool cannot blow up the conversation.
const DefaultResultLimit = 50_000

// Result is the outcome of executing a tool call. The variant set is
// closed: TextResult for ordinary tools, FinishResult for finish_task,
// ShortenResult for shorten_conversation. Code switching on Result must
// treat any other dynamic type as a contract violation.
type Result interface {
	isResult()
}

// TextResult is the ordinary tool outcome: content recorded verbatim as
// a tool message. IsError marks handler failures so the model can see
// them and recover.
type TextResult struct {
	Content string
	IsError bool
}

// FinishResult carries the agent's final output from the finish_task tool.
type FinishResult struct {
	Result   string
	Summary  string
	Feedback string
}

// ShortenResult carries the conversation summary from the shorten_conversation tool.
type ShortenResult struct {
	Summary string
}

func (TextResult) isResult()    {}
func (FinishResult) isResult()  {}
func (ShortenResult) isResult() {}

// Truncate enforces the result size limit. Content over the limit is cut
// and an overflow note naming both sizes is appended.
func Truncate(content string, limit int) string {
	if limit <= 0 || len(content) <= limit {
		return content
	}
	note := fmt.Sprintf("\n\n[truncated output at: %d, full length: %d]", limit, len(content))
	cut := limit - len(note)
	if cut < 0 {
		cut = 0
	}
	return content[:cut] + note
}

// ParseArguments validates the arguments JSON of a tool call, attempting
// repair of malformed input before giving up. Models occasionally emit
// truncated or over-quoted JSON; jsonrepair recovers the common cases.
// Returns the valid JSON string, or an error when the input cannot be
// repaired into an object.
func ParseArguments(raw string) (string, error) {
	if raw == "" {
		return "{}", nil
	}
	if json.Valid([]byte(raw)) {
		return raw, nil
	}

	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return "", fmt.Errorf("tool: invalid arguments: %w", err)
	}
	if !json.Valid([]byte(repaired)) {
		return "", fmt.Errorf("tool: arguments not valid JSON after repair: %q", raw)
	}
	return repaired, nil
}
