package openai

// ChatModel represents an OpenAI chat/completion model.
type ChatModel string

const (
	// GPT-5.2 series
	GPT52    ChatModel = "gpt-5.2"
	GPT52Pro ChatModel = "gpt-5.2-pro"

	// GPT-5.1 series
	GPT51      ChatModel = "gpt-5.1"
	GPT51Mini  ChatModel = "gpt-5.1-mini"
	GPT51Codex ChatModel = "gpt-5.1-codex"

	// GPT-5 series
	GPT5     ChatModel = "gpt-5"
	GPT5Mini ChatModel = "gpt-5-mini"
	GPT5Nano ChatModel = "gpt-5-nano"

	// O-series reasoning models
	O3     ChatModel = "o3"
	O3Mini ChatModel = "o3-mini"
	O4Mini ChatModel = "o4-mini"

	// DefaultChatModel is the recommended default model.
	DefaultChatModel ChatModel = GPT52
)

// String returns the model identifier string.
func (m ChatModel) String() string { return string(m) }
