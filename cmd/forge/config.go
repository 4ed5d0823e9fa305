package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spetersoncode/forge/provider/anthropic"
	"github.com/spetersoncode/forge/provider/openai"

	ai "github.com/spetersoncode/forge"
)

// Config holds the CLI configuration loaded from environment variables.
type Config struct {
	// Provider selection
	Provider string
	Model    string
	// ExpertModel is used for sub-agents launched with expert knowledge.
	// Defaults to Model when unset.
	ExpertModel string

	// API keys
	AnthropicKey string
	OpenAIKey    string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// HistoryKeep is the number of history snapshots retained on disk.
	HistoryKeep int
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Provider:     getEnvOrDefault("FORGE_PROVIDER", string(ai.ProviderAnthropic)),
		Model:        os.Getenv("FORGE_MODEL"),
		ExpertModel:  os.Getenv("FORGE_EXPERT_MODEL"),
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		LogLevel:     getEnvOrDefault("FORGE_LOG_LEVEL", "warn"),
		HistoryKeep:  getEnvIntOrDefault("FORGE_HISTORY_KEEP", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	switch ai.Provider(c.Provider) {
	case ai.ProviderAnthropic:
		if c.AnthropicKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for anthropic provider")
		}
	case ai.ProviderOpenAI:
		if c.OpenAIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for openai provider")
		}
	default:
		return fmt.Errorf("unknown provider %q (anthropic or openai)", c.Provider)
	}
	return nil
}

// BuildProvider constructs the chat provider and resolves the model name.
func (c *Config) BuildProvider() (ai.ChatProvider, string, error) {
	switch ai.Provider(c.Provider) {
	case ai.ProviderAnthropic:
		model := c.Model
		if model == "" {
			model = anthropic.DefaultChatModel.String()
		}
		return anthropic.New(c.AnthropicKey), model, nil
	case ai.ProviderOpenAI:
		model := c.Model
		if model == "" {
			model = openai.DefaultChatModel.String()
		}
		return openai.New(c.OpenAIKey), model, nil
	default:
		return nil, "", fmt.Errorf("unknown provider %q", c.Provider)
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
