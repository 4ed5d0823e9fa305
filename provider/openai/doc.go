// Package openai provides an OpenAI API client implementing [forge.ChatProvider].
//
// This package wraps the official OpenAI Go SDK to provide GPT model access
// through the forge unified interface.
//
// # Basic Usage
//
//	client := openai.New(os.Getenv("OPENAI_API_KEY"))
//
//	messages := []forge.Message{
//	    {Role: forge.RoleUser, Content: "Write a haiku about Go."},
//	}
//
//	resp, err := client.Chat(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content)
//
// # Model Selection
//
// Set a default model at client creation:
//
//	client := openai.New(apiKey, openai.WithModel(openai.GPT51Mini))
//
// Or per-request:
//
//	resp, err := client.Chat(ctx, messages, forge.WithModel(openai.GPT5Nano.String()))
//
// # Error Handling
//
// API failures are wrapped as [forge.CategorizedError] so the retry layer can
// distinguish rate limits and server errors from authentication or request
// problems. Retry-After headers are surfaced as suggested retry delays.
package openai
