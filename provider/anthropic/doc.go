// Package anthropic provides an Anthropic Claude API client implementing [forge.ChatProvider].
//
// This package wraps the official Anthropic Go SDK to provide Claude model
// access through the forge unified interface.
//
// # Basic Usage
//
//	client := anthropic.New(os.Getenv("ANTHROPIC_API_KEY"))
//
//	messages := []forge.Message{
//	    {Role: forge.RoleUser, Content: "Explain quantum computing briefly."},
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
//	client := anthropic.New(apiKey, anthropic.WithModel(anthropic.ClaudeOpus45))
//
// Or per-request:
//
//	resp, err := client.Chat(ctx, messages, forge.WithModel(anthropic.ClaudeHaiku45.String()))
//
// # Streaming
//
//	stream, err := client.ChatStream(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for event := range stream {
//	    if event.Err != nil {
//	        log.Fatal(event.Err)
//	    }
//	    if event.Done {
//	        fmt.Printf("\nTokens: %d in, %d out\n",
//	            event.Response.Usage.InputTokens,
//	            event.Response.Usage.OutputTokens)
//	    } else {
//	        fmt.Print(event.Delta)
//	    }
//	}
//
// # Error Handling
//
// API failures are wrapped as [forge.CategorizedError] so the retry layer can
// distinguish rate limits and server errors from authentication or request
// problems. Retry-After headers are surfaced as suggested retry delays.
package anthropic
