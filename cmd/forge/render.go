package main

import (
	"fmt"
	"os"

	"github.com/spetersoncode/forge/event"
)

// renderEvents consumes agent events and prints a terminal-friendly
// transcript. It runs until the channel is closed and then closes done.
func renderEvents(events <-chan event.Event, done chan<- struct{}) {
	defer close(done)

	streaming := false
	endStream := func() {
		if streaming {
			fmt.Println()
			streaming = false
		}
	}

	for e := range events {
		switch e.Type {
		case event.MessageDelta:
			fmt.Print(e.Delta)
			streaming = true
		case event.MessageEnd:
			endStream()
		case event.ToolCallStart:
			endStream()
			if e.ToolCall != nil {
				fmt.Printf("⚙ %s\n", e.ToolCall.Name)
			}
		case event.ToolCallDenied:
			endStream()
			if e.ToolCall != nil {
				fmt.Printf("✗ %s denied\n", e.ToolCall.Name)
			}
		case event.Interrupted:
			endStream()
			fmt.Println("⏸ interrupted")
		case event.HistoryShortened:
			endStream()
			fmt.Println("… conversation shortened")
		case event.HistorySaved:
			endStream()
			fmt.Printf("✓ history saved: %s\n", e.Message)
		case event.RunError:
			endStream()
			fmt.Fprintf(os.Stderr, "error: %v\n", e.Error)
		}
	}
	endStream()
}
