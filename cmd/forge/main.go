package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spetersoncode/forge/agent"
	"github.com/spetersoncode/forge/event"
	"github.com/spetersoncode/forge/mcp"
)

var stdin = bufio.NewReader(os.Stdin)

type listFlag []string

func (f *listFlag) String() string { return strings.Join(*f, ",") }

func (f *listFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var (
		chatMode    = flag.Bool("chat", false, "run an interactive chat session instead of a one-shot task")
		resume      = flag.Bool("resume", false, "resume from the latest history snapshot")
		projectDir  = flag.String("dir", ".", "project directory the agent works in")
		model       = flag.String("model", "", "model override (defaults to FORGE_MODEL or the provider default)")
		expertModel = flag.String("expert-model", "", "model for expert sub-agents")
		verbose     = flag.Bool("v", false, "enable debug logging")

		confirmTools listFlag
		confirmShell listFlag
		mcpServers   listFlag
	)
	flag.Var(&confirmTools, "confirm", "tool name pattern requiring confirmation (repeatable, path.Match syntax)")
	flag.Var(&confirmShell, "confirm-shell", "shell command substring requiring confirmation (repeatable)")
	flag.Var(&mcpServers, "mcp", "MCP tool server as name=command (repeatable)")
	flag.Parse()

	if err := run(*chatMode, *resume, *projectDir, *model, *expertModel, *verbose, confirmTools, confirmShell, mcpServers, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "forge: %v\n", err)
		os.Exit(1)
	}
}

func run(chatMode, resume bool, projectDir, modelFlag, expertFlag string, verbose bool, confirmTools, confirmShell, mcpServers, args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	if modelFlag != "" {
		cfg.Model = modelFlag
	}
	if expertFlag != "" {
		cfg.ExpertModel = expertFlag
	}

	task := strings.TrimSpace(strings.Join(args, " "))
	if !chatMode && task == "" {
		return fmt.Errorf("a task description is required (or pass -chat for an interactive session)")
	}

	provider, model, err := cfg.BuildProvider()
	if err != nil {
		return err
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// SIGTERM ends the run; SIGINT interrupts the current step so the
	// agent can ask what to do next.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	remote, err := connectMCPServers(ctx, mcpServers)
	if err != nil {
		return err
	}

	var params []agent.Parameter
	if task != "" {
		params = append(params, agent.Parameter{
			Name:        "task",
			Description: "The task the client wants accomplished",
			Value:       task,
		})
	}

	events := event.NewChannel()
	rendered := make(chan struct{})
	go renderEvents(events, rendered)

	orch, err := agent.NewOrchestrator(agent.Config{
		Model:       model,
		ExpertModel: cfg.ExpertModel,
		Provider:    provider,
		ProjectDir:  projectDir,
		ChatMode:    chatMode,
		Resume:      resume,
		Parameters:  params,
		ConfirmPolicy: &agent.ConfirmPolicy{
			ToolPatterns:  confirmTools,
			ShellPatterns: confirmShell,
		},
		Confirm:     confirmToolCall,
		Prompt:      promptUser,
		Ask:         askUser,
		Feedback:    feedbackUser,
		Events:      events,
		Remote:      remote,
		HistoryKeep: cfg.HistoryKeep,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer orch.Close()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, syscall.SIGINT)
	go func() {
		for range interrupts {
			orch.Agent().Interrupt("interrupted by the user")
		}
	}()

	out, runErr := orch.Run(ctx)
	signal.Stop(interrupts)
	close(events)
	<-rendered
	if runErr != nil {
		return runErr
	}

	if out.Result != "" {
		fmt.Println()
		fmt.Println(out.Result)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// connectMCPServers parses repeated name=command flags and connects to
// each server over stdio.
func connectMCPServers(ctx context.Context, specs []string) ([]*mcp.RemoteRegistry, error) {
	var registries []*mcp.RemoteRegistry
	for _, spec := range specs {
		name, command, ok := strings.Cut(spec, "=")
		if !ok || name == "" || command == "" {
			return nil, fmt.Errorf("invalid -mcp value %q (want name=command)", spec)
		}
		parts := strings.Fields(command)
		registry, err := mcp.NewRemoteRegistry(ctx, name, parts[0], os.Environ(), parts[1:]...)
		if err != nil {
			return nil, fmt.Errorf("connecting MCP server %q: %w", name, err)
		}
		registries = append(registries, registry)
	}
	return registries, nil
}
