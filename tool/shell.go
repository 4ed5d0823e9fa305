package tool

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"

	ai "github.com/spetersoncode/forge"
)

// ShellToolOption configures the shell tool.
type ShellToolOption func(*shellToolConfig)

type shellToolConfig struct {
	workDir     string
	timeout     time.Duration
	killGrace   time.Duration
	resultLimit int
}

// WithWorkDir sets the working directory for executed commands.
func WithWorkDir(dir string) ShellToolOption {
	return func(c *shellToolConfig) {
		c.workDir = dir
	}
}

// WithShellTimeout sets the default command timeout. Default is 30 seconds.
func WithShellTimeout(d time.Duration) ShellToolOption {
	return func(c *shellToolConfig) {
		c.timeout = d
	}
}

// WithKillGrace sets how long a cancelled command may run after SIGTERM
// before it is killed. Default is 5 seconds.
func WithKillGrace(d time.Duration) ShellToolOption {
	return func(c *shellToolConfig) {
		c.killGrace = d
	}
}

// WithShellResultLimit sets the maximum combined output size in bytes.
func WithShellResultLimit(n int) ShellToolOption {
	return func(c *shellToolConfig) {
		c.resultLimit = n
	}
}

func applyShellOpts(opts []ShellToolOption) *shellToolConfig {
	cfg := &shellToolConfig{
		timeout:     30 * time.Second,
		killGrace:   5 * time.Second,
		resultLimit: DefaultResultLimit,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// shellArgs defines arguments for the shell command tool.
type shellArgs struct {
	Command string `json:"command" desc:"The shell command to execute." required:"true"`
	Timeout int    `json:"timeout" desc:"The timeout for the command in seconds."`
}

// NewShellTool creates the execute_shell_command tool. Commands run under
// `bash -c` with combined stdout/stderr. A cancelled command receives
// SIGTERM and is killed after the grace period.
func NewShellTool(opts ...ShellToolOption) Registration {
	cfg := applyShellOpts(opts)

	t := ai.Tool{
		Name: "execute_shell_command",
		Description: "Execute a shell command and return the output. The command will be executed in bash. Examples for commands are:\n" +
			"- `eza` or `ls` for listing files in a directory\n" +
			"- `git` for running git commands\n" +
			"- `fd` or `find` for searching files\n" +
			"- `rg` or `grep` for searching text in files\n" +
			"- `gh` for interfacing with GitHub\n",
		Parameters: ai.MustSchemaFor[shellArgs](),
	}

	handler := typedHandler(func(ctx context.Context, args shellArgs) (string, error) {
		command := strings.TrimSpace(args.Command)
		if command == "" {
			return "", fmt.Errorf("command must not be empty")
		}

		timeout := cfg.timeout
		if args.Timeout > 0 {
			timeout = time.Duration(args.Timeout) * time.Second
		}

		runCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		cmd := exec.CommandContext(runCtx, "bash", "-c", command)
		cmd.Dir = cfg.workDir
		cmd.Cancel = func() error {
			// Terminate first; WaitDelay kills whatever ignores it.
			return cmd.Process.Signal(syscall.SIGTERM)
		}
		cmd.WaitDelay = cfg.killGrace

		out, err := cmd.CombinedOutput()
		if runCtx.Err() == context.DeadlineExceeded {
			return fmt.Sprintf("Command timed out after %s.", timeout), nil
		}
		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				result := fmt.Sprintf("Returncode: %d\n\n%s", exitErr.ExitCode(), out)
				return Truncate(result, cfg.resultLimit), nil
			}
			return "", err
		}

		return Truncate(string(out), cfg.resultLimit), nil
	})

	return Registration{Tool: t, Handler: handler}
}
