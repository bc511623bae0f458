package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"cookit/internal/services"
)

// stderrTailLimit bounds how much captured stderr is carried into error
// messages and logs.
const stderrTailLimit = 2048

// Command describes a single external tool invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Env     []string
	Timeout time.Duration
}

// Result captures the outcome of a finished invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes commands. The interface exists so stage handlers can
// be tested with a fake that never touches the host.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewRunner returns the default Runner implementation.
func NewRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes cmd and waits for it to finish. A Command.Timeout of
// zero means the context alone bounds execution. Non-zero exit status
// returns an error wrapping services.ErrExternalTool; a deadline hit
// returns one wrapping services.ErrTimeout. Captured output is returned
// in both cases.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	var result Result
	if strings.TrimSpace(cmd.Name) == "" {
		return result, fmt.Errorf("run command: name required")
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if cmd.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	execCmd := exec.CommandContext(runCtx, cmd.Name, cmd.Args...) //nolint:gosec
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	if len(cmd.Env) > 0 {
		execCmd.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	start := time.Now()
	err := execCmd.Run()
	result.Duration = time.Since(start)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err == nil {
		return result, nil
	}

	if ctxErr := runCtx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return result, fmt.Errorf("%s timed out after %s: %w", cmd.Name, result.Duration.Round(time.Millisecond), services.ErrTimeout)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, fmt.Errorf("%s exited with status %d: %s: %w",
			cmd.Name, result.ExitCode, StderrTail(result.Stderr), services.ErrExternalTool)
	}
	return result, fmt.Errorf("%s: %w", cmd.Name, err)
}

// StderrTail returns the last portion of captured stderr, trimmed and
// bounded, suitable for inclusion in error messages.
func StderrTail(stderr string) string {
	trimmed := strings.TrimSpace(stderr)
	if trimmed == "" {
		return "(no stderr output)"
	}
	if len(trimmed) > stderrTailLimit {
		trimmed = trimmed[len(trimmed)-stderrTailLimit:]
		if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 && idx < len(trimmed)-1 {
			trimmed = trimmed[idx+1:]
		}
	}
	return trimmed
}
