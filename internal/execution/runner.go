package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"difftest/internal/config"
	"difftest/internal/domain"
)

// waitDelay bounds how long Wait blocks on output pipes after the process is killed
const waitDelay = 2 * time.Second

// Command is one external program invocation
type Command struct {
	Name   string
	Args   []string
	Dir    string    // Working directory, empty for the current one
	Stdout io.Writer // When set, stdout is written here and only stderr is captured
}

// String renders the command line with shell quoting where needed
func (c Command) String() string {
	parts := make([]string, 0, 1+len(c.Args))
	parts = append(parts, shellQuote(c.Name))
	for _, a := range c.Args {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || strings.ContainsRune("-_./=:,+@%", r))
	}) < 0 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Runner spawns external programs synchronously
type Runner struct {
	timeout time.Duration
	logger  *zap.Logger
}

// NewRunner creates a new Runner using the configured per-process timeout
func NewRunner(cfg *config.Config, logger *zap.Logger) *Runner {
	return &Runner{timeout: cfg.Timeout, logger: logger}
}

// Run executes cmd and waits for it to finish.
// A nonzero exit status is reported in the result, not as an error. If the
// runner's timeout expires the process is killed and TimedOut is set. An error
// is returned when the program cannot be started or ctx is done.
func (r *Runner) Run(ctx context.Context, cmd Command) (domain.ProcessResult, error) {
	if cmd.Name == "" {
		return domain.ProcessResult{}, fmt.Errorf("empty command")
	}

	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	// #nosec G204 -- the program under test is chosen by the operator.
	c := exec.CommandContext(runCtx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.WaitDelay = waitDelay

	var out bytes.Buffer
	c.Stderr = &out
	if cmd.Stdout != nil {
		c.Stdout = cmd.Stdout
	} else {
		c.Stdout = &out
	}

	start := time.Now()
	err := c.Run()
	result := domain.ProcessResult{
		ExitCode: c.ProcessState.ExitCode(),
		Output:   out.String(),
		Duration: time.Since(start),
	}

	r.logger.Debug("process finished",
		zap.String("command", cmd.String()),
		zap.String("dir", cmd.Dir),
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration))

	if err == nil {
		return result, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return result, fmt.Errorf("run %s: %w", cmd.String(), ctxErr)
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
		result.ExitCode = -1
		r.logger.Warn("process timed out", zap.String("command", cmd.String()), zap.Duration("timeout", r.timeout))
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return result, nil
	}
	return result, fmt.Errorf("run %s: %w", cmd.String(), err)
}
