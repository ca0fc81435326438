package verification

import (
	"context"
	"time"

	"go.uber.org/zap"

	"difftest/internal/config"
	"difftest/internal/domain"
	"difftest/internal/execution"
)

// CrashTester checks only that the diff program exits cleanly
type CrashTester struct {
	diffProgram string
	runner      ProcessRunner
	reporter    Reporter
	logger      *zap.Logger
}

// NewCrashTester creates a new CrashTester
func NewCrashTester(cfg *config.Config, runner ProcessRunner, reporter Reporter, logger *zap.Logger) *CrashTester {
	return &CrashTester{
		diffProgram: cfg.DiffProgram,
		runner:      runner,
		reporter:    reporter,
		logger:      logger,
	}
}

// Run invokes the diff program on the original fixture files from the current directory
func (c *CrashTester) Run(ctx context.Context, job domain.Job) (res domain.Result) {
	start := time.Now()
	res = domain.Result{Job: job}
	defer func() { res.Duration = time.Since(start) }()

	if ctx.Err() != nil {
		res.Outcome = domain.OutcomeSkipped
		return res
	}

	cmd := execution.Command{
		Name: c.diffProgram,
		Args: append(job.Config.Args(), job.Case.Before.Path, job.Case.After.Path),
	}
	res.Command = cmd.String()

	pr, err := c.runner.Run(ctx, cmd)
	if err != nil {
		if cancelled(ctx, err) {
			res.Outcome = domain.OutcomeSkipped
			return res
		}
		res.Outcome = domain.OutcomeError
		res.Err = err
		c.reporter.TestFailed(res)
		return res
	}

	res.DiffExit = pr.ExitCode
	res.Output = pr.Output
	switch {
	case pr.TimedOut:
		res.Outcome = domain.OutcomeTimedOut
	case pr.ExitCode != 0:
		res.Outcome = domain.OutcomeAbnormalExit
	default:
		res.Outcome = domain.OutcomePassed
		return res
	}

	c.logger.Debug("crash test failed", zap.String("test", job.ID()), zap.Int("exit_code", pr.ExitCode))
	c.reporter.TestFailed(res)
	return res
}
