package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"difftest/internal/archive"
	"difftest/internal/config"
	"difftest/internal/discovery"
	"difftest/internal/domain"
	"difftest/internal/execution"
	"difftest/internal/parser"
	"difftest/internal/storage"
	"difftest/internal/ui"
	"difftest/internal/verification"
)

// RunCommand discovers the fixtures and runs the crash and patch suites
type RunCommand struct {
	config    *config.Config
	logger    *zap.Logger
	scanner   *discovery.Scanner
	filter    *discovery.Filter
	storage   storage.Storage
	formatter *ui.Formatter
	reporter  *ui.Reporter
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	logger *zap.Logger,
	scanner *discovery.Scanner,
	filter *discovery.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
	reporter *ui.Reporter,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		logger:    logger,
		scanner:   scanner,
		filter:    filter,
		storage:   st,
		formatter: formatter,
		reporter:  reporter,
	}
}

// suite is one family of configurations and the task that checks them
type suite struct {
	mode    domain.Mode
	configs []domain.Configuration
	task    execution.Task
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	if err := rc.config.SetDiffProgram(args[0]); err != nil {
		return err
	}

	// Discover tests; a pairing error aborts the whole run
	inv, err := rc.scanner.Scan(rc.config.FixturesRoot)
	if err != nil {
		return err
	}
	inv = rc.filter.FilterByName(inv, rc.config.Flags.NameFilter)

	if rc.config.Flags.ShowTestList {
		return rc.formatter.PrintTestList(inv)
	}

	if inv.CaseCount() == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	matrix, err := config.LoadMatrix(rc.config.MatrixFile)
	if err != nil {
		return err
	}

	// Scratch space is per run; the archive accumulates
	if err := os.RemoveAll(rc.config.GetScratchPath()); err != nil {
		return fmt.Errorf("clear scratch directory: %w", err)
	}

	runner := execution.NewRunner(rc.config, rc.logger)
	archiver := archive.NewArchiver(rc.config, rc.logger)
	pool := execution.NewWorkerPool(rc.config, rc.logger)

	suites := []suite{
		{
			mode:    domain.ModeCrash,
			configs: matrix.Crash.Expand(),
			task:    verification.NewCrashTester(rc.config, runner, rc.reporter, rc.logger),
		},
		{
			mode:    domain.ModePatch,
			configs: matrix.Patch.Expand(),
			task:    verification.NewPatchVerifier(rc.config, runner, archiver, parser.NewPatchParser(), rc.reporter, rc.logger),
		},
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rc.logger.Info("starting run",
		zap.String("diff_program", rc.config.DiffProgram),
		zap.Int("test_cases", inv.CaseCount()),
		zap.Int("crash_configurations", len(suites[0].configs)),
		zap.Int("patch_configurations", len(suites[1].configs)),
		zap.Int("workers", rc.config.GetWorkers()))

	start := time.Now()
	var results []domain.Result
	configCount := 0
	var runErr error

run:
	for _, s := range suites {
		for _, c := range s.configs {
			configCount++
			rc.reporter.ConfigurationStarted(s.mode, c)

			jobs := execution.PlanConfiguration(s.mode, c, inv)
			if ui.ProgressEnabled() {
				pool.SetProgress(ui.NewProgressBar(len(jobs), c.Label()))
			} else {
				pool.SetProgress(nil)
			}

			res, _, err := pool.Execute(ctx, jobs, s.task)
			results = append(results, res...)
			if err != nil {
				runErr = err
				break run
			}
			if rc.config.Flags.FailFast && anyFailed(res) {
				break run
			}
		}
	}
	duration := time.Since(start)

	output, err := rc.storage.Save(results, duration, storage.RunInfo{
		DiffProgram:    rc.config.DiffProgram,
		Configurations: configCount,
		TestCases:      inv.CaseCount(),
		Workers:        rc.config.GetWorkers(),
	})
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}

	rc.formatter.PrintSummary(output)

	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	if rc.config.Flags.FailExit && output.Meta.FailedJobs > 0 {
		return fmt.Errorf("%d test(s) failed", output.Meta.FailedJobs)
	}
	return nil
}

func anyFailed(results []domain.Result) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}
