package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"difftest/internal/cli"
	"difftest/internal/config"
	"difftest/internal/discovery"
	"difftest/internal/storage"
	"difftest/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies.
// Components that depend on flag values are built when the command executes.
func NewCommands(cfg *config.Config, logger *zap.Logger) *Commands {
	scanner := discovery.NewScanner(cfg.PathsToIgnore)
	filter := discovery.NewFilter()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(os.Stdout)
	reporter := ui.NewReporter(os.Stdout)
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, logger, scanner, filter, jsonStorage, formatter, reporter),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register wires the commands into rootCmd. The root command itself runs the suite.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config, level zap.AtomicLevel) {
	rootCmd.Use = "difftest <diff-program>"
	rootCmd.Args = cobra.ExactArgs(1)
	rootCmd.RunE = c.Run.Execute
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	// Update config with environment and flags after parsing
	applyFlags := func(cmd *cobra.Command, args []string) error {
		if err := cfg.LoadEnv(".env"); err != nil {
			return err
		}
		timeoutSet := cmd.Flags().Lookup("timeout") != nil && cmd.Flags().Changed("timeout")
		cfg.ApplyFlags(flags.ToConfigFlags(timeoutSet))
		if flags.Verbose {
			level.SetLevel(zapcore.DebugLevel)
		}
		return nil
	}
	rootCmd.PreRunE = applyFlags

	rootCmd.Flags().BoolVar(&flags.ShowTestList, "show-test-list", false, "Show list of tests and exit")
	rootCmd.Flags().StringVar(&flags.Fixtures, "fixtures", "", "Directory holding the before/after fixture tree (default \""+config.DefaultFixturesRoot+"\")")
	rootCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g. 'foo*' or 'basic/*')")
	rootCmd.Flags().StringVar(&flags.Matrix, "matrix", "", "YAML file describing the patch and crash configuration matrices")
	rootCmd.Flags().StringVar(&flags.Patch, "patch", "", "Patch-apply utility (default \""+config.DefaultPatchProgram+"\")")
	rootCmd.Flags().DurationVar(&flags.Timeout, "timeout", config.DefaultTimeout, "Per-process timeout, 0 disables it")
	rootCmd.Flags().IntVarP(&flags.Jobs, "jobs", "j", 0, "Number of tests to run in parallel (default 1)")
	rootCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	rootCmd.Flags().BoolVar(&flags.FailExit, "fail-exit", false, "Exit with status 1 when any test failed")
	rootCmd.Flags().BoolVar(&flags.StrictExitCodes, "strict-exit-codes", false, "Also fail round trips when diff exits >1 or patch exits nonzero")
	rootCmd.PersistentFlags().StringVarP(&flags.Out, "out", "o", "", "Run root for scratch space, archive and results (default \""+config.DefaultRunRoot+"\")")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View failures of the last run interactively",
		Long:    "Browse failed tests from the last run's results file, with their commands, output and archived patches",
		Args:    cobra.NoArgs,
		RunE:    c.Failures.Execute,
		PreRunE: applyFlags,
	}
	rootCmd.AddCommand(failuresCmd)
}
