package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv
const (
	EnvPatchProgram = "DIFFTEST_PATCH_PROGRAM"
	EnvTimeout      = "DIFFTEST_TIMEOUT"
	EnvJobs         = "DIFFTEST_JOBS"
	EnvFixtures     = "DIFFTEST_FIXTURES"
	EnvRunRoot      = "DIFFTEST_OUT"
)

// Config holds all configuration for a harness run
type Config struct {
	// Input
	FixturesRoot string
	MatrixFile   string

	// Output layout
	RunRoot        string
	ScratchDir     string
	ArchiveDir     string
	OutputJSONFile string

	// Programs
	DiffProgram  string
	PatchProgram string

	// Execution settings
	Timeout         time.Duration
	Jobs            int
	StrictExitCodes bool

	// Paths to ignore when scanning
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	ShowTestList    bool
	Fixtures        string
	Out             string
	Matrix          string
	Patch           string
	Timeout         time.Duration
	TimeoutSet      bool
	Jobs            int
	NameFilter      string
	FailFast        bool
	FailExit        bool
	StrictExitCodes bool
	Verbose         bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		FixturesRoot:   DefaultFixturesRoot,
		RunRoot:        DefaultRunRoot,
		ScratchDir:     DefaultScratchDir,
		ArchiveDir:     DefaultArchiveDir,
		OutputJSONFile: DefaultOutputJSONFile,
		PatchProgram:   DefaultPatchProgram,
		Timeout:        DefaultTimeout,
		Jobs:           DefaultJobs,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// LoadEnv applies an optional .env file and DIFFTEST_* variables on top of the current values.
// A missing .env file is not an error.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	if v := os.Getenv(EnvPatchProgram); v != "" {
		c.PatchProgram = resolveProgramPath(v)
	}
	if v := os.Getenv(EnvFixtures); v != "" {
		c.FixturesRoot = v
	}
	if v := os.Getenv(EnvRunRoot); v != "" {
		c.RunRoot = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		c.Timeout = d
	}
	if v := os.Getenv(EnvJobs); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvJobs, v, err)
		}
		c.Jobs = n
	}
	return nil
}

// ApplyFlags copies parsed flags into the config; set flags win over defaults and environment
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	if flags.Fixtures != "" {
		c.FixturesRoot = flags.Fixtures
	}
	if flags.Out != "" {
		c.RunRoot = flags.Out
	}
	if flags.Matrix != "" {
		c.MatrixFile = flags.Matrix
	}
	if flags.Patch != "" {
		c.PatchProgram = resolveProgramPath(flags.Patch)
	}
	if flags.TimeoutSet {
		c.Timeout = flags.Timeout
	}
	if flags.Jobs > 0 {
		c.Jobs = flags.Jobs
	}
	if flags.StrictExitCodes {
		c.StrictExitCodes = true
	}
}

// SetDiffProgram records the program under test as an absolute path so it
// resolves from inside per-test workspaces. Bare names are looked up on PATH.
func (c *Config) SetDiffProgram(program string) error {
	if program == "" {
		return fmt.Errorf("diff program is required")
	}
	path := program
	if filepath.Base(program) == program {
		if _, err := os.Stat(program); err != nil {
			c.DiffProgram = program
			return nil
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve diff program %s: %w", program, err)
	}
	c.DiffProgram = abs
	return nil
}

// resolveProgramPath makes a program given as a path absolute, since commands
// run from inside per-test workspaces. Bare names are left for PATH lookup.
func resolveProgramPath(program string) string {
	if !strings.ContainsRune(program, '/') && !strings.ContainsRune(program, filepath.Separator) {
		return program
	}
	if abs, err := filepath.Abs(program); err == nil {
		return abs
	}
	return program
}

// GetWorkers returns the worker count, never less than one
func (c *Config) GetWorkers() int {
	if c.Jobs <= 0 {
		return 1
	}
	return c.Jobs
}

// GetScratchPath returns the root under which per-job workspaces are allocated
func (c *Config) GetScratchPath() string {
	return filepath.Join(c.RunRoot, c.ScratchDir)
}

// GetArchivePath returns the root of the failure archive
func (c *Config) GetArchivePath() string {
	return filepath.Join(c.RunRoot, c.ArchiveDir)
}

// GetOutputPath returns the full path to the results JSON file.
// Resolves to an absolute path so run and failures always use the same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.RunRoot, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
