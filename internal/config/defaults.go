package config

import "time"

const (
	// DefaultFixturesRoot is the directory scanned for before/after pairs
	DefaultFixturesRoot = "test_cases"
	// DefaultRunRoot is the directory holding scratch space, archive and results
	DefaultRunRoot = "out"
	// DefaultScratchDir is the workspace root under the run root
	DefaultScratchDir = "workdir"
	// DefaultArchiveDir is the failure archive under the run root
	DefaultArchiveDir = "failed"
	// DefaultOutputJSONFile is the results document under the run root
	DefaultOutputJSONFile = "results.json"
	// DefaultPatchProgram is the patch-apply utility
	DefaultPatchProgram = "patch"
	// DefaultTimeout bounds every spawned process
	DefaultTimeout = 60 * time.Second
	// DefaultJobs keeps execution sequential
	DefaultJobs = 1
)

// DefaultPathsToIgnore are directory names skipped while scanning fixtures
var DefaultPathsToIgnore = []string{}
