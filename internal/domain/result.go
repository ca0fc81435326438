package domain

import "time"

// Mode selects which check a job performs
type Mode string

const (
	ModePatch Mode = "patch"
	ModeCrash Mode = "crash"
)

// Outcome is the verdict of a single job
type Outcome string

const (
	OutcomePassed           Outcome = "passed"
	OutcomeChecksumMismatch Outcome = "checksum_mismatch"
	OutcomeAbnormalExit     Outcome = "abnormal_exit"
	OutcomeTimedOut         Outcome = "timed_out"
	OutcomeError            Outcome = "error"
	OutcomeSkipped          Outcome = "skipped"
)

// ProcessResult is the captured outcome of one process invocation
type ProcessResult struct {
	ExitCode int
	Output   string
	Duration time.Duration
	TimedOut bool
}

// Job is one (configuration, test case) unit of work
type Job struct {
	Mode   Mode
	Config Configuration
	Group  string // TestGroup.Name
	Case   TestCase
}

// ID returns "<group>/<name>" for reporting
func (j Job) ID() string {
	return j.Group + "/" + j.Case.Name
}

// PatchStats summarises a generated patch
type PatchStats struct {
	Files     int   `json:"files"`
	Fragments int   `json:"fragments"`
	Added     int64 `json:"added"`
	Deleted   int64 `json:"deleted"`
}

// Result is the outcome of one job
type Result struct {
	Job         Job
	Outcome     Outcome
	Command     string // Command line of the diff invocation
	Output      string // Captured diff output (stderr in patch mode)
	PatchOutput string // Captured patch output
	DiffExit    int
	PatchExit   int
	Expected    string // SHA-1 of the after file
	Actual      string // SHA-1 of the patched before file
	Stats       PatchStats
	Note        string // Non-fatal remarks, e.g. an unparseable patch
	ArchivePath string
	ArchiveErr  error
	Err         error // Harness error behind OutcomeError
	Duration    time.Duration
}

// Passed reports whether the job succeeded
func (r Result) Passed() bool {
	return r.Outcome == OutcomePassed
}

// Failed reports whether the job ran and did not succeed
func (r Result) Failed() bool {
	return r.Outcome != OutcomePassed && r.Outcome != OutcomeSkipped
}
