package domain

// TestResultsMeta contains metadata about a harness run
type TestResultsMeta struct {
	RunID           string         `json:"run_id"`
	DiffProgram     string         `json:"diff_program"`
	TotalJobs       int            `json:"total_jobs"`
	PassedJobs      int            `json:"passed_jobs"`
	FailedJobs      int            `json:"failed_jobs"`
	SkippedJobs     int            `json:"skipped_jobs"`
	Outcomes        map[string]int `json:"outcomes"`
	Configurations  int            `json:"configurations"`
	TestCases       int            `json:"test_cases"`
	Duration        string         `json:"duration"`
	DurationSeconds float64        `json:"duration_seconds"`
	Workers         int            `json:"workers"`
	Timestamp       string         `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for a run
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}
