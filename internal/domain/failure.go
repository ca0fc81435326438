package domain

// TestFailure is the persisted record of a failed job
type TestFailure struct {
	Mode         Mode    `json:"mode"`
	Config       string  `json:"config"`
	Label        string  `json:"label"`
	Group        string  `json:"group"`
	TestName     string  `json:"test_name"`
	Before       string  `json:"before"`
	After        string  `json:"after"`
	Outcome      Outcome `json:"outcome"`
	Command      string  `json:"command"`
	Output       string  `json:"output,omitempty"`
	PatchOutput  string  `json:"patch_output,omitempty"`
	Expected     string  `json:"expected_sha1,omitempty"`
	Actual       string  `json:"actual_sha1,omitempty"`
	ArchivePath  string  `json:"archive_path,omitempty"`
	ArchiveError string  `json:"archive_error,omitempty"`
	Message      string  `json:"message,omitempty"`
	Resolved     bool    `json:"resolved,omitempty"` // Track if failure is marked as resolved
}

// NewTestFailure flattens a failed result into its persisted form
func NewTestFailure(r Result) TestFailure {
	f := TestFailure{
		Mode:        r.Job.Mode,
		Config:      r.Job.Config.String(),
		Label:       r.Job.Config.Label(),
		Group:       r.Job.Group,
		TestName:    r.Job.Case.Name,
		Before:      r.Job.Case.Before.Path,
		After:       r.Job.Case.After.Path,
		Outcome:     r.Outcome,
		Command:     r.Command,
		Output:      r.Output,
		PatchOutput: r.PatchOutput,
		Expected:    r.Expected,
		Actual:      r.Actual,
		ArchivePath: r.ArchivePath,
		Message:     r.Note,
	}
	if r.ArchiveErr != nil {
		f.ArchiveError = r.ArchiveErr.Error()
	}
	if r.Err != nil {
		f.Message = r.Err.Error()
	}
	return f
}
