package ui

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"difftest/internal/domain"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func crashJob() domain.Job {
	return domain.Job{
		Mode:   domain.ModeCrash,
		Config: domain.Configuration{Algorithm: "p", Params: []domain.Param{{Flag: "S", Value: "0"}, {Flag: "W", Value: "3"}}},
		Group:  "basic",
		Case:   domain.TestCase{Name: "foo"},
	}
}

func TestReporter_CrashFailure(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out)

	r.ConfigurationStarted(domain.ModeCrash, crashJob().Config)
	r.TestFailed(domain.Result{
		Job:     crashJob(),
		Outcome: domain.OutcomeAbnormalExit,
		Command: "/bin/diffy -a p -S0 -W3 test_cases/basic/foo.a test_cases/basic/foo.b",
		Output:  "segfault-ish",
	})

	text := out.String()
	assert.Contains(t, text, "Test crashiness for configuration '-a p -S0 -W3'")
	assert.Contains(t, text, "Test 'basic/foo' FAILED to execute properly")
	assert.Contains(t, text, "    /bin/diffy -a p -S0 -W3 test_cases/basic/foo.a test_cases/basic/foo.b\n")
	assert.Contains(t, text, "segfault-ish\n")
}

func TestReporter_PatchFailure(t *testing.T) {
	var out bytes.Buffer
	r := NewReporter(&out)

	job := crashJob()
	job.Mode = domain.ModePatch
	r.ConfigurationStarted(domain.ModePatch, job.Config)
	r.TestFailed(domain.Result{Job: job, Outcome: domain.OutcomeChecksumMismatch, Note: "parse patch: bad"})
	r.ArchiveFailed(domain.Result{Job: job, ArchivePath: "out/failed/x", ArchiveErr: errors.New("disk full")})

	text := out.String()
	assert.Contains(t, text, "Running tests for configuration")
	assert.Contains(t, text, "Test 'basic/foo' FAILED (checksum mismatch)")
	assert.Contains(t, text, "note: parse patch: bad")
	assert.Contains(t, text, "out/failed/x")
	assert.Contains(t, text, "disk full")
}

func TestFormatter_PrintTestList(t *testing.T) {
	var out bytes.Buffer
	f := NewFormatter(&out)

	inv := &domain.Inventory{Groups: []domain.TestGroup{{
		Dir:  "test_cases/basic",
		Name: "basic",
		Cases: []domain.TestCase{
			{Name: "bar", Before: domain.SampleFile{Path: "test_cases/basic/bar.a"}, After: domain.SampleFile{Path: "test_cases/basic/bar.b"}},
			{Name: "foo", Before: domain.SampleFile{Path: "test_cases/basic/foo.a"}, After: domain.SampleFile{Path: "test_cases/basic/foo.b"}},
		},
	}}}
	require.NoError(t, f.PrintTestList(inv))

	text := out.String()
	assert.Contains(t, text, "Found 2 test case(s) in 1 group(s)")
	assert.Contains(t, text, "├── bar  (bar.a, bar.b)")
	assert.Contains(t, text, "└── foo  (foo.a, foo.b)")

	out.Reset()
	require.NoError(t, f.PrintTestList(&domain.Inventory{}))
	assert.Contains(t, out.String(), "No test cases found")
}

func TestFormatter_PrintSummary(t *testing.T) {
	var out bytes.Buffer
	f := NewFormatter(&out)

	f.PrintSummary(&domain.TestResultsOutput{Meta: domain.TestResultsMeta{PassedJobs: 6, TotalJobs: 6}})
	assert.Contains(t, out.String(), "All tests passed")

	out.Reset()
	f.PrintSummary(&domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{PassedJobs: 5, FailedJobs: 1, TotalJobs: 6},
		Details: []domain.TestFailure{{
			Mode: domain.ModePatch, Label: "p_U0", Group: "basic", TestName: "foo",
			Outcome: domain.OutcomeChecksumMismatch, ArchivePath: "out/failed/p_U0_basic/foo",
		}},
	})
	text := out.String()
	assert.Contains(t, text, "1 test(s) failed")
	assert.Contains(t, text, "patch p_U0")
	assert.Contains(t, text, "└── basic/foo  checksum_mismatch  -> out/failed/p_U0_basic/foo")
}

func TestFormatFailureDetails(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.patch"), nil, 0644))

	text := formatFailureDetails(domain.TestFailure{
		TestName:    "foo",
		Command:     "diffy -a p [x]",
		ArchivePath: dir,
	})
	assert.Contains(t, text, "foo.patch")
	assert.Contains(t, text, "(empty)")
	assert.NotContains(t, text, "mismatch.diff", "absent artifacts are skipped")
}
