package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"difftest/internal/config"
	"difftest/internal/domain"
)

func result(name string, outcome domain.Outcome) domain.Result {
	return domain.Result{
		Job: domain.Job{
			Mode:   domain.ModePatch,
			Config: domain.Configuration{Algorithm: "p", Params: []domain.Param{{Flag: "U", Value: "1"}}},
			Group:  "basic",
			Case:   domain.TestCase{Name: name},
		},
		Outcome: outcome,
	}
}

func TestSummarize(t *testing.T) {
	failed := result("b", domain.OutcomeChecksumMismatch)
	failed.ArchivePath = "out/failed/p_U1_basic/b"
	failed.ArchiveErr = errors.New("disk full")

	out := Summarize([]domain.Result{
		result("a", domain.OutcomePassed),
		failed,
		result("c", domain.OutcomeSkipped),
	}, 1500*time.Millisecond, RunInfo{DiffProgram: "/bin/diffy", Configurations: 1, TestCases: 3, Workers: 1})

	assert.NotEmpty(t, out.Meta.RunID)
	assert.Equal(t, 3, out.Meta.TotalJobs)
	assert.Equal(t, 1, out.Meta.PassedJobs)
	assert.Equal(t, 1, out.Meta.FailedJobs)
	assert.Equal(t, 1, out.Meta.SkippedJobs)
	assert.Equal(t, 1, out.Meta.Outcomes["checksum_mismatch"])
	assert.InDelta(t, 1.5, out.Meta.DurationSeconds, 0.001)

	require.Len(t, out.Details, 1)
	d := out.Details[0]
	assert.Equal(t, "b", d.TestName)
	assert.Equal(t, "p_U1", d.Label)
	assert.Equal(t, "-a p -U1", d.Config)
	assert.Equal(t, "disk full", d.ArchiveError)
}

func TestJSONStorage_SaveLoad(t *testing.T) {
	cfg := config.New()
	cfg.RunRoot = t.TempDir()
	st := NewJSONStorage(cfg)

	saved, err := st.Save([]domain.Result{result("x", domain.OutcomeAbnormalExit)}, time.Second, RunInfo{Workers: 2})
	require.NoError(t, err)

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, saved.Meta.RunID, loaded.Meta.RunID)
	require.Len(t, loaded.Details, 1)
	assert.Equal(t, domain.OutcomeAbnormalExit, loaded.Details[0].Outcome)

	loaded.Details[0].Resolved = true
	require.NoError(t, st.SaveOutput(loaded))

	again, err := st.Load()
	require.NoError(t, err)
	assert.True(t, again.Details[0].Resolved)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.RunRoot = t.TempDir()

	_, err := NewJSONStorage(cfg).Load()
	assert.Error(t, err)
}
