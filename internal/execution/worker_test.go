package execution

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"difftest/internal/config"
	"difftest/internal/domain"
)

type fakeTask struct {
	mu    sync.Mutex
	order []string
	fail  map[string]bool
	calls atomic.Int32
}

func (f *fakeTask) Run(ctx context.Context, job domain.Job) domain.Result {
	f.calls.Add(1)
	f.mu.Lock()
	f.order = append(f.order, job.ID())
	f.mu.Unlock()
	if f.fail[job.Case.Name] {
		return domain.Result{Job: job, Outcome: domain.OutcomeChecksumMismatch}
	}
	return domain.Result{Job: job, Outcome: domain.OutcomePassed}
}

type countingProgress struct {
	passed, failed int
	finished       bool
}

func (p *countingProgress) Update(passed, failed int) { p.passed, p.failed = passed, failed }
func (p *countingProgress) Finish()                   { p.finished = true }

func jobs(names ...string) []domain.Job {
	var out []domain.Job
	for _, n := range names {
		out = append(out, domain.Job{Mode: domain.ModePatch, Group: "g", Case: domain.TestCase{Name: n}})
	}
	return out
}

func newPool(workers int, failFast bool) *WorkerPool {
	cfg := config.New()
	cfg.Jobs = workers
	cfg.Flags.FailFast = failFast
	return NewWorkerPool(cfg, zap.NewNop())
}

func TestWorkerPool_Execute_Sequential(t *testing.T) {
	defer goleak.VerifyNone(t)

	task := &fakeTask{fail: map[string]bool{"b": true}}
	progress := &countingProgress{}
	pool := newPool(1, false)
	pool.SetProgress(progress)

	results, _, err := pool.Execute(context.Background(), jobs("a", "b", "c"), task)
	require.NoError(t, err)

	assert.Equal(t, []string{"g/a", "g/b", "g/c"}, task.order)
	require.Len(t, results, 3)
	assert.Equal(t, domain.OutcomePassed, results[0].Outcome)
	assert.Equal(t, domain.OutcomeChecksumMismatch, results[1].Outcome)
	assert.Equal(t, 2, progress.passed)
	assert.Equal(t, 1, progress.failed)
	assert.True(t, progress.finished)
}

func TestWorkerPool_Execute_Parallel(t *testing.T) {
	defer goleak.VerifyNone(t)

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	task := &fakeTask{}
	results, _, err := newPool(4, false).Execute(context.Background(), jobs(names...), task)
	require.NoError(t, err)

	assert.Equal(t, int32(len(names)), task.calls.Load())
	for i, r := range results {
		assert.Equal(t, names[i], r.Job.Case.Name, "results keep job order")
	}
}

func TestWorkerPool_Execute_FailFast(t *testing.T) {
	defer goleak.VerifyNone(t)

	task := &fakeTask{fail: map[string]bool{"b": true}}
	results, _, err := newPool(1, true).Execute(context.Background(), jobs("a", "b", "c", "d"), task)
	require.NoError(t, err)

	assert.Equal(t, int32(2), task.calls.Load())
	assert.Equal(t, domain.OutcomeSkipped, results[2].Outcome)
	assert.Equal(t, domain.OutcomeSkipped, results[3].Outcome)
}

func TestWorkerPool_Execute_CancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	task := &fakeTask{}
	results, _, err := newPool(2, false).Execute(ctx, jobs("a", "b"), task)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), task.calls.Load())
	for _, r := range results {
		assert.Equal(t, domain.OutcomeSkipped, r.Outcome)
	}
}

func TestWorkerPool_Execute_Empty(t *testing.T) {
	results, d, err := newPool(2, false).Execute(context.Background(), nil, &fakeTask{})
	require.NoError(t, err)
	assert.Nil(t, results)
	assert.Zero(t, d)
}
