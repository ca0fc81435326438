package execution

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"difftest/internal/config"
	"difftest/internal/domain"
)

// WorkerPool manages a pool of workers for job execution.
// With one worker, jobs run strictly in order.
type WorkerPool struct {
	workers  int
	failFast bool
	progress Progress
	logger   *zap.Logger
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, logger *zap.Logger) *WorkerPool {
	return &WorkerPool{
		workers:  cfg.GetWorkers(),
		failFast: cfg.Flags.FailFast,
		logger:   logger,
	}
}

// SetProgress sets the progress reporter for the next Execute call
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// Execute runs every job through task and returns the results in job order.
// In fail-fast mode the first failure cancels the remaining jobs, which are
// reported as skipped. The returned error is non-nil only when ctx itself is done.
func (wp *WorkerPool) Execute(ctx context.Context, jobs []domain.Job, task Task) ([]domain.Result, time.Duration, error) {
	if len(jobs) == 0 {
		return nil, 0, ctx.Err()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan int, len(jobs))
	for i := range jobs {
		queue <- i
	}
	close(queue)

	results := make([]domain.Result, len(jobs))
	var mu sync.Mutex
	var passed, failed int
	startTime := time.Now()

	workerCount := wp.workers
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(jobs) {
		workerCount = len(jobs)
	}

	eg, egCtx := errgroup.WithContext(runCtx)
	for w := 1; w <= workerCount; w++ {
		workerID := w
		eg.Go(func() error {
			for i := range queue {
				job := jobs[i]
				if egCtx.Err() != nil {
					results[i] = domain.Result{Job: job, Outcome: domain.OutcomeSkipped}
					continue
				}

				result := task.Run(egCtx, job)
				results[i] = result

				mu.Lock()
				if result.Passed() {
					passed++
				} else if result.Failed() {
					failed++
				}
				if wp.progress != nil {
					wp.progress.Update(passed, failed)
				}
				if wp.failFast && result.Failed() {
					wp.logger.Debug("fail-fast: cancelling remaining jobs",
						zap.Int("worker", workerID), zap.String("test", job.ID()))
					cancel()
				}
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()

	if wp.progress != nil {
		wp.progress.Finish()
	}
	return results, time.Since(startTime), ctx.Err()
}
