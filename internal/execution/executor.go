package execution

import (
	"context"
	"time"

	"difftest/internal/domain"
)

// Task performs the check for a single job
type Task interface {
	Run(ctx context.Context, job domain.Job) domain.Result
}

// Executor executes jobs and returns their results in job order
type Executor interface {
	Execute(ctx context.Context, jobs []domain.Job, task Task) ([]domain.Result, time.Duration, error)
}

// Progress receives running pass/fail counts
type Progress interface {
	Update(passed, failed int)
	Finish()
}
