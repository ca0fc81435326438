package execution

import "difftest/internal/domain"

// Plan expands configurations x inventory into jobs.
// Order is configuration-major, then group, then case, so sequential runs are deterministic.
func Plan(mode domain.Mode, configs []domain.Configuration, inv *domain.Inventory) []domain.Job {
	if inv == nil {
		return nil
	}
	jobs := make([]domain.Job, 0, len(configs)*inv.CaseCount())
	for _, cfg := range configs {
		jobs = append(jobs, PlanConfiguration(mode, cfg, inv)...)
	}
	return jobs
}

// PlanConfiguration returns the jobs of a single configuration
func PlanConfiguration(mode domain.Mode, cfg domain.Configuration, inv *domain.Inventory) []domain.Job {
	jobs := make([]domain.Job, 0, inv.CaseCount())
	for _, group := range inv.Groups {
		for _, tc := range group.Cases {
			jobs = append(jobs, domain.Job{Mode: mode, Config: cfg, Group: group.Name, Case: tc})
		}
	}
	return jobs
}
