package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"difftest/internal/domain"
)

// Summarize builds the results document for a finished run
func Summarize(results []domain.Result, duration time.Duration, info RunInfo) *domain.TestResultsOutput {
	meta := domain.TestResultsMeta{
		RunID:           uuid.NewString(),
		DiffProgram:     info.DiffProgram,
		TotalJobs:       len(results),
		Outcomes:        make(map[string]int),
		Configurations:  info.Configurations,
		TestCases:       info.TestCases,
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         info.Workers,
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	details := make([]domain.TestFailure, 0)
	for _, r := range results {
		meta.Outcomes[string(r.Outcome)]++
		switch {
		case r.Passed():
			meta.PassedJobs++
		case r.Failed():
			meta.FailedJobs++
			details = append(details, domain.NewTestFailure(r))
		default:
			meta.SkippedJobs++
		}
	}

	return &domain.TestResultsOutput{Meta: meta, Details: details}
}

// Save writes the run's results to the configured JSON output file.
func (s *JSONStorage) Save(results []domain.Result, duration time.Duration, info RunInfo) (*domain.TestResultsOutput, error) {
	output := Summarize(results, duration, info)
	if err := s.SaveOutput(output); err != nil {
		return output, err
	}
	return output, nil
}

// Load reads the last run's results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.TestResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.TestResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
