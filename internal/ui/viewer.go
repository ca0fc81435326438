package ui

import "difftest/internal/domain"

// Viewer displays run failures in an interactive TUI
type Viewer interface {
	View(results *domain.TestResultsOutput) error
}
