package discovery

import (
	"path/filepath"
	"strings"

	"difftest/internal/domain"
)

// Filter narrows an inventory by test name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the cases whose name matches pattern and drops groups left empty.
// Supports patterns like "foo*" or "*space*"; a pattern without wildcards is a substring match.
// The input inventory is not modified.
func (f *Filter) FilterByName(inv *domain.Inventory, pattern string) *domain.Inventory {
	if pattern == "" || inv == nil {
		return inv
	}

	out := &domain.Inventory{Root: inv.Root}
	for _, group := range inv.Groups {
		var cases []domain.TestCase
		for _, tc := range group.Cases {
			if matchName(tc.Name, pattern) || matchName(group.Name+"/"+tc.Name, pattern) {
				cases = append(cases, tc)
			}
		}
		if len(cases) > 0 {
			out.Groups = append(out.Groups, domain.TestGroup{Dir: group.Dir, Name: group.Name, Cases: cases})
		}
	}
	return out
}

func matchName(name, pattern string) bool {
	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	// If pattern contains wildcards but filepath.Match didn't match,
	// try a more flexible substring match for patterns like "*space*"
	if strings.Contains(pattern, "*") {
		hasNonEmptyPart := false
		for _, part := range strings.Split(pattern, "*") {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	// If no wildcards, do a simple contains check
	if !strings.Contains(pattern, "?") {
		return strings.Contains(name, pattern)
	}
	return false
}
