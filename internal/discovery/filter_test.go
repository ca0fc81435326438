package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"difftest/internal/domain"
)

func inventory(names ...string) *domain.Inventory {
	group := domain.TestGroup{Dir: "fx/basic", Name: "basic"}
	for _, n := range names {
		group.Cases = append(group.Cases, domain.TestCase{Name: n})
	}
	return &domain.Inventory{Root: "fx", Groups: []domain.TestGroup{group}}
}

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()

	tests := []struct {
		name     string
		cases    []string
		pattern  string
		expected int // Expected number of matches
	}{
		{
			name:     "empty pattern returns all",
			cases:    []string{"whitespace", "unicode", "empty"},
			pattern:  "",
			expected: 3,
		},
		{
			name:     "wildcard pattern matches prefix",
			cases:    []string{"whitespace", "unicode", "empty"},
			pattern:  "white*",
			expected: 1,
		},
		{
			name:     "wildcard pattern matches substring",
			cases:    []string{"crlf_mixed", "crlf_only", "lf"},
			pattern:  "*crlf*",
			expected: 2,
		},
		{
			name:     "simple contains match",
			cases:    []string{"whitespace", "unicode", "empty"},
			pattern:  "code",
			expected: 1,
		},
		{
			name:     "group qualified pattern",
			cases:    []string{"whitespace", "unicode"},
			pattern:  "basic/uni*",
			expected: 1,
		},
		{
			name:     "no matches",
			cases:    []string{"whitespace", "unicode"},
			pattern:  "*missing*",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filter.FilterByName(inventory(tt.cases...), tt.pattern)
			assert.Equal(t, tt.expected, result.CaseCount())
		})
	}
}

func TestFilter_FilterByName_EdgeCases(t *testing.T) {
	filter := NewFilter()

	t.Run("empty groups are dropped", func(t *testing.T) {
		result := filter.FilterByName(inventory("a", "b"), "*zzz*")
		assert.Empty(t, result.Groups)
	})

	t.Run("input is not modified", func(t *testing.T) {
		inv := inventory("keep", "drop")
		filter.FilterByName(inv, "keep")
		assert.Len(t, inv.Groups[0].Cases, 2)
	})
}
