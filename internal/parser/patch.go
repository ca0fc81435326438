package parser

import (
	"fmt"
	"io"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"difftest/internal/domain"
)

// PatchParser reads unified diffs, either git-style or traditional ---/+++ headers
type PatchParser struct{}

// NewPatchParser creates a new PatchParser
func NewPatchParser() *PatchParser {
	return &PatchParser{}
}

// ParseStats counts files, hunks and changed lines in a patch.
// An empty patch yields zero stats and no error.
func (p *PatchParser) ParseStats(r io.Reader) (domain.PatchStats, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return domain.PatchStats{}, fmt.Errorf("parse patch: %w", err)
	}

	var stats domain.PatchStats
	stats.Files = len(files)
	for _, f := range files {
		stats.Fragments += len(f.TextFragments)
		for _, frag := range f.TextFragments {
			stats.Added += frag.LinesAdded
			stats.Deleted += frag.LinesDeleted
		}
	}
	return stats, nil
}
