package parser

import (
	"io"

	"difftest/internal/domain"
)

// Parser inspects a generated patch
type Parser interface {
	ParseStats(r io.Reader) (domain.PatchStats, error)
}
