// Package verification runs the per-test checks: round-trip patch
// verification in an isolated workspace, and crash checks against the
// original fixture files.
package verification

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"difftest/internal/archive"
	"difftest/internal/domain"
	"difftest/internal/execution"
)

// ProcessRunner runs one external command
type ProcessRunner interface {
	Run(ctx context.Context, cmd execution.Command) (domain.ProcessResult, error)
}

// Archiver persists a failing workspace
type Archiver interface {
	Archive(workspace string, key archive.Key) (string, error)
}

// Reporter prints failures as they happen
type Reporter interface {
	TestFailed(r domain.Result)
	ArchiveFailed(r domain.Result)
}

// cancelled reports whether err stems from the caller giving up
func cancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// sha1File returns the hex SHA-1 digest of a file's content
func sha1File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
