package archive

import (
	"fmt"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"
	"go.uber.org/zap"

	"difftest/internal/config"
	"difftest/internal/domain"
)

// Key identifies one archived failure
type Key struct {
	Label string // Configuration label, e.g. "p_U0"
	Group string // Sanitized test group name
	Test  string // Test case name
}

// KeyFor returns the archive key of a job
func KeyFor(job domain.Job) Key {
	return Key{Label: job.Config.Label(), Group: job.Group, Test: job.Case.Name}
}

// CopyError reports a workspace that could not be archived
type CopyError struct {
	Src  string
	Dest string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy workspace %q to %q: %v", e.Src, e.Dest, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// Archiver keeps copies of failing workspaces for inspection
type Archiver struct {
	root   string
	logger *zap.Logger
}

// NewArchiver creates an Archiver rooted at the configured archive path
func NewArchiver(cfg *config.Config, logger *zap.Logger) *Archiver {
	return &Archiver{root: cfg.GetArchivePath(), logger: logger}
}

// Path returns <root>/<label>_<group>/<test>
func (a *Archiver) Path(key Key) string {
	return filepath.Join(a.root,
		domain.SanitizeName(key.Label+"_"+key.Group),
		domain.SanitizeName(key.Test))
}

// Archive copies the contents of workspace into the key's destination.
// Existing files at the destination are overwritten, other entries are kept.
func (a *Archiver) Archive(workspace string, key Key) (string, error) {
	dest := a.Path(key)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return dest, &CopyError{Src: workspace, Dest: dest, Err: err}
	}

	err := cp.Copy(workspace, dest, cp.Options{
		OnDirExists: func(src, dest string) cp.DirExistsAction {
			return cp.Merge
		},
	})
	if err != nil {
		return dest, &CopyError{Src: workspace, Dest: dest, Err: err}
	}

	a.logger.Debug("archived workspace", zap.String("src", workspace), zap.String("dest", dest))
	return dest, nil
}
