package verification

import (
	"fmt"
	"os"
	"path/filepath"

	cp "github.com/otiai10/copy"

	"difftest/internal/domain"
)

// Workspace is a scratch directory owned by a single job
type Workspace struct {
	Dir string
}

// NewWorkspace allocates a fresh uniquely named directory under root
func NewWorkspace(root string, job domain.Job) (*Workspace, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create scratch root: %w", err)
	}
	prefix := domain.SanitizeName(job.Config.Label()+"_"+job.Group+"_"+job.Case.Name) + "-"
	dir, err := os.MkdirTemp(root, prefix)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{Dir: dir}, nil
}

// Path returns the path of name inside the workspace
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// CopyIn copies src into the workspace under its base name and returns that name.
// Symlinks are followed so the workspace never aliases a fixture.
func (w *Workspace) CopyIn(src string) (string, error) {
	base := filepath.Base(src)
	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction { return cp.Deep },
	}
	if err := cp.Copy(src, w.Path(base), opts); err != nil {
		return "", fmt.Errorf("copy %s into workspace: %w", src, err)
	}
	return base, nil
}

// Remove deletes the workspace and everything in it
func (w *Workspace) Remove() error {
	return os.RemoveAll(w.Dir)
}
