package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"difftest/internal/config"
	"difftest/internal/domain"
)

func newArchiver(t *testing.T) (*Archiver, string) {
	t.Helper()
	cfg := config.New()
	cfg.RunRoot = t.TempDir()
	return NewArchiver(cfg, zaptest.NewLogger(t)), cfg.GetArchivePath()
}

func TestArchiver_Path(t *testing.T) {
	a, root := newArchiver(t)

	job := domain.Job{
		Config: domain.Configuration{Algorithm: "p", Params: []domain.Param{{Flag: "U", Value: "0"}}},
		Group:  "basic",
		Case:   domain.TestCase{Name: "foo"},
	}
	assert.Equal(t, filepath.Join(root, "p_U0_basic", "foo"), a.Path(KeyFor(job)))
}

func TestArchiver_Archive(t *testing.T) {
	a, root := newArchiver(t)

	ws := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(ws, "foo.a"), []byte("hello\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(ws, "foo.patch"), nil, 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(ws, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(ws, "sub", "x"), []byte("x"), 0644))

	key := Key{Label: "p_U0", Group: "basic", Test: "foo"}
	dest, err := a.Archive(ws, key)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "p_U0_basic", "foo"), dest)

	data, err := os.ReadFile(filepath.Join(dest, "foo.a"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
	assert.FileExists(t, filepath.Join(dest, "foo.patch"))
	assert.FileExists(t, filepath.Join(dest, "sub", "x"))

	t.Run("second archive merges into the existing entry", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dest, "notes.txt"), []byte("keep"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(ws, "foo.a"), []byte("changed\n"), 0644))

		_, err := a.Archive(ws, key)
		require.NoError(t, err)

		assert.FileExists(t, filepath.Join(dest, "notes.txt"))
		data, err := os.ReadFile(filepath.Join(dest, "foo.a"))
		require.NoError(t, err)
		assert.Equal(t, "changed\n", string(data))
	})
}

func TestArchiver_Archive_MissingWorkspace(t *testing.T) {
	a, _ := newArchiver(t)

	_, err := a.Archive(filepath.Join(t.TempDir(), "gone"), Key{Label: "p_U0", Group: "g", Test: "t"})
	require.Error(t, err)

	var copyErr *CopyError
	require.True(t, errors.As(err, &copyErr))
	assert.Contains(t, err.Error(), "gone")
}
