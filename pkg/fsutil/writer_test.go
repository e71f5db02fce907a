package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/devantler-tech/vmprep/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const originalContent = "original content"

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("replaces content and mode", func(t *testing.T) {
		t.Parallel()

		output := writeOriginal(t)

		err := fsutil.WriteFile(output, []byte("updated"), fsutil.FilePermPublic, nil)

		require.NoError(t, err)
		assertFileContent(t, output, "updated")

		info, err := os.Stat(output)
		require.NoError(t, err)
		assert.Equal(t, fsutil.FilePermPublic, info.Mode().Perm())
	})

	t.Run("chowns to the current user", func(t *testing.T) {
		t.Parallel()

		output := filepath.Join(t.TempDir(), "a", "b", "file")
		owner := &fsutil.Owner{UID: os.Getuid(), GID: os.Getgid()}

		err := fsutil.WriteFile(output, []byte("x"), fsutil.FilePermPublic, owner)

		require.NoError(t, err)
		assertFileContent(t, output, "x")
	})

	t.Run("empty output", func(t *testing.T) {
		t.Parallel()

		require.ErrorIs(t, fsutil.WriteFile("", nil, fsutil.FilePermPublic, nil), fsutil.ErrEmptyOutputPath)
	})
}

func TestMkdirAll_ExistingDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	require.NoError(t, fsutil.MkdirAll(dir, fsutil.DirPermPublic, nil))
	require.NoError(t, fsutil.MkdirAll(filepath.Join(dir, "x", "y"), fsutil.DirPermPublic, nil))
	assert.DirExists(t, filepath.Join(dir, "x", "y"))
}

func TestNewOwner(t *testing.T) {
	t.Parallel()

	assert.Nil(t, fsutil.NewOwner(1000, 1000, false))
	assert.Equal(t, &fsutil.Owner{UID: 1000, GID: 100}, fsutil.NewOwner(1000, 100, true))

	var owner *fsutil.Owner

	assert.NoError(t, owner.Chown("/does/not/matter"))
}

func writeOriginal(t *testing.T) string {
	t.Helper()

	output := filepath.Join(t.TempDir(), "existing.txt")
	require.NoError(t, os.WriteFile(output, []byte(originalContent), 0o600))

	return output
}

func assertFileContent(t *testing.T, path, want string) {
	t.Helper()

	//nolint:gosec // G304: path is created by the test.
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}
