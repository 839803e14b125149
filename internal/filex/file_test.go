package filex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirs(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data", "db", "memories.db")

	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir(path), "idempotent")

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, fi.IsDir())
}

func TestEnsureParentDir_BareFileName(t *testing.T) {
	assert.NoError(t, EnsureParentDir("memories.db"))
	assert.NoError(t, EnsureParentDir(":memory:"))
}

func TestEnsureParentDir_FailsIfFileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	assert.Error(t, EnsureParentDir(filepath.Join(blocker, "memories.db")))
}

func TestReadLimited(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "pic.png")
	require.NoError(t, os.WriteFile(path, []byte("12345"), 0o600))

	data, err := ReadLimited(path, 5)
	require.NoError(t, err)
	assert.Equal(t, "12345", string(data))

	_, err = ReadLimited(path, 4)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = ReadLimited(filepath.Join(tmp, "missing.png"), 5)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
