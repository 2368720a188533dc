package staging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDir(t *testing.T) *Dir {
	t.Helper()
	d := New(filepath.Join(t.TempDir(), "staging"))
	require.NoError(t, d.Init())
	return d
}

func TestPutReadRemove(t *testing.T) {
	d := newTestDir(t)
	src := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(src, []byte("hello"), 0o644))

	require.NoError(t, d.Put("a.txt", src))
	assert.True(t, d.Has("a.txt"))

	data, err := d.Read("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, d.Remove("a.txt"))
	assert.False(t, d.Has("a.txt"))
	// removing an absent file is not an error
	require.NoError(t, d.Remove("a.txt"))
}

func TestListSortedAndClear(t *testing.T) {
	d := newTestDir(t)
	src := filepath.Join(t.TempDir(), "src")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	require.NoError(t, d.Put("z.txt", src))
	require.NoError(t, d.Put("a.txt", src))

	names, err := d.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "z.txt"}, names)

	require.NoError(t, d.Clear())
	names, err = d.List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPutOverwritesPriorStagedVersion(t *testing.T) {
	d := newTestDir(t)
	src := filepath.Join(t.TempDir(), "src")

	require.NoError(t, os.WriteFile(src, []byte("v1"), 0o644))
	require.NoError(t, d.Put("a.txt", src))

	require.NoError(t, os.WriteFile(src, []byte("v2"), 0o644))
	require.NoError(t, d.Put("a.txt", src))

	data, err := d.Read("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}
