package refs

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchSerializeRoundTrip(t *testing.T) {
	b := New("master", "fp1")
	b.RemovalStage.Add("a.txt")
	b.RemovalStage.Add("b.txt")

	data, err := b.Serialize()
	require.NoError(t, err)

	decoded, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, "master", decoded.Name)
	assert.Equal(t, "fp1", decoded.Tip)
	assert.Equal(t, []string{"a.txt", "b.txt"}, decoded.RemovalStageNames())
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s := New(filepath.Join(dir, "refs"), filepath.Join(dir, "HEAD"))
	require.NoError(t, s.Init())
	return s
}

func TestStorePutGetDeleteList(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(New("master", "fp1")))
	require.NoError(t, s.Put(New("dev", "fp2")))

	names, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"dev", "master"}, names)

	b, err := s.Get("master")
	require.NoError(t, err)
	assert.Equal(t, "fp1", b.Tip)

	assert.True(t, s.Exists("dev"))
	require.NoError(t, s.Delete("dev"))
	assert.False(t, s.Exists("dev"))

	_, err = s.Get("dev")
	assert.ErrorIs(t, err, ErrNoSuchBranch)
}

func TestHeadBranchRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Put(New("master", "fp1")))
	require.NoError(t, s.SetHeadBranch("master"))

	name, err := s.HeadBranch()
	require.NoError(t, err)
	assert.Equal(t, "master", name)

	current, err := s.CurrentBranch()
	require.NoError(t, err)
	assert.Equal(t, "fp1", current.Tip)
}
