package gitlog

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	l := New(filepath.Join(t.TempDir(), "global log"))
	require.NoError(t, l.Init())
	return l
}

func TestPrependIsNewestFirst(t *testing.T) {
	l := newTestLog(t)
	require.NoError(t, l.Prepend("commit aaaa\nDate: x\nfirst\n"))
	require.NoError(t, l.Prepend("commit bbbb\nDate: x\nsecond\n"))

	raw, err := l.Raw()
	require.NoError(t, err)

	firstIdx := indexOf(raw, "commit bbbb")
	secondIdx := indexOf(raw, "commit aaaa")
	require.True(t, firstIdx >= 0 && secondIdx >= 0)
	assert.Less(t, firstIdx, secondIdx, "the most recently prepended commit must appear first")
}

func TestFingerprintsParsesFortyHexLines(t *testing.T) {
	l := newTestLog(t)
	fp1 := "1111111111111111111111111111111111111111"
	fp2 := "2222222222222222222222222222222222222222"
	require.NoError(t, l.Prepend("commit "+fp1+"\nDate: x\nfirst\n"))
	require.NoError(t, l.Prepend("commit "+fp2+"\nDate: x\nsecond\n"))

	fps, err := l.Fingerprints()
	require.NoError(t, err)
	assert.Equal(t, []string{fp2, fp1}, fps)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
