package vcscommit

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialCommit(t *testing.T) {
	c := Initial()
	assert.Equal(t, "initial commit", c.Message)
	assert.EqualValues(t, 0, c.Timestamp)
	assert.Empty(t, c.Parent1)
	assert.Empty(t, c.Parent2)
	assert.False(t, c.IsMerge())
	assert.Empty(t, c.Tracked)
}

func TestNewClonesTrackedIndependently(t *testing.T) {
	parentTracked := map[string]string{"a.txt": "fp-a"}
	c := New("add a", "parentfp", parentTracked)
	clone := c.Clone()
	clone["b.txt"] = "fp-b"

	assert.NotContains(t, c.Tracked, "b.txt", "mutating a Clone() must not affect the commit's own map")
	parentTracked["c.txt"] = "fp-c"
	assert.NotContains(t, c.Tracked, "c.txt", "New must clone its input, not alias it")
}

func TestNewMergeIsMerge(t *testing.T) {
	c := NewMerge("Merged dev into master.", "p1", "p2", nil)
	assert.True(t, c.IsMerge())
	assert.Equal(t, "p1", c.Parent1)
	assert.Equal(t, "p2", c.Parent2)
}

func TestStringFormatsMergeLineWithSevenHexParents(t *testing.T) {
	c := NewMerge("Merged dev into master.", "abcdef0123456789", "0123456789abcdef", nil)
	rendered := c.String("deadbeef00000000000000000000000000000000")
	require.Contains(t, rendered, "Merge: abcdef0 0123456")
	assert.True(t, strings.HasPrefix(rendered, "commit deadbeef"))
}

func TestSerializeRoundTrip(t *testing.T) {
	c := New("add a", "parentfp", map[string]string{"a.txt": "fpA"})
	data, err := c.Serialize()
	require.NoError(t, err)

	decoded, err := Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, c.Message, decoded.Message)
	assert.Equal(t, c.Tracked, decoded.Tracked)
}

func TestSortedFilenames(t *testing.T) {
	c := New("msg", "", map[string]string{"z.txt": "1", "a.txt": "2", "m.txt": "3"})
	assert.Equal(t, []string{"a.txt", "m.txt", "z.txt"}, c.SortedFilenames())
}

// TestSerializeDeterministicAcrossRepeatedCalls guards against gob's
// unsorted map encoding (encoding/gob's encodeMap walks Tracked in Go's
// randomized range order): the same commit must fingerprint identically
// every time it is serialized, not just on first encode.
func TestSerializeDeterministicAcrossRepeatedCalls(t *testing.T) {
	tracked := map[string]string{
		"a.txt": "fp-a", "b.txt": "fp-b", "c.txt": "fp-c", "d.txt": "fp-d",
		"e.txt": "fp-e", "f.txt": "fp-f", "g.txt": "fp-g", "h.txt": "fp-h",
	}
	c := New("many files", "parentfp", tracked)

	first, err := c.Serialize()
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := c.Serialize()
		require.NoError(t, err)
		assert.Equal(t, first, again, "identical commit must serialize to identical bytes on every call")
	}
}

func TestTimestampIsMilliseconds(t *testing.T) {
	before := time.Now().UnixMilli()
	c := New("msg", "", nil)
	after := time.Now().UnixMilli()
	assert.GreaterOrEqual(t, c.Timestamp, before)
	assert.LessOrEqual(t, c.Timestamp, after)
}
