// Package vcscommit defines the immutable commit-graph node: message,
// timestamp, up to two parents, and the set of tracked files.
package vcscommit

import (
	"fmt"
	"sort"
	"time"

	"github.com/DevonMartin/gitlite/internal/objects"
)

// DisplayLayout matches spec.md's required rendering format
// "EEE MMM dd HH:mm:ss yyyy Z".
const DisplayLayout = "Mon Jan 02 15:04:05 2006 -0700"

// Commit is an immutable DAG node. Tracked maps an original filename to
// the fingerprint of its blob; this mapping representation is the one
// SPEC_FULL.md's design notes explicitly permit in place of a literal
// (fingerprint‖filename) string-set, provided pairwise (fingerprint,
// filename) comparisons are preserved at every call site that needs them
// (see package merge).
type Commit struct {
	Message     string
	Timestamp   int64 // milliseconds since epoch (spec.md §3)
	DisplayTime string
	Parent1     string // empty for the initial commit
	Parent2     string // empty unless this is a merge commit
	Tracked     map[string]string
}

// trackedEntry is one (filename, blob fingerprint) pair in the
// wire-encoded tracked set.
type trackedEntry struct {
	Name        string
	Fingerprint string
}

// commitRecord is the gob-serializable shape of a Commit: a bare
// map[string]string encodes nondeterministically under encoding/gob,
// since gob's encodeMap walks the map in Go's randomized range order
// rather than sorting keys. Tracked is flattened to entries sorted by
// name before encoding and rehydrated into a map on decode — the same
// treatment branch.go gives RemovalStage.
type commitRecord struct {
	Message     string
	Timestamp   int64
	DisplayTime string
	Parent1     string
	Parent2     string
	Tracked     []trackedEntry
}

// New builds an unsaved commit with the given message, parent1, and a
// cloned tracked set (the caller applies staged additions/removals on
// top before saving).
func New(message string, parent1 string, tracked map[string]string) *Commit {
	now := time.Now().UTC()
	return &Commit{
		Message:     message,
		Timestamp:   now.UnixMilli(),
		DisplayTime: now.Local().Format(DisplayLayout),
		Parent1:     parent1,
		Tracked:     cloneTracked(tracked),
	}
}

// NewMerge builds an unsaved merge commit with two parents.
func NewMerge(message, parent1, parent2 string, tracked map[string]string) *Commit {
	c := New(message, parent1, tracked)
	c.Parent2 = parent2
	return c
}

// Initial returns the special-cased initial commit: message "initial
// commit", timestamp 0 (the Unix epoch), no parents, empty tracked set.
func Initial() *Commit {
	return &Commit{
		Message:     "initial commit",
		Timestamp:   0,
		DisplayTime: time.Unix(0, 0).Local().Format(DisplayLayout),
		Tracked:     make(map[string]string),
	}
}

func cloneTracked(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Clone returns a deep copy of Tracked, suitable for a caller to mutate
// while building the next commit.
func (c *Commit) Clone() map[string]string {
	return cloneTracked(c.Tracked)
}

// IsMerge reports whether this commit has a second parent.
func (c *Commit) IsMerge() bool {
	return c.Parent2 != ""
}

func (c *Commit) toRecord() commitRecord {
	names := c.SortedFilenames()
	entries := make([]trackedEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, trackedEntry{Name: name, Fingerprint: c.Tracked[name]})
	}
	return commitRecord{
		Message:     c.Message,
		Timestamp:   c.Timestamp,
		DisplayTime: c.DisplayTime,
		Parent1:     c.Parent1,
		Parent2:     c.Parent2,
		Tracked:     entries,
	}
}

func fromRecord(r commitRecord) *Commit {
	tracked := make(map[string]string, len(r.Tracked))
	for _, e := range r.Tracked {
		tracked[e.Name] = e.Fingerprint
	}
	return &Commit{
		Message:     r.Message,
		Timestamp:   r.Timestamp,
		DisplayTime: r.DisplayTime,
		Parent1:     r.Parent1,
		Parent2:     r.Parent2,
		Tracked:     tracked,
	}
}

// Serialize encodes the commit record deterministically; the commit's
// fingerprint is computed over these bytes. Tracked is flattened to its
// sorted entries first, since gob's map encoding does not sort keys.
func (c *Commit) Serialize() ([]byte, error) {
	return objects.Serialize(c.toRecord())
}

// Deserialize decodes a commit record previously produced by Serialize.
func Deserialize(data []byte) (*Commit, error) {
	r, err := objects.Deserialize[commitRecord](data)
	if err != nil {
		return nil, err
	}
	return fromRecord(r), nil
}

// String renders one log entry in spec.md §6's format, given the
// commit's own fingerprint (the store does not know its own fingerprint,
// since fingerprints are computed from serialized bytes, not stored in
// the record).
func (c *Commit) String(fingerprint string) string {
	if c.IsMerge() {
		return fmt.Sprintf(
			"commit %s\nMerge: %s %s\nDate: %s\n%s\n",
			fingerprint,
			shortHex(c.Parent1), shortHex(c.Parent2),
			c.DisplayTime,
			c.Message,
		)
	}
	return fmt.Sprintf(
		"commit %s\nDate: %s\n%s\n",
		fingerprint,
		c.DisplayTime,
		c.Message,
	)
}

func shortHex(fp string) string {
	if len(fp) < 7 {
		return fp
	}
	return fp[:7]
}

// SortedFilenames returns Tracked's keys in sorted order, for
// deterministic rendering (status, global-log, etc.).
func (c *Commit) SortedFilenames() []string {
	names := make([]string, 0, len(c.Tracked))
	for name := range c.Tracked {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
