// Package refs implements the named branch pointers and the HEAD file
// that names the currently active branch.
package refs

import (
	"sort"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/DevonMartin/gitlite/internal/objects"
)

// Branch is a named pointer to a commit, plus the removal-stage set
// owned by that branch between commits.
type Branch struct {
	Name         string
	Tip          string
	RemovalStage *hashset.Set
}

// branchRecord is the gob-serializable shape of a Branch: hashset.Set
// doesn't implement GobEncode, so it is flattened to a slice on the wire
// and rehydrated on read.
type branchRecord struct {
	Name         string
	Tip          string
	RemovalStage []string
}

// New returns a Branch pointing at tip with an empty removal-stage set.
func New(name, tip string) *Branch {
	return &Branch{Name: name, Tip: tip, RemovalStage: hashset.New()}
}

func (b *Branch) toRecord() branchRecord {
	return branchRecord{Name: b.Name, Tip: b.Tip, RemovalStage: b.RemovalStageNames()}
}

func fromRecord(r branchRecord) *Branch {
	set := hashset.New()
	for _, n := range r.RemovalStage {
		set.Add(n)
	}
	return &Branch{Name: r.Name, Tip: r.Tip, RemovalStage: set}
}

// Serialize encodes the branch record deterministically via gob.
func (b *Branch) Serialize() ([]byte, error) {
	return objects.Serialize(b.toRecord())
}

// Deserialize decodes a branch record previously produced by Serialize.
func Deserialize(data []byte) (*Branch, error) {
	r, err := objects.Deserialize[branchRecord](data)
	if err != nil {
		return nil, err
	}
	return fromRecord(r), nil
}

// RemovalStageNames returns the removal-stage set's members as a sorted
// slice — a convenience for rendering (status) and iteration (commit).
func (b *Branch) RemovalStageNames() []string {
	values := b.RemovalStage.Values()
	names := make([]string, 0, len(values))
	for _, v := range values {
		names = append(names, v.(string))
	}
	sort.Strings(names)
	return names
}
