// Package merge implements lowest-common-ancestor discovery, per-file
// three-way classification, and conflict-marker synthesis for the merge
// engine.
package merge

import (
	"fmt"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/DevonMartin/gitlite/internal/vcscommit"
)

// CommitLoader resolves a fingerprint to its commit record. The merge
// package is deliberately decoupled from the object store so its graph
// algorithms can be unit-tested against an in-memory map.
type CommitLoader func(fingerprint string) (*vcscommit.Commit, error)

// LCA finds the lowest common ancestor of a and b by reachable-ancestor
// intersection: the ancestor set of a is computed by BFS over
// parent1/parent2, then b's ancestry is walked breadth-first, returning
// the first commit found in a's ancestor set.
//
// SPEC_FULL.md's Open Question 4 resolves in favor of this algorithm
// over the source's timestamp-ordered bidirectional walk: it handles
// criss-cross merges correctly, which the timestamp heuristic does not,
// and does not depend on parent timestamps being monotone.
func LCA(load CommitLoader, a, b string) (string, error) {
	ancestorsOfA, err := ancestors(load, a)
	if err != nil {
		return "", err
	}

	visited := hashset.New()
	queue := []string{b}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if visited.Contains(cur) {
			continue
		}
		visited.Add(cur)
		if ancestorsOfA.Contains(cur) {
			return cur, nil
		}
		c, err := load(cur)
		if err != nil {
			return "", fmt.Errorf("merge: lca: %w", err)
		}
		if c.Parent1 != "" {
			queue = append(queue, c.Parent1)
		}
		if c.Parent2 != "" {
			queue = append(queue, c.Parent2)
		}
	}
	return "", fmt.Errorf("merge: lca: no common ancestor found for %s and %s", a, b)
}

// ancestors returns the set of commits reachable from start, inclusive
// of start itself (LCA of a commit with itself is itself — testable
// property 6).
func ancestors(load CommitLoader, start string) (*hashset.Set, error) {
	set := hashset.New()
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if set.Contains(cur) {
			continue
		}
		set.Add(cur)
		c, err := load(cur)
		if err != nil {
			return nil, fmt.Errorf("merge: ancestors: %w", err)
		}
		if c.Parent1 != "" {
			queue = append(queue, c.Parent1)
		}
		if c.Parent2 != "" {
			queue = append(queue, c.Parent2)
		}
	}
	return set, nil
}
