package repo

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/DevonMartin/gitlite/internal/merge"
	"github.com/DevonMartin/gitlite/internal/refs"
	"github.com/DevonMartin/gitlite/internal/vcscommit"
	"github.com/DevonMartin/gitlite/internal/vcserr"
)

// Merge implements spec.md §4.9 end to end: precondition checks in
// order, the given-is-ancestor and fast-forward fast paths, the
// seven-case per-file classification, conflict synthesis, and
// merge-commit assembly through the same staged-changes pathway as a
// normal commit.
func (r *Repository) Merge(givenName string) error {
	branch, err := r.currentBranch()
	if err != nil {
		return err
	}
	staged, err := r.Staging.List()
	if err != nil {
		return r.logIOErr("list-staging", r.MetaDir, err)
	}
	if len(staged) > 0 || branch.RemovalStage.Size() > 0 {
		return vcserr.ErrUncommittedChanges
	}

	given, err := r.Refs.Get(givenName)
	if err != nil {
		if errors.Is(err, refs.ErrNoSuchBranch) {
			return vcserr.ErrNoSuchBranch
		}
		return r.logIOErr("get-branch", givenName, err)
	}
	if givenName == branch.Name {
		return vcserr.ErrMergeSelf
	}

	current, err := r.loadCommit(branch.Tip)
	if err != nil {
		return err
	}
	givenCommit, err := r.loadCommit(given.Tip)
	if err != nil {
		return err
	}
	if err := r.safetyCheck(current.Tracked, givenCommit.Tracked); err != nil {
		return err
	}

	loader := func(fp string) (*vcscommit.Commit, error) { return r.loadCommit(fp) }
	lca, err := merge.LCA(loader, branch.Tip, given.Tip)
	if err != nil {
		return r.logIOErr("lca", branch.Name, err)
	}
	if lca == given.Tip {
		return vcserr.ErrGivenIsAncestor
	}
	if lca == branch.Tip {
		if err := r.materialize(givenCommit.Tracked); err != nil {
			return err
		}
		branch.Tip = given.Tip
		if err := r.Refs.Put(branch); err != nil {
			return r.logIOErr("persist-branch", branch.Name, err)
		}
		return vcserr.ErrFastForwarded
	}

	ancestorCommit, err := r.loadCommit(lca)
	if err != nil {
		return err
	}
	actions := merge.Classify(ancestorCommit.Tracked, current.Tracked, givenCommit.Tracked)

	names := make([]string, 0, len(actions))
	for f := range actions {
		names = append(names, f)
	}
	sort.Strings(names)

	conflictOccurred := false
	for _, f := range names {
		switch actions[f] {
		case merge.ActionCheckoutAndStage:
			if err := r.applyCheckoutAndStage(f, givenCommit); err != nil {
				return err
			}
		case merge.ActionRemove:
			if err := os.Remove(r.path(f)); err != nil && !os.IsNotExist(err) {
				return r.logIOErr("delete-workdir-file", f, err)
			}
			branch.RemovalStage.Add(f)
		case merge.ActionConflict:
			conflictOccurred = true
			if err := r.applyConflict(f, current, givenCommit); err != nil {
				return err
			}
		case merge.ActionNone:
			// leave the current branch's version untouched
		}
	}

	staged, err = r.Staging.List()
	if err != nil {
		return r.logIOErr("list-staging", r.MetaDir, err)
	}
	tracked, err := r.applyStagedChanges(current.Clone(), staged)
	if err != nil {
		return err
	}
	for _, n := range branch.RemovalStageNames() {
		delete(tracked, n)
	}

	message := fmt.Sprintf("Merged %s into %s.", givenName, branch.Name)
	mergeCommit := vcscommit.NewMerge(message, branch.Tip, given.Tip, tracked)
	if err := r.saveCommit(mergeCommit, branch); err != nil {
		return err
	}

	if conflictOccurred {
		return vcserr.ErrMergeConflict
	}
	return nil
}

func (r *Repository) applyCheckoutAndStage(name string, given *vcscommit.Commit) error {
	data, err := r.Objects.GetBlob(given.Tracked[name])
	if err != nil {
		return r.logIOErr("get-blob", name, err)
	}
	if err := os.WriteFile(r.path(name), data, 0o644); err != nil {
		return r.logIOErr("write-workdir-file", name, err)
	}
	if err := r.Staging.Put(name, r.path(name)); err != nil {
		return r.logIOErr("stage", name, err)
	}
	return nil
}

func (r *Repository) applyConflict(name string, current, given *vcscommit.Commit) error {
	var currentContents, givenContents []byte
	if fp, ok := current.Tracked[name]; ok {
		data, err := r.Objects.GetBlob(fp)
		if err != nil {
			return r.logIOErr("get-blob", name, err)
		}
		currentContents = data
	}
	if fp, ok := given.Tracked[name]; ok {
		data, err := r.Objects.GetBlob(fp)
		if err != nil {
			return r.logIOErr("get-blob", name, err)
		}
		givenContents = data
	}
	markers := merge.ConflictMarkers(currentContents, givenContents)
	if err := os.WriteFile(r.path(name), markers, 0o644); err != nil {
		return r.logIOErr("write-workdir-file", name, err)
	}
	if err := r.Staging.Put(name, r.path(name)); err != nil {
		return r.logIOErr("stage", name, err)
	}
	return nil
}
