package repo

import (
	"github.com/DevonMartin/gitlite/internal/refs"
	"github.com/DevonMartin/gitlite/internal/vcscommit"
	"github.com/DevonMartin/gitlite/internal/vcserr"
)

// Commit implements spec.md §4.4: preconditions, applying staged
// additions and removals onto a clone of the parent's tracked set, and
// the five-step ordering of §5 (validate, read, write objects, update
// refs/HEAD, update global log).
func (r *Repository) Commit(message string) error {
	if message == "" {
		return vcserr.ErrEmptyCommitMessage
	}

	branch, err := r.currentBranch()
	if err != nil {
		return err
	}
	staged, err := r.Staging.List()
	if err != nil {
		return r.logIOErr("list-staging", r.MetaDir, err)
	}
	removed := branch.RemovalStageNames()
	if len(staged) == 0 && len(removed) == 0 {
		return vcserr.ErrNoChangesToCommit
	}

	parent, err := r.loadCommit(branch.Tip)
	if err != nil {
		return err
	}

	tracked, err := r.applyStagedChanges(parent.Clone(), staged)
	if err != nil {
		return err
	}
	for _, name := range removed {
		delete(tracked, name)
	}

	next := vcscommit.New(message, branch.Tip, tracked)
	if err := r.saveCommit(next, branch); err != nil {
		return err
	}
	return nil
}

// applyStagedChanges moves every staged file into the object store,
// overwriting any existing tracked entry for the same filename, and
// returns the updated tracked set.
func (r *Repository) applyStagedChanges(tracked map[string]string, staged []string) (map[string]string, error) {
	for _, name := range staged {
		data, err := r.Staging.Read(name)
		if err != nil {
			return nil, r.logIOErr("read-staged", name, err)
		}
		fp, err := r.Objects.PutBlobBytes(data)
		if err != nil {
			return nil, r.logIOErr("put-blob", name, err)
		}
		tracked[name] = fp
		if err := r.Staging.Remove(name); err != nil {
			return nil, r.logIOErr("clear-staged", name, err)
		}
	}
	return tracked, nil
}

// saveCommit writes next to the object store, repoints branch's tip,
// clears its removal-stage, persists the branch, and prepends the
// rendered commit to the global log.
func (r *Repository) saveCommit(next *vcscommit.Commit, branch *refs.Branch) error {
	data, err := next.Serialize()
	if err != nil {
		return r.logIOErr("serialize-commit", branch.Name, err)
	}
	fp, err := r.Objects.PutCommit(data)
	if err != nil {
		return r.logIOErr("put-commit", branch.Name, err)
	}

	branch.Tip = fp
	branch.RemovalStage.Clear()
	if err := r.Refs.Put(branch); err != nil {
		return r.logIOErr("persist-branch", branch.Name, err)
	}
	if err := r.Log.Prepend(next.String(fp)); err != nil {
		return r.logIOErr("append-global-log", branch.Name, err)
	}
	return nil
}
