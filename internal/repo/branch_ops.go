package repo

import (
	"errors"

	"github.com/DevonMartin/gitlite/internal/refs"
	"github.com/DevonMartin/gitlite/internal/vcserr"
)

// Branch implements spec.md §4.8's `branch(name)`: a new pointer at the
// current tip. HEAD and any notion of "active branch" are never
// touched — there is no process-wide singleton for it to desynchronize
// (SPEC_FULL.md's resolution of Open Question 3).
func (r *Repository) Branch(name string) error {
	if r.Refs.Exists(name) {
		return vcserr.ErrBranchAlreadyExists
	}
	current, err := r.currentBranch()
	if err != nil {
		return err
	}
	b := refs.New(name, current.Tip)
	if err := r.Refs.Put(b); err != nil {
		return r.logIOErr("persist-branch", name, err)
	}
	return nil
}

// RemoveBranch implements spec.md §4.8's `rm-branch(name)`: only the
// pointer is deleted, never any commit or blob it reached.
func (r *Repository) RemoveBranch(name string) error {
	currentName, err := r.Refs.HeadBranch()
	if err != nil {
		return r.logIOErr("read-head", r.MetaDir, err)
	}
	if name == currentName {
		return vcserr.ErrCannotRemoveCurrent
	}
	if err := r.Refs.Delete(name); err != nil {
		if errors.Is(err, refs.ErrNoSuchBranch) {
			return vcserr.ErrNoSuchBranchToRemove
		}
		return r.logIOErr("delete-branch", name, err)
	}
	return nil
}
