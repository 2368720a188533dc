package repo

import (
	"os"

	"github.com/DevonMartin/gitlite/internal/vcserr"
)

// Add implements spec.md §4.3's stage_add, including the "." shorthand
// for staging every regular file in the working directory.
func (r *Repository) Add(name string) error {
	if name == "." {
		files, err := r.workdirFiles()
		if err != nil {
			return err
		}
		for _, f := range files {
			if err := r.addOne(f); err != nil {
				return err
			}
		}
		return nil
	}
	return r.addOne(name)
}

func (r *Repository) addOne(name string) error {
	if _, err := os.Stat(r.path(name)); err != nil {
		if os.IsNotExist(err) {
			return vcserr.ErrFileDoesNotExist
		}
		return r.logIOErr("stat", name, err)
	}

	branch, err := r.currentBranch()
	if err != nil {
		return err
	}
	if branch.RemovalStage.Contains(name) {
		branch.RemovalStage.Remove(name)
		if err := r.Refs.Put(branch); err != nil {
			return r.logIOErr("persist-branch", branch.Name, err)
		}
	}

	head, err := r.loadCommit(branch.Tip)
	if err != nil {
		return err
	}
	wdFp, err := r.fingerprintWorkdirFile(name)
	if err != nil {
		return err
	}
	if trackedFp, tracked := head.Tracked[name]; tracked && trackedFp == wdFp {
		if err := r.Staging.Remove(name); err != nil {
			return r.logIOErr("unstage", name, err)
		}
		return nil
	}

	if err := r.Staging.Put(name, r.path(name)); err != nil {
		return r.logIOErr("stage", name, err)
	}
	return nil
}

// Remove implements spec.md §4.3's stage_remove.
func (r *Repository) Remove(name string) error {
	branch, err := r.currentBranch()
	if err != nil {
		return err
	}

	applied := false
	if r.Staging.Has(name) {
		if err := r.Staging.Remove(name); err != nil {
			return r.logIOErr("unstage", name, err)
		}
		applied = true
	}

	head, err := r.loadCommit(branch.Tip)
	if err != nil {
		return err
	}
	if _, tracked := head.Tracked[name]; tracked {
		branch.RemovalStage.Add(name)
		if err := r.Refs.Put(branch); err != nil {
			return r.logIOErr("persist-branch", branch.Name, err)
		}
		if err := os.Remove(r.path(name)); err != nil && !os.IsNotExist(err) {
			return r.logIOErr("delete-workdir-file", name, err)
		}
		applied = true
	}

	if !applied {
		return vcserr.ErrNoReasonToRemove
	}
	return nil
}
