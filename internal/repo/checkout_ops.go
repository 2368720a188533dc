package repo

import (
	"errors"
	"os"

	"github.com/DevonMartin/gitlite/internal/refs"
	"github.com/DevonMartin/gitlite/internal/vcscommit"
	"github.com/DevonMartin/gitlite/internal/vcserr"
	"github.com/DevonMartin/gitlite/internal/workdir"
)

// CheckoutFile implements `checkout -- <name>`: restore name from the
// current branch's tip.
func (r *Repository) CheckoutFile(name string) error {
	head, err := r.headCommit()
	if err != nil {
		return err
	}
	return r.checkoutFileFrom(head, name)
}

// CheckoutCommitFile implements `checkout <commit-prefix> -- <name>`.
func (r *Repository) CheckoutCommitFile(commitPrefix, name string) error {
	c, err := r.loadCommit(commitPrefix)
	if err != nil {
		return err
	}
	return r.checkoutFileFrom(c, name)
}

func (r *Repository) checkoutFileFrom(c *vcscommit.Commit, name string) error {
	fp, ok := c.Tracked[name]
	if !ok {
		return vcserr.ErrFileNotInCommit
	}
	data, err := r.Objects.GetBlob(fp)
	if err != nil {
		return r.logIOErr("get-blob", name, err)
	}
	if err := os.WriteFile(r.path(name), data, 0o644); err != nil {
		return r.logIOErr("write-workdir-file", name, err)
	}
	return nil
}

// CheckoutBranch implements `checkout <branch>`: the untracked-file
// safety check, then materializing the new tip and repointing HEAD.
func (r *Repository) CheckoutBranch(name string) error {
	currentName, err := r.Refs.HeadBranch()
	if err != nil {
		return r.logIOErr("read-head", r.MetaDir, err)
	}
	if name == currentName {
		return vcserr.ErrAlreadyOnBranch
	}
	target, err := r.Refs.Get(name)
	if err != nil {
		if errors.Is(err, refs.ErrNoSuchBranch) {
			return vcserr.ErrNoSuchBranch
		}
		return r.logIOErr("get-branch", name, err)
	}

	current, err := r.headCommit()
	if err != nil {
		return err
	}
	targetCommit, err := r.loadCommit(target.Tip)
	if err != nil {
		return err
	}

	if err := r.safetyCheck(current.Tracked, targetCommit.Tracked); err != nil {
		return err
	}

	if err := r.materialize(targetCommit.Tracked); err != nil {
		return err
	}
	if err := r.Refs.SetHeadBranch(name); err != nil {
		return r.logIOErr("set-head", name, err)
	}
	return nil
}

// safetyCheck runs spec.md §4.7/§4.9's untracked-file safety check
// against the current working directory.
func (r *Repository) safetyCheck(currentTracked, targetTracked map[string]string) error {
	wdFiles, err := r.workdirFiles()
	if err != nil {
		return err
	}
	if err := workdir.SafetyCheck(wdFiles, currentTracked, targetTracked); err != nil {
		return vcserr.ErrUntrackedInTheWay
	}
	return nil
}

// materialize replaces the working directory's contents with target and
// empties the staging directory (spec.md §4.7's three-step algorithm).
func (r *Repository) materialize(target map[string]string) error {
	if err := workdir.Materialize(r.Dir, MetaDirName, target, r.Objects); err != nil {
		return r.logIOErr("materialize", r.Dir, err)
	}
	if err := r.Staging.Clear(); err != nil {
		return r.logIOErr("clear-staging", r.MetaDir, err)
	}
	return nil
}

// Reset implements spec.md §4.7's `reset <commit-prefix>`.
func (r *Repository) Reset(commitPrefix string) error {
	target, err := r.loadCommit(commitPrefix)
	if err != nil {
		return err
	}
	current, err := r.headCommit()
	if err != nil {
		return err
	}
	if err := r.safetyCheck(current.Tracked, target.Tracked); err != nil {
		return err
	}

	branch, err := r.currentBranch()
	if err != nil {
		return err
	}
	resolvedFp, err := r.Objects.Resolve(commitPrefix)
	if err != nil {
		return r.logIOErr("resolve", commitPrefix, err)
	}
	branch.Tip = resolvedFp
	if err := r.Refs.Put(branch); err != nil {
		return r.logIOErr("persist-branch", branch.Name, err)
	}

	return r.materialize(target.Tracked)
}
