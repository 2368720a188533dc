// Package vcserr collects the exact, stable error strings the engine's
// user-facing operations report (spec.md §7). Callers compare against
// these sentinels with errors.Is; the CLI layer prints Error() verbatim
// and exits 0 regardless, matching the source tool's behavior of never
// surfacing a nonzero exit code for an expected failure.
package vcserr

import "errors"

var (
	ErrAlreadyInitialized   = errors.New("A Gitlet version-control system already exists in the current directory.")
	ErrNotInitialized       = errors.New("Not in an initialized Gitlet directory.")
	ErrIncorrectOperands    = errors.New("Incorrect operands.")
	ErrFileDoesNotExist     = errors.New("File does not exist.")
	ErrNoChangesToCommit    = errors.New("No changes added to the commit.")
	ErrEmptyCommitMessage   = errors.New("Please enter a commit message.")
	ErrNoReasonToRemove     = errors.New("No reason to remove the file.")
	ErrFileNotInCommit      = errors.New("File does not exist in that commit.")
	ErrNoSuchBranch         = errors.New("No such branch exists.")
	ErrAlreadyOnBranch      = errors.New("No need to checkout the current branch.")
	ErrBranchAlreadyExists  = errors.New("A branch with that name already exists.")
	ErrCannotRemoveCurrent  = errors.New("Cannot remove the current branch.")
	ErrNoSuchBranchToRemove = errors.New("A branch with that name does not exist.")
	ErrNoSuchCommit         = errors.New("No commit with that id exists.")
	ErrNoCommitWithMessage  = errors.New("Found no commit with that message.")
	ErrUntrackedInTheWay    = errors.New("There is an untracked file in the way; delete it, or add and commit it first.")
	ErrUncommittedChanges   = errors.New("You have uncommitted changes.")
	ErrMergeSelf            = errors.New("Cannot merge a branch with itself.")
	ErrGivenIsAncestor      = errors.New("Given branch is an ancestor of the current branch.")
	ErrFastForwarded        = errors.New("Current branch fast-forwarded.")
	ErrMergeConflict        = errors.New("Encountered a merge conflict.")
)
