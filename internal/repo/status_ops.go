package repo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/DevonMartin/gitlite/internal/objects"
	"github.com/DevonMartin/gitlite/internal/refs"
	"github.com/DevonMartin/gitlite/internal/vcscommit"
	"github.com/DevonMartin/gitlite/internal/workdir"
)

// Status renders the five sections of spec.md §4.6.
func (r *Repository) Status() (string, error) {
	branchName, err := r.Refs.HeadBranch()
	if err != nil {
		return "", r.logIOErr("read-head", r.MetaDir, err)
	}
	branches, err := r.Refs.List()
	if err != nil {
		return "", r.logIOErr("list-branches", r.MetaDir, err)
	}
	branch, err := r.currentBranch()
	if err != nil {
		return "", err
	}
	head, err := r.loadCommit(branch.Tip)
	if err != nil {
		return "", err
	}
	staged, err := r.Staging.List()
	if err != nil {
		return "", r.logIOErr("list-staging", r.MetaDir, err)
	}
	removed := branch.RemovalStageNames()
	wdFiles, err := r.workdirFiles()
	if err != nil {
		return "", err
	}

	stagedSet := make(map[string]bool, len(staged))
	for _, f := range staged {
		stagedSet[f] = true
	}

	var sb strings.Builder

	sb.WriteString("=== Branches ===\n")
	for _, b := range branches {
		if b == branchName {
			sb.WriteString("*")
		}
		sb.WriteString(b)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("=== Staged Files ===\n")
	for _, f := range staged {
		sb.WriteString(f)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("=== Removed Files ===\n")
	for _, f := range removed {
		sb.WriteString(f)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	modified, err := r.modifiedNotStaged(head, staged, stagedSet, wdFiles, branch)
	if err != nil {
		return "", err
	}
	sb.WriteString("=== Modifications Not Staged For Commit ===\n")
	for _, m := range modified {
		sb.WriteString(m)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	untracked := workdir.UntrackedSet(wdFiles, head.Tracked, stagedSet, branch.RemovalStage)
	names := make([]string, 0)
	for _, v := range untracked.Values() {
		names = append(names, v.(string))
	}
	sort.Strings(names)
	sb.WriteString("=== Untracked Files ===\n")
	for _, f := range names {
		sb.WriteString(f)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String(), nil
}

// modifiedNotStaged implements spec.md §4.6's "modified"/"deleted"
// classification across tracked files and staged files, reporting
// "<name> (modified)" or "<name> (deleted)", sorted.
func (r *Repository) modifiedNotStaged(head *vcscommit.Commit, staged []string, stagedSet map[string]bool, wdFiles []string, branch *refs.Branch) ([]string, error) {
	present := make(map[string]bool, len(wdFiles))
	for _, f := range wdFiles {
		present[f] = true
	}

	var out []string

	for name, trackedFp := range head.Tracked {
		if stagedSet[name] {
			continue // staged files are classified in the staged loop below
		}
		if present[name] {
			wdFp, err := r.fingerprintWorkdirFile(name)
			if err != nil {
				return nil, err
			}
			if wdFp != trackedFp {
				out = append(out, fmt.Sprintf("%s (modified)", name))
			}
			continue
		}
		if !branch.RemovalStage.Contains(name) {
			out = append(out, fmt.Sprintf("%s (deleted)", name))
		}
	}

	for _, name := range staged {
		if !present[name] {
			out = append(out, fmt.Sprintf("%s (deleted)", name))
			continue
		}
		wdFp, err := r.fingerprintWorkdirFile(name)
		if err != nil {
			return nil, err
		}
		stagedData, err := r.Staging.Read(name)
		if err != nil {
			return nil, r.logIOErr("read-staged", name, err)
		}
		stagedFp, err := objects.FingerprintBlob(stagedData)
		if err != nil {
			return nil, err
		}
		if wdFp != stagedFp {
			out = append(out, fmt.Sprintf("%s (modified)", name))
		}
	}

	sort.Strings(out)
	return out, nil
}
