package repo

import (
	"strings"

	"github.com/DevonMartin/gitlite/internal/vcserr"
)

// Log implements spec.md §4.5: walk the current branch's tip via
// Parent1 only (a merge's second parent is never followed), rendering
// each commit in order.
func (r *Repository) Log() (string, error) {
	branch, err := r.currentBranch()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fp := branch.Tip
	for fp != "" {
		c, err := r.loadCommit(fp)
		if err != nil {
			return "", err
		}
		sb.WriteString("===\n")
		sb.WriteString(c.String(fp))
		sb.WriteString("\n")
		fp = c.Parent1
	}
	return sb.String(), nil
}

// GlobalLog returns the global-log file's contents verbatim.
func (r *Repository) GlobalLog() (string, error) {
	raw, err := r.Log.Raw()
	if err != nil {
		return "", r.logIOErr("read-global-log", r.MetaDir, err)
	}
	return raw, nil
}

// Find returns the fingerprints, in global-log order, of every commit
// whose message equals message exactly.
func (r *Repository) Find(message string) ([]string, error) {
	fps, err := r.Log.Fingerprints()
	if err != nil {
		return nil, r.logIOErr("read-global-log", r.MetaDir, err)
	}
	var matches []string
	for _, fp := range fps {
		c, err := r.loadCommit(fp)
		if err != nil {
			return nil, err
		}
		if c.Message == message {
			matches = append(matches, fp)
		}
	}
	if len(matches) == 0 {
		return nil, vcserr.ErrNoCommitWithMessage
	}
	return matches, nil
}
