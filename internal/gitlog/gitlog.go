// Package gitlog implements the append-prepended, newest-first textual
// record of every commit ever created in a repository. Because the
// object store's commit records share a namespace with blobs and are
// not enumerable by directory scan (spec.md §4.2), commit enumeration
// for `global-log` and `find` goes through this log instead.
package gitlog

import (
	"fmt"
	"os"
	"regexp"
)

type Log struct {
	Path string
}

func New(path string) *Log {
	return &Log{Path: path}
}

func (l *Log) Init() error {
	if _, err := os.Stat(l.Path); err == nil {
		return nil
	}
	return os.WriteFile(l.Path, nil, 0o644)
}

// Prepend adds rendered's text to the front of the log, ahead of every
// prior entry — the new commit is always the first thing `global-log`
// prints (testable property 9 of SPEC_FULL.md).
func (l *Log) Prepend(rendered string) error {
	existing, err := os.ReadFile(l.Path)
	if err != nil {
		return fmt.Errorf("gitlog: read: %w", err)
	}
	entry := "===\n" + rendered + "\n"
	tmp := l.Path + ".tmp"
	if err := os.WriteFile(tmp, append([]byte(entry), existing...), 0o644); err != nil {
		return fmt.Errorf("gitlog: write: %w", err)
	}
	return os.Rename(tmp, l.Path)
}

// Raw returns the global log file verbatim, for `global-log`.
func (l *Log) Raw() (string, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return "", fmt.Errorf("gitlog: read: %w", err)
	}
	return string(data), nil
}

var commitLineRe = regexp.MustCompile(`(?m)^commit ([0-9a-f]{40})$`)

// Fingerprints extracts every commit fingerprint recorded in the log, in
// the order they appear (newest first), by parsing each entry's
// "commit <fingerprint>" line — the log's rendered text is the only
// enumeration of all commits this engine keeps.
func (l *Log) Fingerprints() ([]string, error) {
	raw, err := l.Raw()
	if err != nil {
		return nil, err
	}
	matches := commitLineRe.FindAllStringSubmatch(raw, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out, nil
}
