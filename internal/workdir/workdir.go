// Package workdir reconciles the working directory with a target commit:
// materialization, the untracked-file safety check, and deletion of
// files a target commit does not retain. Only regular files at the top
// of the working directory are tracked (spec.md Non-goals: no symlink or
// directory tracking).
package workdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/emirpasic/gods/sets/hashset"

	"github.com/DevonMartin/gitlite/internal/objects"
)

// ErrUntrackedInTheWay is returned by the untracked-file safety check
// when materializing a target would silently clobber a file the user
// never told the engine about.
var ErrUntrackedInTheWay = errors.New("workdir: untracked file in the way")

// ListFiles returns the sorted names of regular files at the top level
// of dir, skipping the repo's own metadata directory.
func ListFiles(dir, metaDirName string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("workdir: list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Name() == metaDirName {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("workdir: stat %s: %w", e.Name(), err)
		}
		if info.Mode().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// SafetyCheck aborts materialization before any file is touched if a
// file in the working directory is untracked by the current commit and
// would be overwritten by target's version (spec.md §4.7/§4.9).
func SafetyCheck(wdFiles []string, currentTracked, targetTracked map[string]string) error {
	for _, f := range wdFiles {
		_, isTracked := currentTracked[f]
		_, wouldOverwrite := targetTracked[f]
		if !isTracked && wouldOverwrite {
			return fmt.Errorf("%w: %s", ErrUntrackedInTheWay, f)
		}
	}
	return nil
}

// Materialize replaces the top-level contents of dir with exactly the
// files in target (read from store), per spec.md §4.7:
//  1. delete every file currently in the working directory,
//  2. write every tracked entry of target under its original filename,
//  3. (staging directory emptying is the caller's responsibility, since
//     it isn't owned by this package).
func Materialize(dir, metaDirName string, target map[string]string, store *objects.Store) error {
	existing, err := ListFiles(dir, metaDirName)
	if err != nil {
		return err
	}
	for _, f := range existing {
		if err := os.Remove(filepath.Join(dir, f)); err != nil {
			return fmt.Errorf("workdir: remove %s: %w", f, err)
		}
	}
	for name, fp := range target {
		data, err := store.GetBlob(fp)
		if err != nil {
			return fmt.Errorf("workdir: materialize %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("workdir: write %s: %w", name, err)
		}
	}
	return nil
}

// UntrackedSet returns the set of working-directory filenames that are
// neither tracked by the current commit nor present in staging, or that
// are staged for removal — spec.md §4.6's Untracked classification.
func UntrackedSet(wdFiles []string, tracked map[string]string, staged map[string]bool, removalStage *hashset.Set) *hashset.Set {
	out := hashset.New()
	for _, f := range wdFiles {
		_, isTracked := tracked[f]
		isStaged := staged[f]
		isRemoved := removalStage.Contains(f)
		if (!isTracked && !isStaged) || isRemoved {
			out.Add(f)
		}
	}
	return out
}
