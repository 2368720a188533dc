// Command gitlite is a local, single-user version-control tool: a
// content-addressed object store, a commit DAG with named branches,
// a staging area, and a three-way merge engine.
package main

import "os"

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCommand().Execute(); err != nil {
		return 0 // every defined outcome, including reported errors, exits 0 (spec.md §6)
	}
	return 0
}
