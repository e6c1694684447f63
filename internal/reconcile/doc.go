// Package reconcile compares deployed descriptor files against the remote
// manifest source and reports which depots have newer manifests.
//
// The registry only enumerates which files to look at. The descriptor text
// on disk is re-parsed for current manifest values, because registry rows
// can be stale or missing while the file is always ground truth. Files that
// are missing, unreadable, or carry no manifest entries are skipped with a
// distinct reason; per-depot resolver failures are counted and never abort
// the run.
package reconcile
