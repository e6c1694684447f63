// Package watcher runs the periodic check cycle as a long-lived loop.
//
// A file lock under the log directory keeps the loop single-instance
// across processes. Each cycle spawns the check worker and, when auto
// apply is enabled, feeds the resulting candidates straight into the
// applier. Cycle failures are logged and the loop keeps going; only
// Stop or context cancellation ends it.
package watcher
