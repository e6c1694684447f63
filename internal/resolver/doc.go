// Package resolver defines the contract for looking up the newest known
// manifest id of a Steam depot from a remote source.
//
// Reconciliation treats the resolver as an opaque, slow, and unreliable
// collaborator: lookups may take several seconds per depot, may report that
// the source has no history for a depot (ErrNoData), or may fail
// transiently. Callers are expected to count failures and move on rather
// than abort a run.
package resolver
