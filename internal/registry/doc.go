// Package registry persists the deployment history of descriptor files in
// SQLite.
//
// Every injected depot produces one row keyed by (filename, depot); repeated
// injections of the same file append rather than overwrite, so the newest row
// per key is the current belief about a deployment. LatestByKey performs that
// fold, DistinctFiles enumerates the files worth re-checking, and
// CorrectManifest repairs a stale manifest in place after an update lands.
//
// The store is not the source of truth for manifest values. Descriptor files
// on disk are. The registry only remembers where files went and what was in
// them at deployment time, which is why reconciliation re-parses files rather
// than trusting these rows.
package registry
