// Package applier applies update candidates to deployed descriptor files
// and the registry.
//
// Candidates are processed strictly in the order reconciliation produced
// them, one at a time. The descriptor file is rewritten first, through a
// temp file and rename so a torn write never corrupts it; only then is the
// registry corrected. A registry failure after a successful file rewrite
// leaves the file ahead of the registry, which is acceptable: the next
// reconciliation run reads manifest truth from the file, not the registry,
// so the drift repairs itself.
package applier
