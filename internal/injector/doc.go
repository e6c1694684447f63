// Package injector onboards source descriptors into the plugin directory.
//
// Each source is placed verbatim (content is never edited on the way in),
// archived, and recorded in the registry once per manifest-bearing depot. A
// descriptor with no manifest markers is still placed and archived but gets
// no registry rows; the reconciler has nothing to track in it, and the
// outcome is reported as copy-only so the caller can tell the difference.
// Files are processed independently: one bad source never stops the batch.
package injector
