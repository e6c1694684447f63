// Package descriptor parses, renders, and rewrites the marker dialect used by
// managed depot descriptor files.
//
// A descriptor names one application id, plus per-depot access tokens and
// manifest versions, through addappid/setManifestid markers. Parsing is
// tolerant: case-insensitive, whitespace-flexible, and silent about text it
// does not recognize. Serialization is canonical so rendered files are
// byte-stable regardless of input formatting. In-place manifest rewrites keep
// every byte of the file the markers do not own.
//
// The package is pure text transformation; callers own all file I/O. Sidecar
// loading is the one exception because the sidecar is a fallback input to
// parsing, not a managed artifact.
package descriptor
