// Package placement moves descriptor files into the managed plugin directory
// and keeps timestamped archive copies of what was placed.
//
// Placement never destroys data: an existing file at the destination is
// rotated to a .backup name before the new content lands, re-placing a file
// that already lives in the destination is a no-op, and archive copies are
// write-once. Same-second archive collisions are disambiguated with a numeric
// suffix instead of overwriting.
package placement
