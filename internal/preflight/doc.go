// Package preflight provides readiness checks for the filesystem paths
// and lookup endpoints Steamer depends on.
//
// The CLI "steamer status" command runs RunAll to display environment
// health before the user commits to an injection or watch session. Each
// check returns a Result instead of an error so a broken environment is
// reported in full rather than stopping at the first problem.
package preflight
