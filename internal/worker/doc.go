// Package worker launches the check workflow in a child process and
// collects its result.
//
// The child is this same executable invoked as check-worker. Its stdout
// carries exactly one JSON array of update candidates and nothing else;
// human-readable progress arrives on stderr and is relayed line by line
// into the parent's logger as it happens. An abnormal exit is reported but
// does not discard a result the child managed to emit before dying.
package worker
