package resolver

import (
	"context"
	"errors"
)

// ErrNoData reports that the remote source has no manifest history for the
// requested depot. It is an expected outcome, not a transient failure.
var ErrNoData = errors.New("no manifest data for depot")

// Resolver looks up the newest known manifest id for a depot.
type Resolver interface {
	LatestManifest(ctx context.Context, depot int64) (string, error)
}

// Func adapts a plain function to the Resolver interface.
type Func func(ctx context.Context, depot int64) (string, error)

// LatestManifest invokes the wrapped function.
func (f Func) LatestManifest(ctx context.Context, depot int64) (string, error) {
	return f(ctx, depot)
}
