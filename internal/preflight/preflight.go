package preflight

import (
	"context"

	"steamer/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every environment check for the given config. Results
// come back in a fixed order so status output stays stable between runs.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckSteamRoot(cfg))
	results = append(results, CheckPluginDir(cfg))
	results = append(results, CheckDirectoryAccess("Archive directory", cfg.Paths.ArchiveDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	results = append(results, CheckRegistry(ctx, cfg))
	results = append(results, CheckSteamDB(cfg))

	return results
}
