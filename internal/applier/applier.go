package applier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"steamer/internal/descriptor"
	"steamer/internal/logging"
	"steamer/internal/pathlock"
	"steamer/internal/reconcile"
	"steamer/internal/registry"
)

// ItemResult records the outcome of one applied candidate.
type ItemResult struct {
	Candidate reconcile.UpdateCandidate `json:"candidate"`
	Updated   bool                      `json:"updated"`
	Detail    string                    `json:"detail,omitempty"`
}

// Result aggregates an apply batch. Items preserves input order.
type Result struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Items     []ItemResult `json:"items"`
}

// Applier rewrites descriptors and corrects the registry for update
// candidates.
type Applier struct {
	store  *registry.Store
	locks  *pathlock.Set
	logger *slog.Logger
}

// New creates an Applier. A nil lock set gets a private one; sharing a set
// with the injector is what serializes both against the same paths.
func New(store *registry.Store, locks *pathlock.Set, logger *slog.Logger) (*Applier, error) {
	if store == nil {
		return nil, errors.New("registry store required")
	}
	if locks == nil {
		locks = pathlock.NewSet()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Applier{
		store:  store,
		locks:  locks,
		logger: logging.NewComponentLogger(logger, "apply"),
	}, nil
}

// Apply processes candidates sequentially with no reordering or batching.
// A failed item never aborts the batch and already-applied items are not
// rolled back. The partial result is returned if the context ends mid-run.
func (a *Applier) Apply(ctx context.Context, candidates []reconcile.UpdateCandidate) (*Result, error) {
	result := &Result{Items: make([]ItemResult, 0, len(candidates))}
	if len(candidates) == 0 {
		a.logger.Info("no updates to apply")
		return result, nil
	}

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		item := a.applyOne(ctx, candidate)
		if item.Updated {
			result.Succeeded++
		} else {
			result.Failed++
		}
		result.Items = append(result.Items, item)
	}

	a.logger.Info("apply complete",
		logging.Int("updated", result.Succeeded),
		logging.Int("failed", result.Failed),
	)
	return result, nil
}

func (a *Applier) applyOne(ctx context.Context, candidate reconcile.UpdateCandidate) ItemResult {
	item := ItemResult{Candidate: candidate}

	unlock := a.locks.Lock(candidate.DescriptorPath)
	err := rewriteDescriptor(candidate.DescriptorPath, candidate.Depot, candidate.LatestManifest)
	unlock()
	if err != nil {
		a.logger.Warn("descriptor update failed",
			logging.String(logging.FieldFile, candidate.DescriptorPath),
			logging.Int64(logging.FieldDepot, candidate.Depot),
			logging.Error(err),
		)
		item.Detail = err.Error()
		return item
	}

	if err := a.recordManifest(ctx, candidate); err != nil {
		a.logger.Warn("registry update failed",
			logging.String(logging.FieldFile, candidate.Filename),
			logging.Int64(logging.FieldDepot, candidate.Depot),
			logging.Error(err),
		)
		item.Detail = err.Error()
		return item
	}

	item.Updated = true
	a.logger.Info("descriptor updated",
		logging.String(logging.FieldFile, candidate.Filename),
		logging.Int64(logging.FieldDepot, candidate.Depot),
		logging.String(logging.FieldManifest, candidate.LatestManifest),
	)
	return item
}

// recordManifest corrects existing registry rows for the candidate's key,
// falling back to appending a fresh row when none matched.
func (a *Applier) recordManifest(ctx context.Context, candidate reconcile.UpdateCandidate) error {
	affected, err := a.store.CorrectManifest(ctx, candidate.Filename, candidate.Depot, candidate.LatestManifest)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}
	_, err = a.store.Append(ctx, registry.Row{
		Filename:   candidate.Filename,
		AppID:      candidate.AppID,
		Depot:      candidate.Depot,
		ManifestID: candidate.LatestManifest,
		DestPath:   candidate.DestPath,
		Multi:      candidate.Multi,
	})
	return err
}

// rewriteDescriptor updates the manifest marker through a temp file and
// rename, preserving the descriptor's file mode, then reads the file back to
// confirm the marker landed.
func rewriteDescriptor(path string, depot int64, manifest string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read descriptor: %w", err)
	}
	updated, err := descriptor.UpdateManifest(string(raw), depot, manifest)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat descriptor: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write temp descriptor: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace descriptor: %w", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read back descriptor: %w", err)
	}
	if !descriptor.CarriesManifest(string(written), depot, manifest) {
		return fmt.Errorf("descriptor %s missing depot %d marker after rewrite", path, depot)
	}
	return nil
}
