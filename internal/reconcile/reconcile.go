package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"steamer/internal/descriptor"
	"steamer/internal/logging"
	"steamer/internal/registry"
	"steamer/internal/resolver"
)

// Reconciler drives one reconciliation run over every file the registry
// knows about.
type Reconciler struct {
	store    *registry.Store
	resolver resolver.Resolver
	logger   *slog.Logger
}

// New creates a Reconciler.
func New(store *registry.Store, res resolver.Resolver, logger *slog.Logger) (*Reconciler, error) {
	if store == nil {
		return nil, errors.New("registry store required")
	}
	if res == nil {
		return nil, errors.New("resolver required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reconciler{
		store:    store,
		resolver: res,
		logger:   logging.NewComponentLogger(logger, "reconcile"),
	}, nil
}

// Run checks every known descriptor against the resolver and reports update
// candidates in file-then-depot order. Depots are queried strictly one at a
// time. On cancellation the partially filled report is returned alongside
// the context error so already-computed candidates are not lost.
func (r *Reconciler) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, r.logger)

	report := &Report{RunID: runID, Candidates: []UpdateCandidate{}}

	files, err := r.store.DistinctFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list known files: %w", err)
	}
	if len(files) == 0 {
		logger.Info("no known files in registry")
		return report, nil
	}

	start := time.Now()
	logger.Info("reconciliation started", logging.Int("files", len(files)))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := r.checkFile(ctx, logger, file, report); err != nil {
			return report, err
		}
	}

	logger.Info("reconciliation complete",
		logging.Int("checked", report.Checked),
		logging.Int("updates", len(report.Candidates)),
		logging.Int("errors", report.Errors),
		logging.Duration("duration", time.Since(start)),
	)
	return report, nil
}

// checkFile re-parses one deployed descriptor and queries the resolver for
// each manifest-bearing depot. It returns an error only when the run
// context is done; every per-file and per-depot failure is recorded in the
// report instead.
func (r *Reconciler) checkFile(ctx context.Context, logger *slog.Logger, file registry.DeployedFile, report *Report) error {
	path := filepath.Join(file.DestPath, file.Filename)

	text, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("descriptor missing", logging.String(logging.FieldFile, path))
			report.Skips = append(report.Skips, FileSkip{Filename: file.Filename, Path: path, Reason: SkipMissing})
			return nil
		}
		logger.Warn("descriptor unreadable", logging.String(logging.FieldFile, path), logging.Error(err))
		report.Skips = append(report.Skips, FileSkip{Filename: file.Filename, Path: path, Reason: SkipReadError, Detail: err.Error()})
		return nil
	}

	parsed := descriptor.Parse(string(text))
	manifests := parsed.Manifests()
	if len(manifests) == 0 {
		logger.Warn("descriptor declares no manifests", logging.String(logging.FieldFile, path))
		report.Skips = append(report.Skips, FileSkip{Filename: file.Filename, Path: path, Reason: SkipNoManifests})
		return nil
	}

	depots := make([]int64, 0, len(manifests))
	for id := range manifests {
		depots = append(depots, id)
	}
	slices.Sort(depots)
	multi := len(manifests) > 1

	for _, depot := range depots {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Checked++
		current := manifests[depot]

		latest, err := r.resolver.LatestManifest(ctx, depot)
		if err != nil {
			report.Errors++
			if errors.Is(err, resolver.ErrNoData) {
				logger.Warn("no manifest data for depot",
					logging.String(logging.FieldFile, file.Filename),
					logging.Int64(logging.FieldDepot, depot),
				)
			} else {
				logger.Warn("manifest check failed",
					logging.String(logging.FieldFile, file.Filename),
					logging.Int64(logging.FieldDepot, depot),
					logging.Error(err),
				)
			}
			continue
		}

		if latest == current {
			logger.Info("up to date",
				logging.String(logging.FieldFile, file.Filename),
				logging.Int64(logging.FieldDepot, depot),
				logging.String(logging.FieldManifest, current),
			)
			continue
		}

		report.Candidates = append(report.Candidates, UpdateCandidate{
			Filename:        file.Filename,
			AppID:           parsed.AppID,
			Multi:           multi,
			Depot:           depot,
			CurrentManifest: current,
			LatestManifest:  latest,
			DescriptorPath:  path,
			DestPath:        file.DestPath,
		})
		logger.Info("update available",
			logging.String(logging.FieldFile, file.Filename),
			logging.Int64(logging.FieldDepot, depot),
			logging.String("current_manifest", current),
			logging.String("latest_manifest", latest),
		)
	}
	return nil
}
