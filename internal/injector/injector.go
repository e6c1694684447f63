package injector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"steamer/internal/config"
	"steamer/internal/descriptor"
	"steamer/internal/logging"
	"steamer/internal/pathlock"
	"steamer/internal/placement"
	"steamer/internal/registry"
	"steamer/internal/steampath"
)

// Status classifies the outcome for one source file.
type Status string

const (
	// StatusInjected means the file was placed, archived, and recorded in
	// the registry for every manifest-bearing depot.
	StatusInjected Status = "injected"
	// StatusCopyOnly means the file was placed and archived but declares no
	// manifests, so the registry has nothing to track.
	StatusCopyOnly Status = "copy-only"
	// StatusSkipped means the source was not eligible (missing or not .lua).
	StatusSkipped Status = "skipped"
	// StatusFailed means placement, archiving, or recording went wrong.
	StatusFailed Status = "failed"
)

// FileResult reports what happened to one source.
type FileResult struct {
	Source      string  `json:"source"`
	Status      Status  `json:"status"`
	FinalPath   string  `json:"final_path,omitempty"`
	ArchivePath string  `json:"archive_path,omitempty"`
	AppID       int64   `json:"appid,omitempty"`
	Depots      []int64 `json:"depots,omitempty"`
	Detail      string  `json:"detail,omitempty"`
}

// Summary aggregates a batch. Copied and Archived count fully-onboarded
// files; a file that was placed but failed later counts only as an error.
type Summary struct {
	Copied   int          `json:"copied"`
	Archived int          `json:"archived"`
	Skipped  int          `json:"skipped"`
	Errors   int          `json:"errors"`
	Files    []FileResult `json:"files"`
}

// Injector places descriptors into the plugin directory and records them.
type Injector struct {
	cfg    *config.Config
	store  *registry.Store
	locks  *pathlock.Set
	logger *slog.Logger
}

// New constructs an Injector. A nil lock set gets a private one; sharing a
// set with the applier serializes both against the same destination files.
func New(cfg *config.Config, store *registry.Store, locks *pathlock.Set, logger *slog.Logger) (*Injector, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if store == nil {
		return nil, errors.New("registry store required")
	}
	if locks == nil {
		locks = pathlock.NewSet()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Injector{
		cfg:    cfg,
		store:  store,
		locks:  locks,
		logger: logging.NewComponentLogger(logger, "inject"),
	}, nil
}

// Inject onboards the named sources in order. The plugin directory is
// resolved once up front and a resolution failure aborts the whole batch;
// everything after that is per-file and the batch always runs to the end.
// The partial summary comes back if the context ends mid-batch.
func (i *Injector) Inject(ctx context.Context, sources []string, mode placement.Mode) (*Summary, error) {
	destDir, err := steampath.PluginDir(i.cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve plugin directory: %w", err)
	}

	summary := &Summary{Files: make([]FileResult, 0, len(sources))}
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		result := i.injectOne(ctx, source, destDir, mode)
		switch result.Status {
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Errors++
		default:
			summary.Copied++
			summary.Archived++
		}
		summary.Files = append(summary.Files, result)
	}

	i.logger.Info("injection complete",
		logging.Int("copied", summary.Copied),
		logging.Int("archived", summary.Archived),
		logging.Int("skipped", summary.Skipped),
		logging.Int("errors", summary.Errors),
	)
	return summary, nil
}

func (i *Injector) injectOne(ctx context.Context, source, destDir string, mode placement.Mode) FileResult {
	result := FileResult{Source: source}

	src, err := filepath.Abs(source)
	if err != nil {
		result.Status = StatusFailed
		result.Detail = fmt.Sprintf("resolve source: %v", err)
		return result
	}
	result.Source = src

	if _, statErr := os.Stat(src); statErr != nil || !strings.EqualFold(filepath.Ext(src), ".lua") {
		i.logger.Warn("source skipped, not a .lua descriptor",
			logging.String(logging.FieldFile, src),
		)
		result.Status = StatusSkipped
		result.Detail = "not a .lua file"
		return result
	}

	// Read failures degrade to an empty parse rather than aborting here;
	// placement decides whether the file is actually usable.
	var text string
	if raw, readErr := os.ReadFile(src); readErr == nil {
		text = string(raw)
	}

	parsed := descriptor.LoadSidecar(src).Apply(descriptor.Parse(text))
	appID := parsed.AppID
	if appID == 0 {
		if inferred, inferErr := descriptor.InferAppID(src); inferErr == nil {
			appID = inferred
		}
	}
	manifests := parsed.Manifests()

	target := filepath.Join(destDir, filepath.Base(src))
	unlock := i.locks.Lock(target)
	defer unlock()

	finalPath, err := placement.PlaceWithBackup(src, destDir, mode)
	if err != nil {
		i.logger.Error("placement failed",
			logging.String(logging.FieldFile, src),
			logging.Error(err),
		)
		result.Status = StatusFailed
		result.Detail = err.Error()
		return result
	}
	result.FinalPath = finalPath

	archivePath, err := placement.Archive(finalPath, i.cfg.Paths.ArchiveDir)
	if err != nil {
		i.logger.Error("archiving failed",
			logging.String(logging.FieldFile, finalPath),
			logging.Error(err),
		)
		result.Status = StatusFailed
		result.Detail = err.Error()
		return result
	}
	result.ArchivePath = archivePath
	i.logger.Info("archived copy created",
		logging.String(logging.FieldFile, filepath.Base(archivePath)),
	)

	result.AppID = appID
	if len(manifests) == 0 {
		i.logger.Info("copied without manifests, updater cannot track this file",
			logging.String(logging.FieldFile, filepath.Base(finalPath)),
		)
		result.Status = StatusCopyOnly
		return result
	}

	depots := make([]int64, 0, len(manifests))
	for depot := range manifests {
		depots = append(depots, depot)
	}
	slices.Sort(depots)
	multi := len(manifests) > 1

	for _, depot := range depots {
		_, err := i.store.Append(ctx, registry.Row{
			Filename:   filepath.Base(finalPath),
			AppID:      appID,
			Depot:      depot,
			ManifestID: manifests[depot],
			DestPath:   destDir,
			Multi:      multi,
		})
		if err != nil {
			i.logger.Error("registry record failed",
				logging.String(logging.FieldFile, filepath.Base(finalPath)),
				logging.Int64(logging.FieldDepot, depot),
				logging.Error(err),
			)
			result.Status = StatusFailed
			result.Detail = err.Error()
			return result
		}
		result.Depots = append(result.Depots, depot)
		i.logger.Info("descriptor injected",
			logging.String(logging.FieldFile, filepath.Base(finalPath)),
			logging.Int64(logging.FieldDepot, depot),
			logging.String(logging.FieldManifest, manifests[depot]),
		)
	}

	result.Status = StatusInjected
	return result
}
