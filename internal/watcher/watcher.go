package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"steamer/internal/applier"
	"steamer/internal/config"
	"steamer/internal/logging"
	"steamer/internal/reconcile"
)

// CheckRunner produces update candidates, typically in a child process.
type CheckRunner interface {
	RunCheck(ctx context.Context) ([]reconcile.UpdateCandidate, error)
}

// CandidateApplier applies update candidates to files and the registry.
type CandidateApplier interface {
	Apply(ctx context.Context, candidates []reconcile.UpdateCandidate) (*applier.Result, error)
}

// Watcher owns the watch-mode lifecycle.
type Watcher struct {
	cfg       *config.Config
	runner    CheckRunner
	applier   CandidateApplier
	logger    *slog.Logger
	interval  time.Duration
	autoApply bool

	lockPath string
	lock     *flock.Flock

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Option configures optional watcher behaviour.
type Option func(*Watcher)

// WithInterval overrides the configured check interval.
func WithInterval(interval time.Duration) Option {
	return func(w *Watcher) {
		if interval > 0 {
			w.interval = interval
		}
	}
}

// LockFile returns the single-instance lock location for a config. The
// status command probes the same path to tell whether a watcher is running.
func LockFile(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.LogDir, "steamer-watch.lock")
}

// New constructs a watcher. The applier may be nil when auto apply is off.
func New(cfg *config.Config, runner CheckRunner, app CandidateApplier, logger *slog.Logger, opts ...Option) (*Watcher, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if runner == nil {
		return nil, errors.New("check runner required")
	}
	if cfg.Workflow.AutoApply && app == nil {
		return nil, errors.New("auto apply enabled but no applier provided")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	lockPath := LockFile(cfg)
	w := &Watcher{
		cfg:       cfg,
		runner:    runner,
		applier:   app,
		logger:    logging.NewComponentLogger(logger, "watch"),
		interval:  time.Duration(cfg.Workflow.CheckInterval) * time.Minute,
		autoApply: cfg.Workflow.AutoApply,
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// LockPath returns the single-instance lock file location.
func (w *Watcher) LockPath() string {
	return w.lockPath
}

// Start acquires the instance lock and launches the loop. The first cycle
// runs immediately; later cycles follow the ticker.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return errors.New("watch loop already running")
	}

	if err := w.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}
	ok, err := w.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire watch lock: %w", err)
	}
	if !ok {
		return errors.New("another watch instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.running = true
	w.wg.Add(1)
	go w.run(runCtx)

	w.logger.Info("watch loop started",
		logging.Duration("interval", w.interval),
		logging.Bool("auto_apply", w.autoApply),
		logging.String("lock", w.lockPath),
	)
	return nil
}

// Stop ends the loop, waits for an in-flight cycle, and releases the lock.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	cancel := w.cancel
	w.running = false
	w.cancel = nil
	w.mu.Unlock()

	cancel()
	w.wg.Wait()
	if err := w.lock.Unlock(); err != nil {
		w.logger.Warn("failed to release watch lock", logging.Error(err))
	}
	w.logger.Info("watch loop stopped")
}

func (w *Watcher) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.cycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.cycle(ctx)
		}
	}
}

func (w *Watcher) cycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	ctx = logging.WithRunID(ctx, uuid.NewString())
	logger := logging.WithContext(ctx, w.logger)
	started := time.Now()
	logger.Info("check cycle started")

	candidates, err := w.runner.RunCheck(ctx)
	if err != nil {
		logger.Error("check cycle failed", logging.Error(err))
		return
	}
	if len(candidates) == 0 {
		logger.Info("everything up to date", logging.Duration("duration", time.Since(started)))
		return
	}

	if !w.autoApply {
		for _, candidate := range candidates {
			logger.Info("update available, run apply to install",
				logging.String(logging.FieldFile, candidate.Filename),
				logging.Int64(logging.FieldDepot, candidate.Depot),
				logging.String("current_manifest", candidate.CurrentManifest),
				logging.String("latest_manifest", candidate.LatestManifest),
			)
		}
		logger.Info("check cycle finished",
			logging.Int("updates", len(candidates)),
			logging.Duration("duration", time.Since(started)),
		)
		return
	}

	result, err := w.applier.Apply(ctx, candidates)
	if err != nil {
		logger.Error("auto apply failed", logging.Error(err))
		return
	}
	logger.Info("check cycle finished",
		logging.Int("updates", len(candidates)),
		logging.Int("applied", result.Succeeded),
		logging.Int("failed", result.Failed),
		logging.Duration("duration", time.Since(started)),
	)
}
