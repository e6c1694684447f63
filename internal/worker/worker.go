package worker

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"steamer/internal/logging"
	"steamer/internal/reconcile"
)

// CheckCommand is the subcommand name the child is invoked with.
const CheckCommand = "check-worker"

var commandContext = exec.CommandContext

// Runner spawns the check worker subprocess.
type Runner struct {
	executable string
	configPath string
	logger     *slog.Logger
}

// Option configures the runner.
type Option func(*Runner)

// WithExecutable overrides the binary to spawn. The default is the running
// executable itself.
func WithExecutable(path string) Option {
	return func(r *Runner) {
		if path != "" {
			r.executable = path
		}
	}
}

// WithConfigPath forwards an explicit config file to the child so both
// processes resolve the same settings.
func WithConfigPath(path string) Option {
	return func(r *Runner) {
		r.configPath = path
	}
}

// New constructs a Runner.
func New(logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	runner := &Runner{logger: logging.NewComponentLogger(logger, "worker")}
	for _, opt := range opts {
		opt(runner)
	}
	return runner
}

// RunCheck launches the child, relays its stderr into the logger, and
// decodes the candidate array from stdout. A child that died after emitting
// a complete array still yields that array; the abnormal exit is logged.
func (r *Runner) RunCheck(ctx context.Context) ([]reconcile.UpdateCandidate, error) {
	exe := r.executable
	if exe == "" {
		path, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locate executable: %w", err)
		}
		exe = path
	}

	args := []string{CheckCommand}
	if r.configPath != "" {
		args = append(args, "--config", r.configPath)
	}

	cmd := commandContext(ctx, exe, args...) //nolint:gosec
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start check worker: %w", err)
	}
	r.logger.Info("check worker launched", logging.String("executable", exe))

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			r.logger.Info(line)
		}
	}
	if err := scanner.Err(); err != nil {
		r.logger.Warn("worker stderr stream broke", logging.Error(err))
	}

	waitErr := cmd.Wait()
	return r.decodeResult(stdout.Bytes(), waitErr)
}

func (r *Runner) decodeResult(raw []byte, waitErr error) ([]reconcile.UpdateCandidate, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		if waitErr != nil {
			return nil, fmt.Errorf("check worker failed: %w", waitErr)
		}
		return nil, errors.New("check worker produced no output")
	}

	var candidates []reconcile.UpdateCandidate
	if err := json.Unmarshal(raw, &candidates); err != nil {
		if waitErr != nil {
			return nil, fmt.Errorf("check worker failed: %w", waitErr)
		}
		return nil, fmt.Errorf("decode worker output: %w", err)
	}

	if waitErr != nil {
		r.logger.Warn("check worker exited abnormally after emitting its result",
			logging.Error(waitErr),
		)
	}
	if candidates == nil {
		candidates = []reconcile.UpdateCandidate{}
	}
	return candidates, nil
}
