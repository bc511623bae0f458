package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"cookit/internal/config"
	"cookit/internal/deps"
	"cookit/internal/logging"
	"cookit/internal/pipeline"
	"cookit/internal/queue"
	"cookit/internal/services"
)

// ErrAlreadyRunning indicates another daemon instance holds the lock.
var ErrAlreadyRunning = errors.New("daemon already running")

// Daemon ties the queue store, the pipeline manager, and the API server
// into one lifecycle guarded by a file lock.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   *queue.Store
	manager *pipeline.Manager
	api     *apiServer
	lock    *flock.Flock
	running atomic.Bool
}

// New constructs a daemon around an already-open store and manager.
func New(cfg *config.Config, logger *slog.Logger, store *queue.Store, manager *pipeline.Manager) *Daemon {
	d := &Daemon{
		cfg:     cfg,
		logger:  logging.WithComponent(logger, "daemon"),
		store:   store,
		manager: manager,
		lock:    flock.New(filepath.Join(cfg.Paths.LogDir, "cookitd.lock")),
	}
	d.api = newAPIServer(cfg, logger, d)
	return d
}

// Start acquires the instance lock, recovers interrupted jobs, and
// brings up the pipeline manager and the API server.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return ErrAlreadyRunning
	}
	if err := d.cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	locked, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w (lock held at %s)", ErrAlreadyRunning, d.lock.Path())
	}

	statuses := deps.CheckBinaries(deps.Requirements(d.cfg))
	if missing := deps.MissingRequired(statuses); len(missing) > 0 {
		_ = d.lock.Unlock()
		return services.Wrap(services.ErrConfiguration, "daemon", "preflight",
			fmt.Sprintf("required tools missing: %s", strings.Join(missing, ", ")), nil)
	}
	for _, status := range statuses {
		if !status.Available && status.Optional {
			d.logger.Warn("optional tool unavailable",
				logging.String("tool", status.Name),
				logging.String("detail", status.Detail))
		}
	}

	reset, err := d.store.ResetStuckProcessing(ctx)
	if err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("reset interrupted jobs: %w", err)
	}
	if reset > 0 {
		d.logger.Info("requeued interrupted jobs", logging.Int64("count", reset))
	}

	if err := d.manager.Start(ctx); err != nil {
		_ = d.lock.Unlock()
		return fmt.Errorf("start pipeline manager: %w", err)
	}
	if err := d.api.start(ctx); err != nil {
		d.manager.Stop()
		_ = d.lock.Unlock()
		return fmt.Errorf("start api server: %w", err)
	}

	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String("api_bind", d.api.addr()),
		logging.String("queue_db", d.store.Path()))
	return nil
}

// Stop shuts down the API server and the pipeline manager, then sweeps
// any row still stuck in a processing status.
func (d *Daemon) Stop(ctx context.Context) {
	if !d.running.Swap(false) {
		return
	}
	d.api.stop(ctx)
	d.manager.Stop()

	sweepCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if failed, err := d.store.FailProcessing(sweepCtx, queue.DaemonStopReason); err != nil {
		d.logger.Error("sweep in-flight jobs", logging.Error(err))
	} else if failed > 0 {
		d.logger.Warn("marked interrupted jobs failed", logging.Int64("count", failed))
	}
	d.logger.Info("daemon stopped")
}

// Close releases the instance lock. Call after Stop.
func (d *Daemon) Close() error {
	return d.lock.Unlock()
}

// Running reports whether the daemon has completed startup.
func (d *Daemon) Running() bool {
	return d.running.Load()
}
