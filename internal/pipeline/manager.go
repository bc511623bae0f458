package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"cookit/internal/config"
	"cookit/internal/logging"
	"cookit/internal/queue"
	"cookit/internal/services"
	"cookit/internal/stage"
)

// stageBinding pairs a queue status with the handler that runs while
// the job carries it.
type stageBinding struct {
	status  queue.Status
	handler stage.Handler
}

// Manager polls the queue and drives claimed jobs through the stages.
type Manager struct {
	cfg    *config.Config
	store  *queue.Store
	logger *slog.Logger

	stages       []stageBinding
	pollInterval time.Duration
	heartbeat    time.Duration
	staleAfter   time.Duration
	budget       time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	wake    chan struct{}
}

// NewManager constructs a pipeline manager with the given stage
// handlers bound in execution order.
func NewManager(cfg *config.Config, store *queue.Store, logger *slog.Logger, acquire, extract, synthesize stage.Handler) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		cfg:    cfg,
		store:  store,
		logger: logging.WithComponent(logger, "pipeline"),
		stages: []stageBinding{
			{status: queue.StatusFetching, handler: acquire},
			{status: queue.StatusExtracting, handler: extract},
			{status: queue.StatusSynthesizing, handler: synthesize},
		},
		pollInterval: time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
		heartbeat:    time.Duration(cfg.Workflow.HeartbeatInterval) * time.Second,
		staleAfter:   time.Duration(cfg.Workflow.HeartbeatTimeout) * time.Second,
		budget:       cfg.JobBudget(),
		wake:         make(chan struct{}, 1),
	}
}

// Start launches the polling loop. It is an error to start a running
// manager.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("pipeline manager already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true
	m.wg.Add(1)
	go m.loop(runCtx)
	return nil
}

// Stop halts the polling loop and waits for the in-flight job to
// settle.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	m.running = false
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
}

// Wake nudges the poll loop so a freshly submitted job is picked up
// without waiting out the poll interval.
func (m *Manager) Wake() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// HealthChecks reports the readiness of every registered stage.
func (m *Manager) HealthChecks(ctx context.Context) []stage.Health {
	checks := make([]stage.Health, 0, len(m.stages))
	for _, binding := range m.stages {
		checks = append(checks, binding.handler.HealthCheck(ctx))
	}
	return checks
}

func (m *Manager) loop(ctx context.Context) {
	defer m.wg.Done()
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		m.reclaimStale(ctx)
		m.drainQueue(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-m.wake:
		}
	}
}

// reclaimStale returns processing jobs with expired heartbeats (an
// earlier daemon instance died mid-run) to pending.
func (m *Manager) reclaimStale(ctx context.Context) {
	if m.staleAfter <= 0 {
		return
	}
	reclaimed, err := m.store.ReclaimStale(ctx, time.Now().Add(-m.staleAfter))
	if err != nil {
		m.logger.Warn("reclaim stale jobs", logging.Error(err))
		return
	}
	if reclaimed > 0 {
		m.logger.Info("reclaimed stale jobs", logging.Int64("count", reclaimed))
	}
}

// drainQueue processes pending jobs until the queue is empty or the
// context ends.
func (m *Manager) drainQueue(ctx context.Context) {
	for ctx.Err() == nil {
		job, err := m.store.ClaimNext(ctx)
		if err != nil {
			m.logger.Error("claim next job", logging.Error(err))
			return
		}
		if job == nil {
			return
		}
		m.processJob(ctx, job)
	}
}

// processJob runs every stage for one job under the wall-clock budget.
// The staging directory is removed on every exit path.
func (m *Manager) processJob(ctx context.Context, job *queue.Job) {
	requestID := uuid.NewString()
	jobCtx, cancel := context.WithTimeout(ctx, m.budget)
	defer cancel()
	jobCtx = services.WithRequestID(jobCtx, requestID)
	jobCtx = services.WithJobID(jobCtx, job.ID)
	jobCtx = services.WithVideoID(jobCtx, job.VideoID)

	logger := m.logger.With(
		logging.String(logging.FieldRequestID, requestID),
		logging.Int64(logging.FieldJobID, job.ID),
		logging.String(logging.FieldVideoID, job.VideoID),
	)
	logger.Info("job started", logging.String("source_url", job.SourceURL))
	started := time.Now()

	stagingDir := m.cfg.JobStagingDir(job.VideoID)
	defer func() {
		if err := os.RemoveAll(stagingDir); err != nil {
			logger.Warn("staging cleanup failed", logging.Error(err))
		}
	}()

	stopHeartbeat := m.startHeartbeat(jobCtx, job.ID)
	defer stopHeartbeat()

	for _, binding := range m.stages {
		job.Status = binding.status
		if err := m.persistJob(job); err != nil {
			m.failJob(job, logger, err)
			return
		}
		logger.Info("stage started", logging.String(logging.FieldStage, string(binding.status)))

		if err := binding.handler.Prepare(jobCtx, job); err != nil {
			m.failJob(job, logger, stageError(jobCtx, err))
			return
		}
		if err := binding.handler.Execute(jobCtx, job); err != nil {
			m.failJob(job, logger, stageError(jobCtx, err))
			return
		}
	}

	job.Status = queue.StatusCompleted
	job.ErrorMessage = ""
	if err := m.persistJob(job); err != nil {
		m.failJob(job, logger, services.Wrap(services.ErrPersistence, "persist", "complete", "cannot persist recipe", err))
		return
	}
	logger.Info("job completed", logging.Duration("elapsed", time.Since(started)))
}

// stageError maps a budget expiry onto the timeout marker so failures
// carry the right taxonomy even when a stage surfaces the raw context
// error.
func stageError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, services.ErrTimeout) {
		return services.Wrap(services.ErrTimeout, "pipeline", "budget", "job exceeded wall-clock budget", err)
	}
	return err
}

// failJob records the failure. Persistence runs without the job
// context so a timed-out job still reaches the failed state.
func (m *Manager) failJob(job *queue.Job, logger *slog.Logger, cause error) {
	job.Status = queue.StatusFailed
	job.ErrorMessage = services.UserMessage(cause)
	if err := m.persistJob(job); err != nil {
		logger.Error("persist failure state", logging.Error(err))
	}
	logger.Error("job failed", logging.Error(cause))
}

func (m *Manager) persistJob(job *queue.Job) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.store.Update(ctx, job)
}

// startHeartbeat refreshes the job's liveness timestamp until the
// returned stop function runs.
func (m *Manager) startHeartbeat(ctx context.Context, jobID int64) func() {
	if m.heartbeat <= 0 {
		return func() {}
	}
	done := make(chan struct{})
	var once sync.Once
	go func() {
		ticker := time.NewTicker(m.heartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.store.UpdateHeartbeat(ctx, jobID); err != nil {
					m.logger.Warn("heartbeat update failed", logging.Error(err))
				}
			}
		}
	}()
	return func() { once.Do(func() { close(done) }) }
}
