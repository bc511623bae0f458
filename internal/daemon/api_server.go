package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"cookit/internal/api"
	"cookit/internal/config"
	"cookit/internal/deps"
	"cookit/internal/logging"
	"cookit/internal/queue"
	"cookit/internal/videoid"
)

// apiServer exposes the daemon's HTTP surface: analyze, status, queue,
// and health.
type apiServer struct {
	bind     string
	logger   *slog.Logger
	daemon   *Daemon
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, logger *slog.Logger, daemon *Daemon) *apiServer {
	s := &apiServer{
		bind:   cfg.Paths.APIBind,
		logger: logging.WithComponent(logger, "api"),
		daemon: daemon,
	}
	s.server = &http.Server{
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *apiServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /status/{videoId}", s.handleStatus)
	mux.HandleFunc("GET /queue", s.handleQueue)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.bind, err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server terminated", logging.Error(err))
		}
	}()
	go func() {
		<-ctx.Done()
		s.stop(context.Background())
	}()
	return nil
}

func (s *apiServer) stop(ctx context.Context) {
	if s.server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("api shutdown", logging.Error(err))
	}
}

func (s *apiServer) addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.bind
}

// handleAnalyze accepts a video URL, derives its stable id, and either
// returns the finished recipe immediately or schedules an analysis run.
func (s *apiServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req api.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.VideoURL) == "" {
		s.writeError(w, http.StatusBadRequest, "videoUrl is required")
		return
	}

	platform, videoID, err := videoid.Derive(req.VideoURL)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported video URL: %v", err))
		return
	}

	ctx := r.Context()
	if existing, err := s.daemon.store.GetByVideoID(ctx, videoID); err != nil {
		s.writeError(w, http.StatusInternalServerError, "queue lookup failed")
		return
	} else if existing != nil && existing.Status == queue.StatusCompleted {
		s.writeJSON(w, http.StatusOK, api.AnalyzeResponse{
			Success: true,
			Status:  api.StatusCompleted,
			VideoID: videoID,
			Recipe:  json.RawMessage(existing.RecipeJSON),
		})
		return
	}

	_, scheduled, err := s.daemon.store.Submit(ctx, videoID, req.VideoURL, string(platform))
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "cannot schedule analysis")
		return
	}
	s.daemon.manager.Wake()

	s.logger.Info("analysis requested",
		logging.String(logging.FieldVideoID, videoID),
		logging.String("platform", string(platform)),
		logging.Bool("scheduled", scheduled))
	s.writeJSON(w, http.StatusAccepted, api.AnalyzeResponse{
		Success: true,
		Status:  api.StatusProcessing,
		VideoID: videoID,
	})
}

// handleStatus reports the public state of one job. Internal processing
// stages collapse to "processing" so callers see a stable vocabulary.
func (s *apiServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")
	job, err := s.daemon.store.GetByVideoID(r.Context(), videoID)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "queue lookup failed")
		return
	}
	if job == nil {
		s.writeJSON(w, http.StatusNotFound, api.StatusResponse{
			Success: false,
			VideoID: videoID,
			Message: "unknown video id",
		})
		return
	}

	resp := api.StatusResponse{
		Success: true,
		Status:  publicStatus(job.Status),
		VideoID: videoID,
	}
	switch job.Status {
	case queue.StatusCompleted:
		resp.Recipe = json.RawMessage(job.RecipeJSON)
	case queue.StatusFailed:
		resp.Message = job.ErrorMessage
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleQueue(w http.ResponseWriter, r *http.Request) {
	var filters []queue.Status
	for _, raw := range r.URL.Query()["status"] {
		status := queue.Status(strings.ToLower(strings.TrimSpace(raw)))
		if !status.Valid() {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", raw))
			return
		}
		filters = append(filters, status)
	}

	jobs, err := s.daemon.store.List(r.Context(), filters...)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "queue listing failed")
		return
	}

	views := make([]api.JobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, api.JobView{
			ID:          job.ID,
			VideoID:     job.VideoID,
			SourceURL:   job.SourceURL,
			Platform:    job.Platform,
			Status:      string(job.Status),
			Error:       job.ErrorMessage,
			CreatedAt:   job.CreatedAt,
			UpdatedAt:   job.UpdatedAt,
			CompletedAt: job.CompletedAt,
		})
	}
	s.writeJSON(w, http.StatusOK, api.QueueListResponse{Jobs: views})
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	resp := api.HealthResponse{
		Success:     true,
		Running:     s.daemon.Running(),
		QueueDBPath: s.daemon.store.Path(),
	}
	for _, check := range s.daemon.manager.HealthChecks(ctx) {
		resp.Stages = append(resp.Stages, api.StageHealth{
			Name:   check.Name,
			Ready:  check.Ready,
			Detail: check.Detail,
		})
	}
	for _, status := range deps.CheckBinaries(deps.Requirements(s.daemon.cfg)) {
		resp.Dependencies = append(resp.Dependencies, api.DependencyStatus{
			Name:        status.Name,
			Command:     status.Command,
			Description: status.Description,
			Optional:    status.Optional,
			Available:   status.Available,
			Detail:      status.Detail,
		})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// publicStatus maps queue statuses onto the vocabulary the API exposes.
func publicStatus(status queue.Status) string {
	switch status {
	case queue.StatusPending:
		return api.StatusPending
	case queue.StatusCompleted:
		return api.StatusCompleted
	case queue.StatusFailed:
		return api.StatusError
	default:
		return api.StatusProcessing
	}
}

func (s *apiServer) writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("write api response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSON(w, statusCode, map[string]any{
		"success": false,
		"message": message,
	})
}
