package api

import (
	"encoding/json"
	"time"
)

// Public job statuses exposed by the HTTP surface. Internal processing
// stages all collapse to "processing".
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
)

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	VideoURL string `json:"videoUrl"`
}

// AnalyzeResponse is the reply to POST /analyze.
type AnalyzeResponse struct {
	Success bool            `json:"success"`
	Status  string          `json:"status"`
	VideoID string          `json:"videoId"`
	Recipe  json.RawMessage `json:"recipe,omitempty"`
	Message string          `json:"message,omitempty"`
}

// StatusResponse is the reply to GET /status/{videoId}.
type StatusResponse struct {
	Success bool            `json:"success"`
	Status  string          `json:"status"`
	VideoID string          `json:"videoId"`
	Recipe  json.RawMessage `json:"recipe,omitempty"`
	Message string          `json:"message,omitempty"`
}

// DependencyStatus mirrors the availability of one external tool.
type DependencyStatus struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// StageHealth mirrors the readiness of one pipeline stage.
type StageHealth struct {
	Name   string `json:"name"`
	Ready  bool   `json:"ready"`
	Detail string `json:"detail,omitempty"`
}

// HealthResponse is the reply to GET /health.
type HealthResponse struct {
	Success      bool               `json:"success"`
	Running      bool               `json:"running"`
	QueueDBPath  string             `json:"queueDbPath"`
	Stages       []StageHealth      `json:"stages"`
	Dependencies []DependencyStatus `json:"dependencies"`
}

// JobView is one row in the queue listing.
type JobView struct {
	ID          int64      `json:"id"`
	VideoID     string     `json:"videoId"`
	SourceURL   string     `json:"sourceUrl"`
	Platform    string     `json:"platform"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// QueueListResponse is the reply to GET /queue.
type QueueListResponse struct {
	Jobs []JobView `json:"jobs"`
}
