package queue

import "time"

// Status represents the lifecycle of an analysis job.
type Status string

const (
	StatusPending      Status = "pending"
	StatusFetching     Status = "fetching"
	StatusExtracting   Status = "extracting"
	StatusSynthesizing Status = "synthesizing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusFetching,
	StatusExtracting,
	StatusSynthesizing,
	StatusCompleted,
	StatusFailed,
}

var processingStatuses = map[Status]struct{}{
	StatusFetching:     {},
	StatusExtracting:   {},
	StatusSynthesizing: {},
}

// IsProcessing reports whether the status is a non-terminal working
// state.
func (s Status) IsProcessing() bool {
	_, ok := processingStatuses[s]
	return ok
}

// IsTerminal reports whether the status is completed or failed.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether the status is known.
func (s Status) Valid() bool {
	for _, status := range allStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// DaemonStopReason is the error message set on jobs failed by daemon
// shutdown.
const DaemonStopReason = "Daemon stopped"

// Job is one analysis attempt for a source video.
type Job struct {
	ID            int64
	VideoID       string
	SourceURL     string
	Platform      string
	Status        Status
	ErrorMessage  string
	RecipeJSON    string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	StartedAt     *time.Time
	CompletedAt   *time.Time
	LastHeartbeat *time.Time
}
