// Package stage defines the contract the pipeline manager needs from
// each processing stage.
package stage

import (
	"context"

	"cookit/internal/queue"
)

// Handler describes one pipeline stage. Prepare validates inputs and
// stamps the job before Execute does the work; HealthCheck reports
// whether the stage's external dependencies are usable.
type Handler interface {
	Prepare(context.Context, *queue.Job) error
	Execute(context.Context, *queue.Job) error
	HealthCheck(context.Context) Health
}

// Health summarizes the readiness of a pipeline stage.
type Health struct {
	Name   string
	Ready  bool
	Detail string
}

// Healthy constructs a ready Health record.
func Healthy(name string) Health {
	return Health{Name: name, Ready: true}
}

// Unhealthy constructs an unhealthy Health record with context detail.
func Unhealthy(name, detail string) Health {
	return Health{Name: name, Ready: false, Detail: detail}
}
