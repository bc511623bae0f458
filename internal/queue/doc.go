// Package queue persists analysis jobs in SQLite.
//
// One row exists per derived video id. Submission is idempotent: a
// resubmitted URL maps onto the existing row, and only failed rows are
// reset for another attempt. The pipeline claims pending jobs, drives
// them through the processing statuses, and records either the final
// recipe document or the failure message on the same row.
package queue
