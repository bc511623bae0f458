package queue

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const jobColumns = "id, video_id, source_url, platform, status, error_message, recipe_json, created_at, updated_at, started_at, completed_at, last_heartbeat"

// Submit records a new analysis job for the derived video id, or
// returns the existing row. A previously failed row is reset to
// pending so the video gets another attempt; completed and in-flight
// rows are returned untouched. The second return value reports whether
// a fresh attempt was scheduled.
func (s *Store) Submit(ctx context.Context, videoID, sourceURL, platform string) (*Job, bool, error) {
	timestamp := time.Now().UTC().Format(time.RFC3339Nano)

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO jobs (video_id, source_url, platform, status, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(video_id) DO NOTHING`,
		videoID, sourceURL, platform, StatusPending, timestamp, timestamp,
	)
	if err != nil {
		return nil, false, fmt.Errorf("submit job: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("submit job: rows affected: %w", err)
	}
	if inserted > 0 {
		job, err := s.GetByVideoID(ctx, videoID)
		return job, true, err
	}

	// Existing row: only a failed run is rescheduled.
	resetRes, err := s.execWithRetry(
		ctx,
		`UPDATE jobs
         SET status = ?, error_message = NULL, recipe_json = NULL,
             started_at = NULL, completed_at = NULL, last_heartbeat = NULL,
             updated_at = ?
         WHERE video_id = ? AND status = ?`,
		StatusPending, timestamp, videoID, StatusFailed,
	)
	if err != nil {
		return nil, false, fmt.Errorf("reset failed job: %w", err)
	}
	reset, err := resetRes.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("reset failed job: rows affected: %w", err)
	}

	job, err := s.GetByVideoID(ctx, videoID)
	if err != nil {
		return nil, false, err
	}
	if job == nil {
		return nil, false, fmt.Errorf("submit job: row for %s disappeared", videoID)
	}
	return job, reset > 0, nil
}

// GetByVideoID fetches a job by its derived video id. Returns nil when
// the id was never submitted.
func (s *Store) GetByVideoID(ctx context.Context, videoID string) (*Job, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+jobColumns+` FROM jobs WHERE video_id = ?`, videoID)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// GetByID fetches a job by row id.
func (s *Store) GetByID(ctx context.Context, id int64) (*Job, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}
	return job, nil
}

// ClaimNext atomically claims the oldest pending job and moves it to
// fetching. Returns nil when nothing is pending.
func (s *Store) ClaimNext(ctx context.Context) (*Job, error) {
	ctx = ensureContext(ctx)
	for {
		var id int64
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM jobs WHERE status = ? ORDER BY id LIMIT 1`, StatusPending,
		).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("claim next: %w", err)
		}

		now := time.Now().UTC().Format(time.RFC3339Nano)
		res, err := s.execWithRetry(ctx,
			`UPDATE jobs
             SET status = ?, started_at = ?, last_heartbeat = ?, updated_at = ?
             WHERE id = ? AND status = ?`,
			StatusFetching, now, now, now, id, StatusPending,
		)
		if err != nil {
			return nil, fmt.Errorf("claim next: %w", err)
		}
		claimed, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("claim next: rows affected: %w", err)
		}
		if claimed > 0 {
			return s.GetByID(ctx, id)
		}
		// Lost the race to another worker; try the next candidate.
	}
}

// Update persists changes to an existing job.
func (s *Store) Update(ctx context.Context, job *Job) error {
	if job == nil {
		return errors.New("job is nil")
	}
	if !job.Status.Valid() {
		return fmt.Errorf("invalid status %q", job.Status)
	}
	job.UpdatedAt = time.Now().UTC()
	if job.Status.IsTerminal() && job.CompletedAt == nil {
		completed := job.UpdatedAt
		job.CompletedAt = &completed
	}

	_, err := s.execWithRetry(ctx,
		`UPDATE jobs
         SET status = ?, error_message = ?, recipe_json = ?,
             updated_at = ?, started_at = ?, completed_at = ?, last_heartbeat = ?
         WHERE id = ?`,
		job.Status,
		nullableString(job.ErrorMessage),
		nullableString(job.RecipeJSON),
		job.UpdatedAt.Format(time.RFC3339Nano),
		nullableTime(job.StartedAt),
		nullableTime(job.CompletedAt),
		nullableTime(job.LastHeartbeat),
		job.ID,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	return nil
}

// UpdateHeartbeat refreshes the liveness timestamp of an in-flight job.
func (s *Store) UpdateHeartbeat(ctx context.Context, id int64) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(ctx,
		`UPDATE jobs SET last_heartbeat = ?, updated_at = ? WHERE id = ?`,
		now, now, id,
	)
	if err != nil {
		return fmt.Errorf("update heartbeat: %w", err)
	}
	return nil
}

// List returns jobs, optionally filtered to the given statuses, oldest
// first.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Job, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + jobColumns + ` FROM jobs`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		query += ` WHERE status IN (` + makePlaceholders(len(statuses)) + `)`
		for _, status := range statuses {
			args = append(args, status)
		}
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// Stats returns the number of jobs per status.
func (s *Store) Stats(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT status, COUNT(1) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("job stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[Status]int)
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats[status] = count
	}
	return stats, rows.Err()
}

// ResetStuckProcessing moves any job left in a processing status (for
// example after a crash) back to pending. Returns the number of jobs
// reset.
func (s *Store) ResetStuckProcessing(ctx context.Context) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(ctx,
		`UPDATE jobs
         SET status = ?, started_at = NULL, last_heartbeat = NULL, updated_at = ?
         WHERE status IN (?, ?, ?)`,
		StatusPending, now, StatusFetching, StatusExtracting, StatusSynthesizing,
	)
	if err != nil {
		return 0, fmt.Errorf("reset stuck jobs: %w", err)
	}
	return res.RowsAffected()
}

// ReclaimStale returns processing jobs whose heartbeat is older than
// cutoff to pending. Returns the number of jobs reclaimed.
func (s *Store) ReclaimStale(ctx context.Context, cutoff time.Time) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(ctx,
		`UPDATE jobs
         SET status = ?, started_at = NULL, last_heartbeat = NULL, updated_at = ?
         WHERE status IN (?, ?, ?) AND (last_heartbeat IS NULL OR last_heartbeat < ?)`,
		StatusPending, now,
		StatusFetching, StatusExtracting, StatusSynthesizing,
		cutoff.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("reclaim stale jobs: %w", err)
	}
	return res.RowsAffected()
}

// FailProcessing marks every in-flight job failed with the given
// message; used during daemon shutdown.
func (s *Store) FailProcessing(ctx context.Context, message string) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(ctx,
		`UPDATE jobs
         SET status = ?, error_message = ?, completed_at = ?, updated_at = ?
         WHERE status IN (?, ?, ?)`,
		StatusFailed, message, now, now,
		StatusFetching, StatusExtracting, StatusSynthesizing,
	)
	if err != nil {
		return 0, fmt.Errorf("fail processing jobs: %w", err)
	}
	return res.RowsAffected()
}
