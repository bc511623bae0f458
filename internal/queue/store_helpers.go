package queue

import (
	"database/sql"
	"strings"
	"time"
)

func scanJob(scanner interface{ Scan(dest ...any) error }) (*Job, error) {
	var (
		id           int64
		videoID      string
		sourceURL    string
		platform     string
		statusStr    string
		errorMessage sql.NullString
		recipeJSON   sql.NullString
		createdRaw   string
		updatedRaw   string
		startedRaw   sql.NullString
		completedRaw sql.NullString
		heartbeatRaw sql.NullString
	)

	if err := scanner.Scan(
		&id,
		&videoID,
		&sourceURL,
		&platform,
		&statusStr,
		&errorMessage,
		&recipeJSON,
		&createdRaw,
		&updatedRaw,
		&startedRaw,
		&completedRaw,
		&heartbeatRaw,
	); err != nil {
		return nil, err
	}

	job := &Job{
		ID:           id,
		VideoID:      videoID,
		SourceURL:    sourceURL,
		Platform:     platform,
		Status:       Status(statusStr),
		ErrorMessage: errorMessage.String,
		RecipeJSON:   recipeJSON.String,
		CreatedAt:    parseTimestamp(createdRaw),
		UpdatedAt:    parseTimestamp(updatedRaw),
	}
	job.StartedAt = parseNullableTimestamp(startedRaw)
	job.CompletedAt = parseNullableTimestamp(completedRaw)
	job.LastHeartbeat = parseNullableTimestamp(heartbeatRaw)
	return job, nil
}

func parseTimestamp(raw string) time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func parseNullableTimestamp(raw sql.NullString) *time.Time {
	if !raw.Valid || strings.TrimSpace(raw.String) == "" {
		return nil
	}
	parsed := parseTimestamp(raw.String)
	if parsed.IsZero() {
		return nil
	}
	return &parsed
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil || value.IsZero() {
		return nil
	}
	return value.UTC().Format(time.RFC3339Nano)
}

func makePlaceholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
