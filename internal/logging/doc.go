// Package logging configures the shared slog logger used across the daemon
// and CLI, providing a console handler for interactive use and a JSON
// handler for log shipping, plus attribute helpers with the repository's
// standard field names.
package logging
