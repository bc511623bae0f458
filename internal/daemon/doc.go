// Package daemon hosts the long-running cookit process: single-instance
// locking, the pipeline manager lifecycle, and the HTTP API surface.
package daemon
