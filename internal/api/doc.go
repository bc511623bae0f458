// Package api defines the JSON types exchanged over the daemon's HTTP
// surface and a small client used by the CLI.
package api
