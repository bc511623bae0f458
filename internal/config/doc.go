// Package config loads, normalizes, and validates the TOML configuration
// shared by the cookitd daemon and the cookit CLI. Paths support "~"
// expansion, defaults are applied before file values, and the LLM API key
// may be supplied through the COOKIT_LLM_API_KEY environment variable.
package config
