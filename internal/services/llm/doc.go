// Package llm wraps the OpenRouter chat completion API used for recipe
// synthesis.
//
// The pipeline asks the model for a single JSON document, so the client
// exposes a JSON-only completion call with strict-response handling:
// temperature zero, response_format json_object, and tolerant decoding
// of the payload the model actually returns (code fences, tool-call
// arguments, streaming-schema fallbacks). Transient failures (HTTP 429,
// 5xx, timeouts, empty completions) are retried with exponential
// backoff, honoring Retry-After when the provider sends one.
package llm
