package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	base := []Option{
		WithHTTPClient(server.Client()),
		WithSleeper(func(time.Duration) {}),
	}
	return NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "test-model",
		Referer: "https://example.test",
		Title:   "Cookit",
	}, append(base, opts...)...)
}

func TestCompleteJSONReturnsContent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing auth header, got %q", got)
		}
		if got := r.Header.Get("X-Title"); got != "Cookit" {
			t.Errorf("missing title header, got %q", got)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"title\":\"Kimchi Stew\"}"}}]}`))
	}))
	content, err := client.CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if !strings.Contains(content, "Kimchi Stew") {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestCompleteJSONRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err != nil {
		t.Fatalf("CompleteJSON should succeed after retries: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls.Load())
	}
}

func TestCompleteJSONDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error for 401")
	}
	if calls.Load() != 1 {
		t.Fatalf("401 must not be retried, got %d attempts", calls.Load())
	}
}

func TestCompleteJSONHonorsRetryAfter(t *testing.T) {
	var calls atomic.Int32
	var slept atomic.Int64
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "2")
			http.Error(w, "slow down", http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}), WithSleeper(func(d time.Duration) { slept.Store(int64(d)) }))
	if _, err := client.CompleteJSON(context.Background(), "system", "user"); err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if time.Duration(slept.Load()) != 2*time.Second {
		t.Fatalf("expected Retry-After delay, slept %s", time.Duration(slept.Load()))
	}
}

func TestCompleteJSONToolCallFallback(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"","tool_calls":[{"type":"function","function":{"name":"emit","arguments":"{\"ok\":true}"}}]}}]}`))
	}))
	content, err := client.CompleteJSON(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if content != `{"ok":true}` {
		t.Fatalf("unexpected content %q", content)
	}
}

func TestCompleteJSONRequiresPrompts(t *testing.T) {
	client := NewClient(Config{APIKey: "k"})
	if _, err := client.CompleteJSON(context.Background(), "", "user"); err == nil {
		t.Fatal("expected error for missing system prompt")
	}
	if _, err := client.CompleteJSON(context.Background(), "system", ""); err == nil {
		t.Fatal("expected error for missing user prompt")
	}
}

func TestHealthCheck(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"ok\":true}"}}]}`))
	}))
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestDecodeLLMJSON(t *testing.T) {
	type doc struct {
		Title string `json:"title"`
	}
	cases := []struct {
		name    string
		payload string
	}{
		{"plain", `{"title":"Bibimbap"}`},
		{"fenced", "```json\n{\"title\":\"Bibimbap\"}\n```"},
		{"fenced no lang", "```\n{\"title\":\"Bibimbap\"}\n```"},
		{"prose wrapped", "Here is the recipe you asked for:\n{\"title\":\"Bibimbap\"}\nEnjoy!"},
	}
	for _, tc := range cases {
		var parsed doc
		if err := DecodeLLMJSON(tc.payload, &parsed); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if parsed.Title != "Bibimbap" {
			t.Fatalf("%s: unexpected title %q", tc.name, parsed.Title)
		}
	}
}

func TestDecodeLLMJSONRejectsGarbage(t *testing.T) {
	var parsed map[string]any
	if err := DecodeLLMJSON("", &parsed); err == nil {
		t.Fatal("expected error for empty payload")
	}
	if err := DecodeLLMJSON("no json here at all", &parsed); err == nil {
		t.Fatal("expected error for non-JSON payload")
	}
}
