package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a running daemon over its HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a client for the daemon at bind (host:port).
func NewClient(bind string) *Client {
	base := strings.TrimSpace(bind)
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	return &Client{
		baseURL:    strings.TrimSuffix(base, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Analyze submits a video URL for analysis.
func (c *Client) Analyze(ctx context.Context, videoURL string) (AnalyzeResponse, error) {
	var out AnalyzeResponse
	err := c.post(ctx, "/analyze", AnalyzeRequest{VideoURL: videoURL}, &out)
	return out, err
}

// Status polls the state of a previously submitted job.
func (c *Client) Status(ctx context.Context, videoID string) (StatusResponse, error) {
	var out StatusResponse
	err := c.get(ctx, "/status/"+url.PathEscape(videoID), &out)
	return out, err
}

// Health reports daemon and stage readiness.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.get(ctx, "/health", &out)
	return out, err
}

// Queue lists jobs, optionally filtered by status.
func (c *Client) Queue(ctx context.Context, statuses ...string) (QueueListResponse, error) {
	path := "/queue"
	if len(statuses) > 0 {
		values := url.Values{}
		for _, status := range statuses {
			values.Add("status", status)
		}
		path += "?" + values.Encode()
	}
	var out QueueListResponse
	err := c.get(ctx, path, &out)
	return out, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes the request and decodes the JSON reply. API errors come
// back as structured payloads, so non-2xx responses are still decoded
// into out when possible.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response (http %d): %w", resp.StatusCode, err)
		}
		return nil
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("daemon returned http %d", resp.StatusCode)
	}
	return nil
}
