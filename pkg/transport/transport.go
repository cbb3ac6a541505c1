// Package transport owns the single bounded HTTP request primitive the
// pipeline consumes. Nothing above this package opens sockets.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is the outcome of one request. StatusCode and Headers are
// populated whenever the server answered, even on failure statuses, so
// callers can honor Retry-After.
type Response struct {
	Success    bool
	Body       []byte
	StatusCode int
	Headers    map[string]string
	Err        error
}

// Doer is the request primitive injected into providers.
type Doer interface {
	Request(url string, headers map[string]string, jsonBody any, timeout time.Duration) Response
}

// Client performs one JSON POST per call with a hard per-request timeout.
// No retries: timeout expiry is the sole abort path and surfaces in Err.
type Client struct {
	client *http.Client
}

func NewClient() *Client {
	return &Client{client: &http.Client{}}
}

func (c *Client) Request(url string, headers map[string]string, jsonBody any, timeout time.Duration) Response {
	payload, err := json.Marshal(jsonBody)
	if err != nil {
		return Response{Err: fmt.Errorf("failed to encode request body: %w", err)}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Response{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Response{Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Headers:    flattenHeaders(resp.Header),
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	out := Response{
		Body:       body,
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		out.Success = true
	} else {
		out.Err = fmt.Errorf("server returned %s", resp.Status)
	}
	return out
}

func flattenHeaders(h http.Header) map[string]string {
	flat := make(map[string]string, len(h))
	for k := range h {
		flat[k] = h.Get(k)
	}
	return flat
}
