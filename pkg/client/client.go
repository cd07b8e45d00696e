// Package client is the Go SDK for the VisaPath-Intelligence REST API.  It
// wraps the planning (requirements, timelines, feasibility) and application
// tracking endpoints behind typed methods with retry on transient failures.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const Version = "0.1.0"

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("visapath: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

func (e *APIError) IsNotFound() bool    { return e.StatusCode == http.StatusNotFound }
func (e *APIError) IsConflict() bool    { return e.StatusCode == http.StatusConflict }
func (e *APIError) IsServerError() bool { return e.StatusCode >= 500 && e.StatusCode < 600 }

// envelope mirrors the server's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Client is the VisaPath-Intelligence SDK client.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	Planning     *PlanningClient
	Applications *ApplicationsClient
}

// NewClient creates a new SDK client for the given base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("client: baseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid baseURL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("client: baseURL scheme must be http or https")
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		userAgent:    "visapath-go-sdk/" + Version,
		retryMax:     3,
		retryWaitMin: 200 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Planning = &PlanningClient{c: c}
	c.Applications = &ApplicationsClient{c: c}
	return c, nil
}

// do performs one API call, retrying server errors with jittered backoff, and
// unmarshals the envelope's data field into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: request marshal failed: %w", err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff(attempt)):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("client: request build failed: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		apiErr, decodeErr := c.decode(resp, out)
		if decodeErr != nil {
			return decodeErr
		}
		if apiErr == nil {
			return nil
		}
		if !apiErr.IsServerError() {
			return apiErr
		}
		lastErr = apiErr
	}
	return fmt.Errorf("client: request failed after %d attempts: %w", c.retryMax+1, lastErr)
}

// decode reads the response envelope.  A non-2xx status yields an *APIError;
// transport and envelope problems yield a plain error.
func (c *Client) decode(resp *http.Response, out interface{}) (*APIError, error) {
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("client: response read failed: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{StatusCode: resp.StatusCode, Code: "UNKNOWN", Message: string(raw)}, nil
		}
		return nil, fmt.Errorf("client: response unmarshal failed: %w", err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: "UNKNOWN"}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return apiErr, nil
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("client: data unmarshal failed: %w", err)
		}
	}
	return nil, nil
}

// backoff returns the jittered wait before the given retry attempt.
func (c *Client) backoff(attempt int) time.Duration {
	wait := c.retryWaitMin * time.Duration(1<<uint(attempt-1))
	if wait > c.retryWaitMax {
		wait = c.retryWaitMax
	}
	jitter := time.Duration(rand.Int63n(int64(wait) / 4))
	return wait + jitter
}

//Personal.AI order the ending
