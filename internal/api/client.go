package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the localhost fallback used when no base URL is set.
const DefaultBaseURL = "http://localhost:5000"

// defaultTimeout caps a single upstream request when the config leaves it unset.
const defaultTimeout = 15 * time.Second

// TokenSource supplies the bearer token attached to outgoing requests.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Recorder observes completed upstream requests. Implemented by the
// observability package; a nil Recorder disables recording. Operations
// report a fixed name rather than the concrete path to keep metric
// cardinality bounded.
type Recorder interface {
	RecordUpstream(op string, status int)
}

// Error is the single failure shape surfaced to callers. Transport
// failures, non-2xx statuses and malformed payloads all collapse into it;
// callers never see the distinction.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// Client issues JSON requests against the PulseGrid admin API.
type Client struct {
	baseURL  string
	http     *http.Client
	tokens   TokenSource
	recorder Recorder
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRecorder installs an upstream request recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// New constructs a Client. An empty baseURL falls back to DefaultBaseURL.
func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues one request and decodes the JSON response into out.
//
// A bearer token is attached when the token source holds one. Every
// failure mode is reported as *Error with the upstream message when the
// error payload carries one.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: "request failed"}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.record(op, 0)
		return &Error{Message: "request failed"}
	}
	defer resp.Body.Close()
	c.record(op, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		message := payload.Message
		if message == "" {
			message = "request failed"
		}
		return &Error{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: "request failed"}
	}
	return nil
}

func (c *Client) record(op string, status int) {
	if c.recorder != nil {
		c.recorder.RecordUpstream(op, status)
	}
}
