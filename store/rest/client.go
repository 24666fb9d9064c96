// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package rest implements store.Store against PostgREST-style HTTP APIs
// such as Supabase. Inserts POST to /rest/v1/<collection> with the
// service key in both the apikey and Authorization headers; selects GET
// the same path with a select query parameter.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond

	// Response bodies are truncated in errors to keep logs readable.
	maxErrorBody = 512
)

// StatusError reports a non-2xx response from the store.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("store returned status %d: %s", e.Status, e.Body)
}

// Retryable reports whether the status indicates a transient condition.
func (e *StatusError) Retryable() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

// Client talks to a PostgREST-style store.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) error {
		if httpClient == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.httpClient = httpClient
		return nil
	}
}

// WithMaxRetries bounds retries of transient failures. Zero disables
// retrying.
func WithMaxRetries(n int) Option {
	return func(c *Client) error {
		if n < 0 {
			return fmt.Errorf("max retries must not be negative, got %d", n)
		}
		c.maxRetries = n
		return nil
	}
}

// WithRetryDelay sets the base delay between retries. The delay doubles
// on each attempt.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("retry delay must be positive, got %s", d)
		}
		c.retryDelay = d
		return nil
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// NewClient creates a Client for the store at baseURL authenticated
// with serviceKey.
func NewClient(baseURL, serviceKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("store URL is required")
	}
	if strings.TrimSpace(serviceKey) == "" {
		return nil, fmt.Errorf("store service key is required")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		logger:     slog.Default().With("component", "rest-store"),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Insert writes rows to a collection as a single POST.
func (c *Client) Insert(ctx context.Context, collection string, rows []any) error {
	body, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encoding rows for %s: %w", collection, err)
	}

	_, err = c.do(ctx, http.MethodPost, c.collectionURL(collection, nil), body)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", collection, err)
	}
	return nil
}

// Select reads the named fields of every row in a collection.
func (c *Client) Select(ctx context.Context, collection string, fields ...string) ([]map[string]any, error) {
	query := url.Values{}
	if len(fields) > 0 {
		query.Set("select", strings.Join(fields, ","))
	}

	body, err := c.do(ctx, http.MethodGet, c.collectionURL(collection, query), nil)
	if err != nil {
		return nil, fmt.Errorf("selecting from %s: %w", collection, err)
	}

	var rows []map[string]any
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding rows from %s: %w", collection, err)
	}
	return rows, nil
}

func (c *Client) collectionURL(collection string, query url.Values) string {
	u := c.baseURL + "/rest/v1/" + url.PathEscape(collection)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do executes one request with bounded retries on transient failures.
// Transport errors and 429/5xx responses retry with doubling delay;
// other non-2xx statuses fail immediately.
func (c *Client) do(ctx context.Context, method, rawURL string, body []byte) ([]byte, error) {
	var lastErr error
	delay := c.retryDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying request",
				"method", method,
				"url", rawURL,
				"attempt", attempt+1,
				"err", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		respBody, err := c.doOnce(ctx, method, rawURL, body)
		if err == nil {
			return respBody, nil
		}
		lastErr = err

		if statusErr, ok := err.(*StatusError); ok && !statusErr.Retryable() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, lastErr
		}
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, method, rawURL string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Status: resp.StatusCode,
			Body:   truncate(string(respBody), maxErrorBody),
		}
	}
	return respBody, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
