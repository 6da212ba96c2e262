package remote

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

	"github.com/energyops/assetbot/internal/logging"
)

const (
	// DefaultTimeout bounds list reads and control writes
	DefaultTimeout = 10 * time.Second

	// DefaultStatusTimeout bounds live battery status reads
	DefaultStatusTimeout = 5 * time.Second

	// DefaultMaxRetries is the default number of GET retries (POSTs are never retried)
	DefaultMaxRetries = 0

	// DefaultRetryDelay is the default delay between GET retries
	DefaultRetryDelay = 500 * time.Millisecond

	// maxErrorBody caps how much of a non-2xx body is kept for logs
	maxErrorBody = 512
)

// Client is the only component that talks to the REST API. Every call is
// authenticated with a bearer token and bounded by a timeout; every failure
// is returned as an *APIError.
//
// A Client holds no per-request state and is safe for concurrent use. Create
// one per process so connections are reused.
type Client struct {
	// BaseURL is the API root (e.g., "https://api.example.com")
	BaseURL string

	// Token is the bearer credential
	Token string

	// HTTPClient is the underlying HTTP client; timeouts are applied per call
	HTTPClient *http.Client

	// Timeout bounds list reads and control writes
	Timeout time.Duration

	// StatusTimeout bounds live battery status reads
	StatusTimeout time.Duration

	// MaxRetries is the number of extra attempts for retryable GET failures
	MaxRetries int

	// RetryDelay is the pause between GET attempts
	RetryDelay time.Duration

	// Scope is the fixed filter applied to site, vehicle and device lists
	Scope ListScope

	// UserAgent is sent with every request when non-empty
	UserAgent string
}

// NewClient creates a new REST API client
// baseURL: API root (e.g., "https://api.example.com")
// token: bearer credential
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:       strings.TrimRight(baseURL, "/"),
		Token:         token,
		HTTPClient:    &http.Client{},
		Timeout:       DefaultTimeout,
		StatusTimeout: DefaultStatusTimeout,
		MaxRetries:    DefaultMaxRetries,
		RetryDelay:    DefaultRetryDelay,
		Scope:         DefaultScope,
	}
}

// SetTimeouts sets the list/control and battery status timeouts
func (c *Client) SetTimeouts(timeout, statusTimeout time.Duration) {
	c.Timeout = timeout
	c.StatusTimeout = statusTimeout
}

// SetRetry configures GET retry behavior
func (c *Client) SetRetry(maxRetries int, retryDelay time.Duration) {
	c.MaxRetries = maxRetries
	c.RetryDelay = retryDelay
}

// Get issues a GET and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, timeout time.Duration, out any) error {
	var lastErr error

	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return NewNetworkError(http.MethodGet, path, "request abandoned", ctx.Err())
			case <-time.After(c.RetryDelay):
			}
		}

		err := c.do(ctx, http.MethodGet, path, query, nil, timeout, out, attempt+1)
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry non-retryable errors
		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

// Post issues a POST with a JSON body. When out is nil the response body is
// ignored; otherwise it must be valid JSON.
func (c *Client) Post(ctx context.Context, path string, body any, timeout time.Duration, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return NewValidationError(path, fmt.Sprintf("failed to encode request body: %v", err))
	}
	return c.do(ctx, http.MethodPost, path, nil, payload, timeout, out, 1)
}

// do performs a single attempt
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, timeout time.Duration, out any, attempt int) error {
	if timeout <= 0 {
		timeout = c.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return NewNetworkError(method, path, "failed to create request", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.Token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return NewNetworkError(method, path, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	logging.LogRemoteCall(method, path, resp.StatusCode, attempt)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return NewStatusError(method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return NewNetworkError(method, path, "failed to read response body", err)
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return NewDecodeError(method, path, err)
	}

	return nil
}
