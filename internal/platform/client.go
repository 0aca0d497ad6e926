package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/felixgeelhaar/tourney/internal/log"
)

// DefaultBaseURL is the API root of a locally running backend.
const DefaultBaseURL = "http://localhost:8000/api/v1"

// Request defaults
const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetries    = 2
	defaultRetryDelay = 200 * time.Millisecond
)

// TokenSource supplies the bearer credential attached to requests.
// An empty credential sends the request unauthenticated.
type TokenSource interface {
	Credential() string
}

// Client is the tournament platform API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	retries    uint64
	retryDelay time.Duration
	logger     *log.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRetries sets how many times an idempotent request is retried after a
// transport failure. Zero disables retries.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n < 0 {
			n = 0
		}
		c.retries = uint64(n)
	}
}

// WithRetryDelay sets the base delay of the exponential retry backoff
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

// WithTokenSource sets where the bearer credential comes from
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the request logger
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a new platform API client
func NewClient(baseURL string, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		retries:    DefaultRetries,
		retryDelay: defaultRetryDelay,
		logger:     log.DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "platform")
	return c
}

// BaseURL returns the API root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetTokenSource attaches the credential provider. The session store is
// built on top of the client, so it is wired in after construction.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// call describes one API request
type call struct {
	method string
	path   string
	query  url.Values
	body   any

	// credential overrides the token source when set
	credential string
}

// do performs the call, retrying idempotent requests on transport failures
func (c *Client) do(ctx context.Context, cl call, out any) error {
	if cl.method != http.MethodGet || c.retries == 0 {
		return c.once(ctx, cl, out)
	}

	backoff := retry.WithMaxRetries(c.retries, retry.NewExponential(c.retryDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.once(ctx, cl, out)
		var te *TransportError
		if errors.As(err, &te) {
			return retry.RetryableError(err)
		}
		return err
	})
}

// once performs a single HTTP round trip
func (c *Client) once(ctx context.Context, cl call, out any) error {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var reqBody io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	credential := cl.credential
	if credential == "" && c.tokens != nil {
		credential = c.tokens.Credential()
	}
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "request_id", requestID, "method", cl.method, "path", cl.path, "error", err)
		return &TransportError{Method: cl.method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: cl.method, URL: target, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("request completed",
		"request_id", requestID,
		"method", cl.method,
		"path", cl.path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(cl.method, cl.path, resp.StatusCode, body)
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response from %s %s: %w", cl.method, cl.path, err)
	}
	return nil
}

// get decodes a GET response into a new T
func get[T any](ctx context.Context, c *Client, path string, q url.Values) (T, error) {
	var out T
	err := c.do(ctx, call{method: http.MethodGet, path: path, query: q}, &out)
	return out, err
}

// send issues a write request with an optional JSON body and decodes the
// response into a new T
func send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	err := c.do(ctx, call{method: method, path: path, body: body}, &out)
	return out, err
}
