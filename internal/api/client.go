package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/WizCoderr/admin.ajastra/internal/session"
)

const (
	defaultTimeout = 30 * time.Second
	// Error bodies are only read to extract a message
	maxErrorBody = 64 << 10
)

// Client represents an HTTP client for the Ajastra admin API.
// One instance is shared by every page; all requests go through the
// bearer pipeline built by New.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

type options struct {
	network http.RoundTripper
	timeout time.Duration
	logger  zerolog.Logger
}

// Option configures New
type Option func(*options)

// WithTransport replaces the network transport at the end of the pipeline
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.network = rt }
}

// WithTimeout sets the overall per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithLogger sets the logger used by the pipeline's logging stage
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// New creates the API client bound to baseURL. creds is consulted on every
// request; it is never cached.
func New(baseURL string, creds session.TokenSource, opts ...Option) *Client {
	o := options{
		network: http.DefaultTransport,
		timeout: defaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger.With().Str("component", "api").Logger()

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   o.timeout,
			Transport: NewPipeline(o.network, creds, logger),
		},
		logger: logger,
	}
}

// BaseURL returns the fixed base endpoint
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient exposes the configured client for requests not covered by the typed methods
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// Error is returned for any non-2xx response. The client does not interpret
// authentication failures; callers decide what a 401 means for them.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s failed (status %d)", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s failed (status %d): %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a 401 or 403 from the API
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// envelope is the response wrapper used by every endpoint
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// doJSON sends body (if any) as JSON and decodes the envelope's data into out.
// It returns the envelope message.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) (string, error) {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) (string, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", newError(req, resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return "", nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return env.Message, fmt.Errorf("failed to decode response data: %w", err)
		}
	}

	return env.Message, nil
}

// newError builds an *Error from a failed response, preferring the server's
// "message" or "error" field over the raw body
func newError(req *http.Request, resp *http.Response) *Error {
	apiErr := &Error{
		Method:     req.Method,
		Path:       req.URL.Path,
		StatusCode: resp.StatusCode,
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Error != "":
			apiErr.Message = payload.Error
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	return apiErr
}
