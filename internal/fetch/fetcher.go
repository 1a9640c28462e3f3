// Package fetch implements the acquisition path: a single identifying HTTP
// GET per resource, plus the heuristics that locate the real tabular payload
// inside whatever the endpoint returns.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Payload is one fetched resource: raw bytes plus the declared content type
// and the URL it was served from.
type Payload struct {
	URL         string
	ContentType string
	Body        []byte
}

// TransportError wraps a network or HTTP failure. Fatal for that fetch; there
// is no automatic retry.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("fetch %s: %v", e.URL, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// maxBodyBytes caps a download to prevent runaway responses.
const maxBodyBytes = 32 << 20

// Client performs the blocking downloads of a run: the primary resource and
// the possible follow-up fetch of a discovered CSV link.
type Client struct {
	http   *http.Client
	ua     string
	logger *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent sets the identifying User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.ua = ua }
}

// WithLogger sets a custom logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client with sensible defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:   &http.Client{Timeout: 30 * time.Second},
		ua:     "data-scraper/1.0",
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Download GETs url and returns the payload. Any non-2xx status is fatal.
func (c *Client) Download(ctx context.Context, url string) (*Payload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("User-Agent", c.ua)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("read body: %w", err)}
	}

	c.logger.Debug("downloaded resource",
		zap.String("url", url),
		zap.String("content_type", resp.Header.Get("Content-Type")),
		zap.Int("bytes", len(body)))
	return &Payload{URL: url, ContentType: resp.Header.Get("Content-Type"), Body: body}, nil
}
