// Package fetch downloads file attachments referenced by a Slack export.
// Private file URLs require a bearer token and are rate limited, so the
// client carries auth on a wrapped transport and honors Retry-After.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// MaxAttachmentBytes caps a single download. Anything larger would be
// rejected on re-upload anyway.
const MaxAttachmentBytes = 8 << 20

// defaultRetryAfter is used when a rate-limit response omits the header.
const defaultRetryAfter = 5 * time.Second

// Fetcher downloads the contents of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// authTransport wraps an http.RoundTripper to add a bearer token header.
type authTransport struct {
	transport http.RoundTripper
	token     string
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.transport.RoundTrip(req)
}

// newAuthTransport creates a transport with bearer token authentication.
func newAuthTransport(token string) *authTransport {
	return &authTransport{
		transport: http.DefaultTransport,
		token:     token,
	}
}

// HTTPClient downloads attachments over HTTP.
type HTTPClient struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPClient builds a downloader. When token is empty, requests are sent
// unauthenticated; Slack then answers private URLs with an HTML login page
// instead of file bytes, which surfaces here as a content-type error on
// upload, so callers should warn when running without one.
func NewHTTPClient(token string, logger *zap.Logger) *HTTPClient {
	client := &http.Client{Timeout: 2 * time.Minute}
	if token != "" {
		client.Transport = newAuthTransport(token)
	}
	return &HTTPClient{client: client, logger: logger}
}

// Fetch downloads one URL, retrying when rate limited by waiting out the
// server's Retry-After before trying again.
func (c *HTTPClient) Fetch(ctx context.Context, url string) ([]byte, error) {
	for {
		data, retryAfter, err := c.fetchOnce(ctx, url)
		if retryAfter > 0 {
			c.logger.Warn("Rate limited while fetching file",
				zap.String("url", url),
				zap.Duration("retry_after", retryAfter))
			select {
			case <-time.After(retryAfter):
				continue
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		return data, err
	}
}

// fetchOnce performs a single request. A positive retryAfter means the
// server rate limited us and the caller should wait and retry.
func (c *HTTPClient) fetchOnce(ctx context.Context, url string) (data []byte, retryAfter time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("building request for %s: %w", url, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, parseRetryAfter(resp.Header.Get("Retry-After")), nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("fetching %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxAttachmentBytes+1))
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", url, err)
	}
	if len(body) > MaxAttachmentBytes {
		return nil, 0, fmt.Errorf("fetching %s: file exceeds %d bytes", url, MaxAttachmentBytes)
	}
	return body, 0, nil
}

func parseRetryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(header)
	if err != nil || secs <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(secs) * time.Second
}
