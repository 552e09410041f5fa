// Package httputil provides HTTP retrieval helpers shared by the resolver and
// the MCP server.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/erraggy/jfather/jferrors"
)

// Retrieval defaults
const (
	DefaultTimeout         = 30 * time.Second
	DefaultMaxDocumentSize = 10 << 20 // 10 MiB
)

// IsURL determines if the given locator is an http:// or https:// URL.
func IsURL(locator string) bool {
	return strings.HasPrefix(locator, "http://") || strings.HasPrefix(locator, "https://")
}

// NewClient returns an HTTP client with the given timeout, or DefaultTimeout
// when timeout is not positive.
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Response is the result of a successful Fetch.
type Response struct {
	Body        []byte
	ContentType string
}

// Fetch performs a GET request for url and returns the response body.
// A status other than 200 is an error. When maxSize is positive, a body
// larger than maxSize bytes fails with *jferrors.ResourceLimitError.
func Fetch(ctx context.Context, client *http.Client, url, userAgent string, maxSize int64) (*Response, error) {
	if client == nil {
		client = NewClient(0)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("httputil: failed to create request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.8")

	resp, err := client.Do(req) //nolint:gosec // G704 - URL is a caller-provided reference
	if err != nil {
		return nil, fmt.Errorf("httputil: failed to fetch URL: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httputil: HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var body io.Reader = resp.Body
	if maxSize > 0 {
		// one extra byte tells an exact fit from an overflow
		body = io.LimitReader(resp.Body, maxSize+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("httputil: failed to read response body: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, &jferrors.ResourceLimitError{
			ResourceType: "document_size",
			Limit:        maxSize,
			Message:      "response body from " + url + " exceeds the size limit",
		}
	}

	return &Response{Body: data, ContentType: resp.Header.Get("Content-Type")}, nil
}
