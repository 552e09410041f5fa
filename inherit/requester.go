package inherit

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/internal/httputil"
	"github.com/erraggy/jfather/jferrors"
)

// Requester retrieves the document behind a locator. The locator is a
// reference with its fragment removed.
type Requester interface {
	Request(ctx context.Context, locator string) (*document.Node, error)
}

// RequestFunc adapts a function to the Requester interface.
type RequestFunc func(ctx context.Context, locator string) (*document.Node, error)

// Request implements Requester.
func (f RequestFunc) Request(ctx context.Context, locator string) (*document.Node, error) {
	return f(ctx, locator)
}

// defaultRequester fetches http(s) locators and, when enabled, reads local
// files. Both are decoded with document.DecodeNamed.
type defaultRequester struct {
	client     *http.Client
	userAgent  string
	maxSize    int64
	localFiles bool
	baseDir    string
}

func (d *defaultRequester) Request(ctx context.Context, locator string) (*document.Node, error) {
	if httputil.IsURL(locator) {
		resp, err := httputil.Fetch(ctx, d.client, locator, d.userAgent, d.maxSize)
		if err != nil {
			return nil, err
		}
		return document.DecodeNamed(locator, resp.Body)
	}

	if !d.localFiles {
		return nil, fmt.Errorf("unsupported locator %q: only http and https URLs are allowed", locator)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := d.resolvePath(locator)
	if d.maxSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat file: %w", err)
		}
		if info.Size() > d.maxSize {
			return nil, &jferrors.ResourceLimitError{
				ResourceType: "document_size",
				Limit:        d.maxSize,
				Actual:       info.Size(),
				Message:      "file " + path + " exceeds the size limit",
			}
		}
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is a caller-provided reference
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return document.DecodeNamed(path, data)
}

// resolvePath maps a file locator to a filesystem path.
func (d *defaultRequester) resolvePath(locator string) string {
	path := strings.TrimPrefix(locator, "file://")
	path = filepath.FromSlash(path)
	if d.baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(d.baseDir, path)
	}
	return path
}
