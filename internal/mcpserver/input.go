package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/erraggy/jfather"
	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/internal/httputil"
	"github.com/erraggy/jfather/internal/options"
	"github.com/erraggy/jfather/jferrors"
)

// docInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a JSON or YAML document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// makeCacheKey creates a cache key for the given input, or "" when the
// input should not be cached.
func makeCacheKey(d docInput) string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return "content:" + hex.EncodeToString(h[:])
	case d.URL != "":
		return "url:" + d.URL
	default:
		return ""
	}
}

// resolve decodes the document from whichever input was provided, using the
// cache when it is enabled.
func (d docInput) resolve(ctx context.Context) (*document.Node, error) {
	if err := options.ValidateSingleInputSource("input",
		options.Source{Name: "file", Set: d.File != ""},
		options.Source{Name: "url", Set: d.URL != ""},
		options.Source{Name: "content", Set: d.Content != ""},
	); err != nil {
		return nil, err
	}

	if d.Content != "" && int64(len(d.Content)) > cfg.MaxInlineSize {
		return nil, &jferrors.ResourceLimitError{
			ResourceType: "inline_content",
			Limit:        cfg.MaxInlineSize,
			Actual:       int64(len(d.Content)),
			Message:      "use file or url input instead, or set JFATHER_MAX_INLINE_SIZE",
		}
	}

	var key string
	if cfg.CacheEnabled {
		key = makeCacheKey(d)
	}
	if key != "" {
		if cached := docCache.get(key); cached != nil {
			return cached, nil
		}
	}

	doc, err := d.decode(ctx)
	if err != nil {
		return nil, err
	}

	if key != "" {
		ttl := cfg.CacheURLTTL
		if d.URL == "" {
			// file keys change with mtime and content keys with the content
			ttl = 0
		}
		docCache.put(key, doc, ttl)
	}
	return doc, nil
}

func (d docInput) decode(ctx context.Context) (*document.Node, error) {
	switch {
	case d.URL != "":
		if !httputil.IsURL(d.URL) {
			return nil, fmt.Errorf("unsupported url %q: only http and https are allowed", d.URL)
		}
		resp, err := httputil.Fetch(ctx, newHTTPClient(), d.URL, jfather.UserAgent(), cfg.MaxDocumentSize)
		if err != nil {
			return nil, err
		}
		return document.DecodeNamed(d.URL, resp.Body)
	case d.File != "":
		info, err := os.Stat(d.File)
		if err != nil {
			return nil, err
		}
		if info.Size() > cfg.MaxDocumentSize {
			return nil, &jferrors.ResourceLimitError{
				ResourceType: "document_size",
				Limit:        cfg.MaxDocumentSize,
				Actual:       info.Size(),
			}
		}
		data, err := os.ReadFile(d.File)
		if err != nil {
			return nil, err
		}
		return document.DecodeNamed(d.File, data)
	default:
		return document.DecodeNamed("content", []byte(d.Content))
	}
}

// sessionRequester retrieves $extends references for tool calls through the
// document cache. Local file references are refused unless
// JFATHER_ALLOW_LOCAL_REFS is set.
type sessionRequester struct {
	loaded atomic.Int64
}

func (s *sessionRequester) Request(ctx context.Context, locator string) (*document.Node, error) {
	var in docInput
	switch {
	case httputil.IsURL(locator):
		in.URL = locator
	case cfg.AllowLocalRefs:
		in.File = locator
	default:
		return nil, fmt.Errorf("local reference %q refused: set JFATHER_ALLOW_LOCAL_REFS to allow", locator)
	}
	doc, err := in.resolve(ctx)
	if err != nil {
		return nil, err
	}
	s.loaded.Add(1)
	return doc, nil
}
