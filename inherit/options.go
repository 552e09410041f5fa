package inherit

import (
	"fmt"
	"net/http"

	"github.com/erraggy/jfather"
	"github.com/erraggy/jfather/internal/httputil"
	"github.com/erraggy/jfather/internal/options"
	"github.com/erraggy/jfather/jferrors"
)

// Option is a function that configures a Resolver
type Option func(*config) error

// config holds configuration for a Resolver
type config struct {
	// Retrieval capability (at most one may be set)
	requester   Requester
	requestFunc RequestFunc

	// Default requester settings
	httpClient      *http.Client
	userAgent       string
	maxDocumentSize int64
	localFiles      bool
	baseDir         string

	// Resource limits (0 means unlimited)
	maxDepth int

	logger Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		userAgent:       jfather.UserAgent(),
		maxDocumentSize: httputil.DefaultMaxDocumentSize,
		localFiles:      true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := options.ValidateAtMostOneSource("requester",
		options.Source{Name: "WithRequester", Set: cfg.requester != nil},
		options.Source{Name: "WithRequestFunc", Set: cfg.requestFunc != nil},
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// buildRequester returns the configured retrieval capability, or the default
// HTTP and file requester.
func (cfg *config) buildRequester() Requester {
	switch {
	case cfg.requester != nil:
		return cfg.requester
	case cfg.requestFunc != nil:
		return cfg.requestFunc
	}

	client := cfg.httpClient
	if client == nil {
		client = httputil.NewClient(0)
	}
	return &defaultRequester{
		client:     client,
		userAgent:  cfg.userAgent,
		maxSize:    cfg.maxDocumentSize,
		localFiles: cfg.localFiles,
		baseDir:    cfg.baseDir,
	}
}

// WithRequester sets the capability used to retrieve referenced documents.
// It receives each reference with the fragment removed.
// Default: HTTP GET for http(s) URLs and file reads for other locators
func WithRequester(r Requester) Option {
	return func(cfg *config) error {
		if r == nil {
			return &jferrors.ConfigError{Option: "WithRequester", Message: "requester cannot be nil"}
		}
		cfg.requester = r
		return nil
	}
}

// WithRequestFunc is like WithRequester for a plain function.
//
// Example:
//
//	doc, err := inherit.Parse(ctx, text,
//	    inherit.WithRequestFunc(func(ctx context.Context, locator string) (*document.Node, error) {
//	        return store.Lookup(locator)
//	    }),
//	)
func WithRequestFunc(fn RequestFunc) Option {
	return func(cfg *config) error {
		if fn == nil {
			return &jferrors.ConfigError{Option: "WithRequestFunc", Message: "request function cannot be nil"}
		}
		cfg.requestFunc = fn
		return nil
	}
}

// WithHTTPClient sets the HTTP client used by the default requester.
// If the client is nil, this option has no effect.
func WithHTTPClient(client *http.Client) Option {
	return func(cfg *config) error {
		cfg.httpClient = client
		return nil
	}
}

// WithUserAgent sets the User-Agent string for HTTP requests
// Default: "jfather/vX.Y.Z"
func WithUserAgent(ua string) Option {
	return func(cfg *config) error {
		cfg.userAgent = ua
		return nil
	}
}

// WithMaxDocumentSize limits the size in bytes of each document read by the
// default requester. Zero disables the limit.
// Default: 10 MiB
func WithMaxDocumentSize(size int64) Option {
	return func(cfg *config) error {
		if size < 0 {
			return &jferrors.ConfigError{Option: "WithMaxDocumentSize", Value: size, Message: "size cannot be negative"}
		}
		cfg.maxDocumentSize = size
		return nil
	}
}

// WithLocalFiles allows the default requester to read locators that are not
// http(s) URLs from the local filesystem.
// Default: true
func WithLocalFiles(enabled bool) Option {
	return func(cfg *config) error {
		cfg.localFiles = enabled
		return nil
	}
}

// WithBaseDir sets the directory relative file locators are resolved against.
// Default: the working directory
func WithBaseDir(dir string) Option {
	return func(cfg *config) error {
		cfg.baseDir = dir
		return nil
	}
}

// WithMaxDepth limits how many $extends references may be chained while
// resolving one document. Zero means no limit, in which case a reference
// cycle never terminates.
// Default: 0
func WithMaxDepth(depth int) Option {
	return func(cfg *config) error {
		if depth < 0 {
			return &jferrors.ConfigError{Option: "WithMaxDepth", Value: depth, Message: "depth cannot be negative"}
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithLogger sets a structured logger for debug output during resolution.
// By default, no logging is performed.
//
// Example:
//
//	logger := inherit.NewSlogAdapter(slog.Default())
//	doc, err := inherit.Load(ctx, "https://example.com/base.json", inherit.WithLogger(logger))
func WithLogger(l Logger) Option {
	return func(cfg *config) error {
		cfg.logger = l
		return nil
	}
}

// describe is used when logging configuration.
func (cfg *config) describe() []any {
	requester := "default"
	switch {
	case cfg.requester != nil:
		requester = fmt.Sprintf("%T", cfg.requester)
	case cfg.requestFunc != nil:
		requester = "func"
	}
	return []any{"requester", requester, "maxDepth", cfg.maxDepth, "localFiles", cfg.localFiles}
}
