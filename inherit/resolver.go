package inherit

import (
	"context"
	"fmt"
	"strings"

	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/jferrors"
	"github.com/erraggy/jfather/merger"
	"github.com/erraggy/jfather/query"
	"github.com/erraggy/jfather/walker"
)

// ExtendsKey is the member that marks an object as inheriting from another
// document.
const ExtendsKey = "$extends"

// Resolver resolves $extends references. A Resolver holds no per-call state
// and is safe for concurrent use.
type Resolver struct {
	requester Requester
	maxDepth  int
	logger    Logger
}

// New creates a Resolver configured by opts.
func New(opts ...Option) (*Resolver, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("inherit: invalid options: %w", err)
	}

	logger := cfg.logger
	if logger == nil {
		logger = NopLogger{}
	}
	logger.Debug("resolver configured", cfg.describe()...)

	return &Resolver{
		requester: cfg.buildRequester(),
		maxDepth:  cfg.maxDepth,
		logger:    logger,
	}, nil
}

// Extend resolves every $extends reference in doc, from the innermost objects
// outwards. Sibling references are retrieved concurrently. doc is not
// modified.
func (r *Resolver) Extend(ctx context.Context, doc *document.Node) (*document.Node, error) {
	return r.extend(ctx, doc, 0)
}

// Load retrieves the document named by ref, selects its fragment and resolves
// the inheritance of the result.
func (r *Resolver) Load(ctx context.Context, ref string) (*document.Node, error) {
	return r.load(ctx, ref, 1)
}

// Parse decodes text and resolves its inheritance.
func (r *Resolver) Parse(ctx context.Context, text string) (*document.Node, error) {
	doc, err := document.Decode([]byte(text))
	if err != nil {
		return nil, err
	}
	return r.Extend(ctx, doc)
}

// extend walks doc, resolving objects at reference depth depth.
func (r *Resolver) extend(ctx context.Context, doc *document.Node, depth int) (*document.Node, error) {
	return walker.WalkAsync(ctx, doc, func(ctx context.Context, n *document.Node) (*document.Node, error) {
		return r.inherit(ctx, n, depth)
	})
}

// inherit merges n onto the document its $extends member names.
func (r *Resolver) inherit(ctx context.Context, n *document.Node, depth int) (*document.Node, error) {
	marker := n.Get(ExtendsKey)
	if marker == nil {
		return n, nil
	}

	ref, ok := marker.StringValue()
	if !ok {
		return nil, &jferrors.RetrievalError{
			Message: fmt.Sprintf("%s must be a string, got %s", ExtendsKey, marker.Kind()),
		}
	}

	parent, err := r.load(ctx, ref, depth+1)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("merging ancestor", "ref", ref, "depth", depth+1)
	return merger.Merge(parent, n), nil
}

// load retrieves ref as the depth-th reference of a chain.
func (r *Resolver) load(ctx context.Context, ref string, depth int) (*document.Node, error) {
	if r.maxDepth > 0 && depth > r.maxDepth {
		return nil, &jferrors.ResourceLimitError{
			ResourceType: "extends_depth",
			Limit:        int64(r.maxDepth),
			Actual:       int64(depth),
			Message:      "while loading " + ref,
		}
	}

	locator, fragment := SplitReference(ref)
	r.logger.Debug("loading reference", "ref", ref, "locator", locator, "fragment", fragment, "depth", depth)

	raw, err := r.requester.Request(ctx, locator)
	if err != nil {
		return nil, &jferrors.RetrievalError{Ref: ref, Locator: locator, Cause: err}
	}

	sub, err := query.Get(raw, fragment)
	if err != nil {
		return nil, fmt.Errorf("inherit: %s: %w", ref, err)
	}

	return r.extend(ctx, sub, depth)
}

// SplitReference splits ref at its first '#' into a locator and a fragment
// path. The fragment is empty when ref has no '#'.
func SplitReference(ref string) (locator, fragment string) {
	locator, fragment, _ = strings.Cut(ref, "#")
	return locator, fragment
}

// Extend resolves the inheritance of doc with a Resolver built from opts.
func Extend(ctx context.Context, doc *document.Node, opts ...Option) (*document.Node, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return r.Extend(ctx, doc)
}

// Load retrieves ref with a Resolver built from opts.
func Load(ctx context.Context, ref string, opts ...Option) (*document.Node, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return r.Load(ctx, ref)
}

// Parse decodes text and resolves its inheritance with a Resolver built from
// opts.
func Parse(ctx context.Context, text string, opts ...Option) (*document.Node, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return r.Parse(ctx, text)
}
