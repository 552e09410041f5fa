package mcpserver

import (
	"context"
	"log/slog"

	"github.com/erraggy/jfather/inherit"
	"github.com/erraggy/jfather/merger"
	"github.com/erraggy/jfather/query"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type mergeInput struct {
	Parent  docInput `json:"parent"            jsonschema:"The document supplying defaults"`
	Child   docInput `json:"child"             jsonschema:"The document whose values win"`
	Format  string   `json:"format,omitempty"  jsonschema:"Output format: json (default) or yaml"`
	Compact bool     `json:"compact,omitempty" jsonschema:"Render JSON on a single line"`
}

type mergeOutput struct {
	Kind     string `json:"kind"`
	Document string `json:"document"`
}

func handleMerge(ctx context.Context, _ *mcp.CallToolRequest, input mergeInput) (*mcp.CallToolResult, mergeOutput, error) {
	parent, err := input.Parent.resolve(ctx)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	child, err := input.Child.resolve(ctx)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}

	merged := merger.Merge(parent, child)
	text, err := render(input.Format, input.Compact, merged)
	if err != nil {
		return errResult(err), mergeOutput{}, nil
	}
	return nil, mergeOutput{Kind: merged.Kind().String(), Document: text}, nil
}

type queryInput struct {
	Document docInput `json:"document"          jsonschema:"The document to read from"`
	Path     string   `json:"path"              jsonschema:"Path such as .a.b[0].c; empty selects the whole document"`
	Format   string   `json:"format,omitempty"  jsonschema:"Output format: json (default) or yaml"`
	Compact  bool     `json:"compact,omitempty" jsonschema:"Render JSON on a single line"`
}

type queryOutput struct {
	Found  bool   `json:"found"`
	Kind   string `json:"kind"`
	Result string `json:"result,omitempty"`
}

func handleQuery(ctx context.Context, _ *mcp.CallToolRequest, input queryInput) (*mcp.CallToolResult, queryOutput, error) {
	path, err := query.Parse(input.Path)
	if err != nil {
		return errResult(err), queryOutput{}, nil
	}
	doc, err := input.Document.resolve(ctx)
	if err != nil {
		return errResult(err), queryOutput{}, nil
	}

	value, err := path.Get(doc)
	if err != nil {
		return errResult(err), queryOutput{}, nil
	}
	output := queryOutput{Found: value != nil, Kind: value.Kind().String()}
	if value != nil {
		if output.Result, err = render(input.Format, input.Compact, value); err != nil {
			return errResult(err), queryOutput{}, nil
		}
	}
	return nil, output, nil
}

type extendInput struct {
	Document docInput `json:"document"            jsonschema:"The document whose $extends references are resolved"`
	MaxDepth int      `json:"max_depth,omitempty" jsonschema:"Maximum $extends chain depth (capped by JFATHER_MAX_DEPTH)"`
	Format   string   `json:"format,omitempty"    jsonschema:"Output format: json (default) or yaml"`
	Compact  bool     `json:"compact,omitempty"   jsonschema:"Render JSON on a single line"`
}

type extendOutput struct {
	Document         string `json:"document"`
	ReferencesLoaded int64  `json:"references_loaded"`
}

func handleExtend(ctx context.Context, _ *mcp.CallToolRequest, input extendInput) (*mcp.CallToolResult, extendOutput, error) {
	doc, err := input.Document.resolve(ctx)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}

	req := &sessionRequester{}
	resolver, err := newResolver(req, input.MaxDepth)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}
	extended, err := resolver.Extend(ctx, doc)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}
	text, err := render(input.Format, input.Compact, extended)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}
	return nil, extendOutput{Document: text, ReferencesLoaded: req.loaded.Load()}, nil
}

type loadInput struct {
	Ref      string `json:"ref"                 jsonschema:"Reference of the form locator#path"`
	MaxDepth int    `json:"max_depth,omitempty" jsonschema:"Maximum $extends chain depth (capped by JFATHER_MAX_DEPTH)"`
	Format   string `json:"format,omitempty"    jsonschema:"Output format: json (default) or yaml"`
	Compact  bool   `json:"compact,omitempty"   jsonschema:"Render JSON on a single line"`
}

func handleLoad(ctx context.Context, _ *mcp.CallToolRequest, input loadInput) (*mcp.CallToolResult, extendOutput, error) {
	req := &sessionRequester{}
	resolver, err := newResolver(req, input.MaxDepth)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}
	loaded, err := resolver.Load(ctx, input.Ref)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}
	text, err := render(input.Format, input.Compact, loaded)
	if err != nil {
		return errResult(err), extendOutput{}, nil
	}
	return nil, extendOutput{Document: text, ReferencesLoaded: req.loaded.Load()}, nil
}

// newResolver builds a resolver for one tool call. A non-positive or
// oversized depth falls back to the configured maximum.
func newResolver(req inherit.Requester, depth int) (*inherit.Resolver, error) {
	if depth <= 0 || depth > cfg.MaxDepth {
		depth = cfg.MaxDepth
	}
	return inherit.New(
		inherit.WithRequester(req),
		inherit.WithMaxDepth(depth),
		inherit.WithLogger(inherit.NewSlogAdapter(slog.Default())),
	)
}

var _ inherit.Requester = (*sessionRequester)(nil)
