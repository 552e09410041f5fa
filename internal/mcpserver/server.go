// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes jfather document operations as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/jfather"
	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/internal/cliutil"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `jfather MCP server: merges JSON documents, queries them by path, and resolves "$extends" inheritance.

Documents are provided as {file}, {url} or {content}; JSON and YAML are both accepted. Results are returned as JSON text (or YAML with format="yaml").

Merge rules: "$"-prefixed keys are directives and never copied. A child member "$key[n]" merges its value into element n of the array "key", and "$key[]" appends its array value to "key". Nested objects merge recursively.

Configuration: All defaults are configurable via JFATHER_* environment variables set in your MCP client config.

Key settings:
- JFATHER_MAX_DEPTH (default: 32) - maximum $extends chain depth
- JFATHER_MAX_DOCUMENT_SIZE (default: 10MiB) - maximum size of a retrieved document
- JFATHER_ALLOW_LOCAL_REFS (default: false) - allow $extends to read local files
- JFATHER_ALLOW_PRIVATE_HOSTS (default: false) - allow $extends URLs on private networks
- JFATHER_CACHE_URL_TTL (default: 5m) - cache TTL for URL-fetched documents
- JFATHER_CACHE_ENABLED (default: true) - disable document caching entirely`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "jfather", Version: jfather.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "merge",
		Description: "Merge a child document over a parent document. Child values win; nested objects merge recursively; \"$\"-prefixed keys are dropped; a child member \"$key[n]\" overrides element n of the array \"key\" and \"$key[]\" appends to it. Neither input is modified.",
	}, handleMerge)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query",
		Description: "Read the value at a path such as \".squad.members[0].name\" from a document. Returns found=false when the path leads nowhere, and an error when it steps into null.",
	}, handleQuery)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extend",
		Description: "Resolve every \"$extends\" reference in a document. A reference is \"locator#path\"; the located document (optionally narrowed by path) becomes the parent of the object that names it. Remote references are fetched over http(s); local files need JFATHER_ALLOW_LOCAL_REFS.",
	}, handleExtend)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "load",
		Description: "Load a single reference \"locator#path\" and resolve its own \"$extends\" chain. Equivalent to extending {\"$extends\": ref}.",
	}, handleLoad)
}

// render encodes a result document for a tool response. An empty format
// selects JSON.
func render(format string, compact bool, n *document.Node) (string, error) {
	if format == "" {
		format = cliutil.FormatJSON
	}
	data, err := cliutil.EncodeDocument(n, format, compact)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
