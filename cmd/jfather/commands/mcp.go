package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/jfather/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. It takes no flags;
// the server is configured through JFATHER_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: jfather mcp\n\n")
		Writef(output, "Serve the merge, query, extend and load tools over the Model Context Protocol on stdio.\n\n")
		Writef(output, "Environment:\n")
		Writef(output, "  JFATHER_MAX_DEPTH            maximum $extends chain depth (default 32)\n")
		Writef(output, "  JFATHER_MAX_DOCUMENT_SIZE    maximum retrieved document size in bytes\n")
		Writef(output, "  JFATHER_MAX_INLINE_SIZE      maximum inline content size in bytes\n")
		Writef(output, "  JFATHER_FETCH_TIMEOUT        timeout for each HTTP request (default 30s)\n")
		Writef(output, "  JFATHER_ALLOW_LOCAL_REFS     allow $extends to read local files (default false)\n")
		Writef(output, "  JFATHER_ALLOW_PRIVATE_HOSTS  allow $extends URLs on private networks (default false)\n")
		Writef(output, "  JFATHER_CACHE_ENABLED        cache decoded documents per session (default true)\n")
		Writef(output, "  JFATHER_CACHE_MAX_SIZE       maximum number of cached documents (default 50)\n")
		Writef(output, "  JFATHER_CACHE_URL_TTL        cache TTL for fetched documents (default 5m)\n")
	}

	return fs
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
