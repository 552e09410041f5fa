package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/inherit"
	"github.com/erraggy/jfather/internal/httputil"
	"github.com/erraggy/jfather/query"
)

// ExtendFlags contains flags for the extend command
type ExtendFlags struct {
	OutputFlags
	MaxDepth  int
	BaseDir   string
	NoFiles   bool
	MaxSize   int64
	Timeout   time.Duration
	UserAgent string
}

// SetupExtendFlags creates and configures a FlagSet for the extend command.
// Returns the FlagSet and an ExtendFlags struct with bound flag variables.
func SetupExtendFlags() (*flag.FlagSet, *ExtendFlags) {
	fs := flag.NewFlagSet("extend", flag.ContinueOnError)
	flags := &ExtendFlags{}

	addOutputFlags(fs, &flags.OutputFlags)
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, "maximum $extends chain depth (0 = unlimited)")
	fs.StringVar(&flags.BaseDir, "base-dir", "", "directory relative file references resolve against (default: the input file's directory)")
	fs.BoolVar(&flags.NoFiles, "no-files", false, "only follow http and https references")
	fs.Int64Var(&flags.MaxSize, "max-size", httputil.DefaultMaxDocumentSize, "maximum size in bytes of a retrieved document")
	fs.DurationVar(&flags.Timeout, "timeout", httputil.DefaultTimeout, "timeout for each HTTP request")
	fs.StringVar(&flags.UserAgent, "user-agent", "", "User-Agent header for HTTP requests")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: jfather extend [flags] <file|url|->[#path]\n\n")
		Writef(output, "Resolve every \"$extends\" reference in a JSON or YAML document.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nExamples:\n")
		Writef(output, "  jfather extend service.json\n")
		Writef(output, "  jfather extend --format yaml 'configs/prod.json#.services.api'\n")
		Writef(output, "  jfather extend --no-files --max-depth 8 https://example.com/app.json\n")
		Writef(output, "  cat child.json | jfather extend --base-dir ./configs -\n")
		Writef(output, "\nReferences:\n")
		Writef(output, "  A reference is \"locator#path\". The locator is a file path or http(s) URL;\n")
		Writef(output, "  the optional path (for example .defaults.server) selects part of it.\n")
		Writef(output, "  Cycles are only stopped by --max-depth.\n")
		Writef(output, "  An input path that names an existing file is read whole, even when it\n")
		Writef(output, "  contains '#'.\n")
	}

	return fs, flags
}

// HandleExtend executes the extend command
func HandleExtend(args []string) error {
	fs, flags := SetupExtendFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("extend command requires exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	ref := fs.Arg(0)
	locator, fragment := inherit.SplitReference(ref)
	wholeFile := false
	if fragment != "" && !httputil.IsURL(ref) && isFile(ref) {
		// the '#' belongs to the file name
		locator, fragment, wholeFile = ref, "", true
	}

	baseDir := flags.BaseDir
	if baseDir == "" && locator != StdinFilePath && !httputil.IsURL(locator) {
		baseDir = filepath.Dir(locator)
		// the locator itself is now relative to baseDir
		ref = filepath.Base(locator) + ref[len(locator):]
	}

	opts := []inherit.Option{
		inherit.WithHTTPClient(httputil.NewClient(flags.Timeout)),
		inherit.WithMaxDepth(flags.MaxDepth),
		inherit.WithBaseDir(baseDir),
		inherit.WithLocalFiles(!flags.NoFiles),
		inherit.WithMaxDocumentSize(flags.MaxSize),
		inherit.WithLogger(inherit.NewSlogAdapter(newLogger(flags.Verbose))),
	}
	if flags.UserAgent != "" {
		opts = append(opts, inherit.WithUserAgent(flags.UserAgent))
	}
	resolver, err := inherit.New(opts...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	start := time.Now()

	var result *document.Node
	switch {
	case locator == StdinFilePath:
		data, err := readStdin()
		if err != nil {
			return err
		}
		result, err = extendData(ctx, resolver, StdinFilePath, data, fragment)
		if err != nil {
			return fmt.Errorf("extending %s: %w", FormatSource(locator), err)
		}
	case wholeFile:
		data, err := os.ReadFile(locator) //nolint:gosec // G304 - path is a user-supplied CLI argument
		if err != nil {
			return err
		}
		result, err = extendData(ctx, resolver, locator, data, "")
		if err != nil {
			return fmt.Errorf("extending %s: %w", locator, err)
		}
	default:
		result, err = resolver.Load(ctx, ref)
		if err != nil {
			return fmt.Errorf("extending %s: %w", fs.Arg(0), err)
		}
	}

	if flags.Verbose {
		Writef(os.Stderr, "Resolved %s in %v\n", FormatSource(fs.Arg(0)), time.Since(start))
	}
	return writeDocument(result, &flags.OutputFlags, []string{locator})
}

// extendData resolves a document read from source, narrowed to fragment.
func extendData(ctx context.Context, resolver *inherit.Resolver, source string, data []byte, fragment string) (*document.Node, error) {
	doc, err := document.DecodeNamed(FormatSource(source), data)
	if err != nil {
		return nil, err
	}
	sub, err := query.Get(doc, fragment)
	if err != nil {
		return nil, err
	}
	return resolver.Extend(ctx, sub)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
