// Package commands provides CLI command handlers for jfather.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/erraggy/jfather"
	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/internal/cliutil"
	"github.com/erraggy/jfather/internal/fileutil"
	"github.com/erraggy/jfather/internal/httputil"
	"github.com/mattn/go-isatty"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// stdin is the source for StdinFilePath. Tests replace it with a regular file.
var stdin = os.Stdin

// stdout receives documents when no output file is given.
var stdout io.Writer = os.Stdout

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// FormatSource returns a display-friendly name for an input path.
func FormatSource(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != cliutil.FormatJSON && format != cliutil.FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", format, cliutil.FormatJSON, cliutil.FormatYAML)
	}
	return nil
}

// OutputFlags are the flags shared by every command that prints a document.
type OutputFlags struct {
	Format  string
	Compact bool
	Output  string
	Verbose bool
}

func addOutputFlags(fs *flag.FlagSet, flags *OutputFlags) {
	fs.StringVar(&flags.Format, "format", cliutil.FormatJSON, "output format: json or yaml")
	fs.BoolVar(&flags.Compact, "compact", false, "print JSON on a single line")
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.BoolVar(&flags.Verbose, "v", false, "log resolution steps to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log resolution steps to stderr")
}

// newLogger returns the logger used for --verbose output.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// readStdin reads all of stdin, refusing to block on an interactive terminal.
func readStdin() ([]byte, error) {
	if isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd()) {
		return nil, errors.New("no input piped to stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return data, nil
}

// loadDocument decodes the document at path: a local file, an http(s) URL,
// or StdinFilePath. $extends members are left untouched.
func loadDocument(ctx context.Context, path string) (*document.Node, error) {
	var data []byte
	var err error

	switch {
	case path == StdinFilePath:
		data, err = readStdin()
	case httputil.IsURL(path):
		var resp *httputil.Response
		resp, err = httputil.Fetch(ctx, nil, path, jfather.UserAgent(), httputil.DefaultMaxDocumentSize)
		if resp != nil {
			data = resp.Body
		}
	default:
		data, err = os.ReadFile(path) //nolint:gosec // G304 - path is a user-supplied CLI argument
	}
	if err != nil {
		return nil, err
	}
	return document.DecodeNamed(FormatSource(path), data)
}

// writeDocument prints n to flags.Output, or stdout when no output file is set.
func writeDocument(n *document.Node, flags *OutputFlags, inputs []string) error {
	if flags.Output == "" {
		return cliutil.WriteDocument(stdout, n, flags.Format, flags.Compact)
	}

	data, err := cliutil.EncodeDocument(n, flags.Format, flags.Compact)
	if err != nil {
		return err
	}

	if err := ValidateOutputPath(flags.Output, inputs); err != nil {
		return err
	}
	if err := fileutil.WriteOwnerOnly(flags.Output, data); err != nil {
		return err
	}
	if flags.Verbose {
		Writef(os.Stderr, "Output written to: %s\n", flags.Output)
	}
	return nil
}

// ValidateOutputPath checks if the output path is safe to write to.
func ValidateOutputPath(outputPath string, inputPaths []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, inputPath := range inputPaths {
		if inputPath == StdinFilePath || httputil.IsURL(inputPath) {
			continue
		}
		absInputPath, err := filepath.Abs(inputPath)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", inputPath, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
		}
	}
	return nil
}
