// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/jfather/document"
	"go.yaml.in/yaml/v4"
)

// Output formats accepted by WriteDocument.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteDocument writes n to w in the given format followed by a newline.
// JSON output is indented with two spaces unless compact is set.
// An undefined document is written as JSON null.
func WriteDocument(w io.Writer, n *document.Node, format string, compact bool) error {
	data, err := EncodeDocument(n, format, compact)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("cliutil: write failed: %w", err)
	}
	return nil
}

// EncodeDocument renders n in the given format, ending with a newline.
func EncodeDocument(n *document.Node, format string, compact bool) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		var data []byte
		var err error
		if compact {
			data, err = n.MarshalJSON()
		} else {
			data, err = n.MarshalJSONIndent("", "  ")
		}
		if err != nil {
			return nil, fmt.Errorf("cliutil: failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil

	case FormatYAML:
		data, err := yaml.Marshal(n)
		if err != nil {
			return nil, fmt.Errorf("cliutil: failed to encode YAML: %w", err)
		}
		return data, nil

	default:
		return nil, fmt.Errorf("cliutil: unsupported output format %q (expected %s or %s)", format, FormatJSON, FormatYAML)
	}
}
