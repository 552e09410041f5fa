package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/jfather/document"
	"github.com/erraggy/jfather/merger"
)

// MergeFlags contains flags for the merge command
type MergeFlags struct {
	OutputFlags
}

// SetupMergeFlags creates and configures a FlagSet for the merge command.
func SetupMergeFlags() (*flag.FlagSet, *MergeFlags) {
	fs := flag.NewFlagSet("merge", flag.ContinueOnError)
	flags := &MergeFlags{}

	addOutputFlags(fs, &flags.OutputFlags)

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: jfather merge [flags] <parent> <child> [child...]\n\n")
		Writef(output, "Merge documents left to right; each child is merged onto the result so far.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nMerge Rules:\n")
		Writef(output, "  - Child values replace parent values; nested objects merge recursively\n")
		Writef(output, "  - Keys starting with '$' are directives and never appear in the output\n")
		Writef(output, "  - \"$key[n]\" merges into element n of the array \"key\"\n")
		Writef(output, "  - \"$key[]\" appends its elements to the array \"key\"\n")
		Writef(output, "  - \"$extends\" is not followed; use 'jfather extend' for that\n")
		Writef(output, "\nExamples:\n")
		Writef(output, "  jfather merge defaults.json overrides.yaml\n")
		Writef(output, "  jfather merge --compact base.json - < patch.json\n")
	}

	return fs, flags
}

// HandleMerge executes the merge command
func HandleMerge(args []string) error {
	fs, flags := SetupMergeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("merge command requires at least 2 documents")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	paths := fs.Args()
	stdinCount := 0
	for _, p := range paths {
		if p == StdinFilePath {
			stdinCount++
		}
	}
	if stdinCount > 1 {
		return fmt.Errorf("stdin ('-') may be used for at most one document")
	}

	ctx := context.Background()
	logger := newLogger(flags.Verbose)

	var result *document.Node
	for i, p := range paths {
		doc, err := loadDocument(ctx, p)
		if err != nil {
			return fmt.Errorf("loading %s: %w", FormatSource(p), err)
		}
		if i == 0 {
			result = doc
			continue
		}
		logger.Debug("merging document", "child", FormatSource(p), "position", i)
		result = merger.Merge(result, doc)
	}

	return writeDocument(result, &flags.OutputFlags, paths)
}
