package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/jfather/inherit"
	"github.com/erraggy/jfather/query"
)

// QueryFlags contains flags for the query command
type QueryFlags struct {
	OutputFlags
	Extend bool
	Raw    bool
}

// SetupQueryFlags creates and configures a FlagSet for the query command.
func SetupQueryFlags() (*flag.FlagSet, *QueryFlags) {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	flags := &QueryFlags{}

	addOutputFlags(fs, &flags.OutputFlags)
	fs.BoolVar(&flags.Extend, "extend", false, "resolve $extends references before querying")
	fs.BoolVar(&flags.Raw, "r", false, "print string results without quotes")
	fs.BoolVar(&flags.Raw, "raw", false, "print string results without quotes")

	fs.Usage = func() {
		output := fs.Output()
		Writef(output, "Usage: jfather query [flags] <path> <file|url|->\n\n")
		Writef(output, "Print the value found at path in a JSON or YAML document.\n\n")
		Writef(output, "Flags:\n")
		fs.PrintDefaults()
		Writef(output, "\nPaths:\n")
		Writef(output, "  A path is a sequence of .name and [index] steps, e.g. .squad.members[0].name\n")
		Writef(output, "  The leading '.' may be omitted. An empty path selects the whole document.\n")
		Writef(output, "\nExamples:\n")
		Writef(output, "  jfather query .members[1].powers superheroes.json\n")
		Writef(output, "  curl -s https://example.com/app.json | jfather query -r .name -\n")
		Writef(output, "\nExit Codes:\n")
		Writef(output, "  0    A value was found\n")
		Writef(output, "  1    The path is invalid, steps into null, or selects nothing\n")
	}

	return fs, flags
}

// HandleQuery executes the query command
func HandleQuery(args []string) error {
	fs, flags := SetupQueryFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("query command requires a path and exactly one file path, URL, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}

	// parse first so a bad path fails before any input is read
	path, err := query.Parse(fs.Arg(0))
	if err != nil {
		return err
	}
	source := fs.Arg(1)

	ctx := context.Background()
	doc, err := loadDocument(ctx, source)
	if err != nil {
		return fmt.Errorf("loading %s: %w", FormatSource(source), err)
	}
	if flags.Extend {
		doc, err = inherit.Extend(ctx, doc,
			inherit.WithLogger(inherit.NewSlogAdapter(newLogger(flags.Verbose))),
		)
		if err != nil {
			return fmt.Errorf("extending %s: %w", FormatSource(source), err)
		}
	}

	value, err := path.Get(doc)
	if err != nil {
		return err
	}
	if value == nil {
		return fmt.Errorf("no value at %s", path)
	}

	if s, ok := value.StringValue(); ok && flags.Raw && flags.Output == "" {
		Writef(stdout, "%s\n", s)
		return nil
	}
	return writeDocument(value, &flags.OutputFlags, []string{source})
}
