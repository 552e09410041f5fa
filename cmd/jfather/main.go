package main

import (
	"fmt"
	"os"

	"github.com/erraggy/jfather"
	"github.com/erraggy/jfather/cmd/jfather/commands"
)

var handlers = map[string]func([]string) error{
	"extend": commands.HandleExtend,
	"merge":  commands.HandleMerge,
	"query":  commands.HandleQuery,
	"mcp":    commands.HandleMCP,
}

// commandNames lists every command, in usage order, for typo suggestions.
var commandNames = []string{"extend", "merge", "query", "mcp", "version", "help"}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	switch command {
	case "version", "-v", "--version":
		fmt.Printf("jfather v%s\n\n%s\n", jfather.Version(), jfather.BuildInfo())
		return 0
	case "help", "-h", "--help":
		printUsage()
		return 0
	}

	handle, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		return 1
	}

	if err := handle(args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// suggestCommand returns the closest command within edit distance 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, name := range commandNames {
		if d := editDistance(input, name); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// editDistance is the Levenshtein distance between a and b.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`jfather - JSON inheritance and merging

Usage:
  jfather <command> [options]

Commands:
  extend      Resolve "$extends" references in a document
  merge       Merge documents, applying "$key[n]" and "$key[]" overrides
  query       Print the value at a path such as .a.b[0]
  mcp         Serve jfather tools over the Model Context Protocol
  version     Show version information
  help        Show this help message

Examples:
  jfather extend service.json
  jfather merge defaults.json overrides.yaml
  jfather query .squad.members[0].name superheroes.json
  cat child.json | jfather extend --base-dir ./configs -

Run 'jfather <command> --help' for more information on a command.`)
}
