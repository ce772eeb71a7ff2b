// Command plcdiff converts a PLC project XML export into a diff-friendly
// rendering on standard output.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	plcdiff "github.com/luksan/plc-diff"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("plcdiff", flag.ContinueOnError)
	fs.SetOutput(stderr)
	separator := fs.String("separator", " > ", "breadcrumb separator")
	elide := fs.String("elide", "LadderElements", "element whose subtree is removed from the output")
	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: %s [options] <project.xml>\n\n", fs.Name()),
			writeln(stderr, "Rewrites a PLC project export so a line diff between revisions is readable."),
			writeln(stderr, ""),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	remaining := fs.Args()
	if len(remaining) != 1 {
		if err := writeln(stderr, "error: exactly one input file argument is required"); err != nil {
			return 1
		}
		fs.Usage()
		if usageErr != nil {
			return 1
		}
		return 2
	}

	opts := []plcdiff.Option{
		plcdiff.WithBreadcrumbSeparator(*separator),
		plcdiff.WithElidedElements(*elide),
	}
	if err := plcdiff.ConvertFile(remaining[0], stdout, opts...); err != nil {
		if writeErr := writef(stderr, "error: %v\n", err); writeErr != nil {
			return 1
		}
		return 1
	}
	return 0
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, line string) error {
	_, err := fmt.Fprintln(w, line)
	return err
}
