package main

import (
	flag "github.com/spf13/pflag"
)

// defaultOutputPath is the fixed relative path of the artifact. The
// parent directory is created if absent.
const defaultOutputPath = "docs/constrained_optimization_report.pdf"

// cliFlags holds the parsed command-line flags. No flag is required;
// invoking the binary with no arguments produces the report at the
// default path.
type cliFlags struct {
	output  string
	verbose bool
	version bool
}

// parseFlags parses argv into cliFlags.
func parseFlags(argv []string) (cliFlags, error) {
	var flags cliFlags

	fs := flag.NewFlagSet(argv[0], flag.ContinueOnError)
	fs.StringVarP(&flags.output, "output", "o", defaultOutputPath, "output PDF path")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVar(&flags.version, "version", false, "print version and exit")

	if err := fs.Parse(argv[1:]); err != nil {
		return cliFlags{}, err
	}
	return flags, nil
}
