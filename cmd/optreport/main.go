// Command optreport builds the constrained-optimization technical
// report and writes it as a single PDF artifact.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/optkit/optreport"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	flags, err := parseFlags(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitUsage)
	}
	if flags.version {
		fmt.Println("optreport " + Version)
		os.Exit(ExitSuccess)
	}

	logger := newLogger(os.Stderr, flags.verbose)

	// Error ignored: maxprocs.Set only fails if the GOMAXPROCS env var
	// is invalid, in which case runtime defaults apply.
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		logger.Debugf(format, args...)
	}))

	if err := run(flags, logger); err != nil {
		logger.Error(err)
		os.Exit(exitCodeFor(err))
	}
}

// newLogger builds the CLI logger; verbose enables debug-level output
// with timestamps.
func newLogger(w *os.File, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: verbose,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// run generates the report and writes it to the output path.
func run(flags cliFlags, logger *log.Logger) error {
	svc, err := optreport.New(optreport.WithLogger(logger))
	if err != nil {
		return err
	}

	pdf, err := svc.Generate()
	if err != nil {
		return err
	}

	if err := writeFileAtomic(flags.output, pdf); err != nil {
		return err
	}
	logger.Info("wrote report", "path", flags.output, "bytes", len(pdf))
	return nil
}
