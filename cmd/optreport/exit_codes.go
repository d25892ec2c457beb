package main

import (
	"errors"
	"os"

	"github.com/optkit/optreport"
)

// Exit codes for the optreport CLI. Follows Unix conventions:
// 0=success, 1=general, 2=usage, and custom codes below 126.
const (
	ExitSuccess = 0 // report written
	ExitGeneral = 1 // general/unexpected error
	ExitUsage   = 2 // invalid flags
	ExitIO      = 3 // output path unwritable, disk full
	ExitRender  = 4 // chart rendering or layout failure
)

// exitCodeFor maps an error onto the CLI's exit code. It uses errors.Is
// to check wrapped errors, so callers must wrap with fmt.Errorf("%w").
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Rendering and layout failures (exit 4).
	if errors.Is(err, optreport.ErrChartRender) ||
		errors.Is(err, optreport.ErrChartData) ||
		errors.Is(err, optreport.ErrUnknownChartKind) ||
		errors.Is(err, optreport.ErrLayoutOverflow) {
		return ExitRender
	}

	// Output write failures (exit 3).
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, errWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
