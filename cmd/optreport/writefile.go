package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// errWriteOutput marks failures while writing the output artifact.
var errWriteOutput = errors.New("writing output artifact")

// writeFileAtomic writes data to path through a temporary file in the
// same directory followed by a rename, so no partially written artifact
// is ever visible at the final path. The parent directory is created if
// it does not exist.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", errWriteOutput, err)
	}

	tmp, err := os.CreateTemp(dir, ".optreport-*.pdf")
	if err != nil {
		return fmt.Errorf("%w: %v", errWriteOutput, err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("%w: %v", errWriteOutput, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("%w: %v", errWriteOutput, err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("%w: %v", errWriteOutput, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("%w: %v", errWriteOutput, err)
	}
	return nil
}
