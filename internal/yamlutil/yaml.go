// Package yamlutil wraps YAML decoding so the rest of the module never
// imports the YAML library directly.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// maxInputSize bounds YAML input; the embedded report assets are a few
// kilobytes, so anything larger indicates a corrupted asset.
const maxInputSize = 1 << 20

var (
	ErrEmptyInput     = errors.New("yamlutil: empty input")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
)

// Decode parses data into v, rejecting unknown fields so typos in the
// embedded assets fail the build instead of silently dropping values.
func Decode(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyInput
	}
	if len(data) > maxInputSize {
		return fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(data))
	}
	if v == nil {
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}
