// Package assets holds the report's compiled-in content: the narrative
// copy as Markdown with a YAML front matter block, and the chart sample
// data as YAML. Loaders return raw bytes; parsing belongs to the caller.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
)

//go:embed report/*
var reportFS embed.FS

// Sentinel errors for asset loading.
var (
	ErrAssetNotFound = errors.New("embedded asset not found")
	ErrFrontMatter   = errors.New("report copy has no front matter block")
)

// frontMatterDelim separates the YAML front matter from the Markdown
// body. The front matter must open the file.
var frontMatterDelim = []byte("---\n")

// ReportCopy returns the report's YAML front matter and Markdown body.
func ReportCopy() (meta, body []byte, err error) {
	raw, err := reportFS.ReadFile("report/report.md")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: report/report.md", ErrAssetNotFound)
	}
	return splitFrontMatter(raw)
}

// ChartData returns the YAML document describing the four chart specs.
func ChartData() ([]byte, error) {
	raw, err := reportFS.ReadFile("report/charts.yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: report/charts.yaml", ErrAssetNotFound)
	}
	return raw, nil
}

// splitFrontMatter splits a document of the form "---\n<yaml>\n---\n<body>".
func splitFrontMatter(raw []byte) (meta, body []byte, err error) {
	if !bytes.HasPrefix(raw, frontMatterDelim) {
		return nil, nil, ErrFrontMatter
	}
	rest := raw[len(frontMatterDelim):]
	end := bytes.Index(rest, []byte("\n---\n"))
	if end < 0 {
		return nil, nil, fmt.Errorf("%w: missing closing delimiter", ErrFrontMatter)
	}
	return rest[:end], rest[end+len("\n---\n"):], nil
}
