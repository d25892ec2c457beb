package optreport

import (
	"fmt"
	"time"

	"github.com/optkit/optreport/internal/assets"
	"github.com/optkit/optreport/internal/yamlutil"
)

// Title-block spacing in points.
const (
	titleBlockSpacing = 20.0
	tocEntrySpacing   = 6.0
)

// generatedOnFormat renders the build date on the title page.
const generatedOnFormat = "January 2, 2006"

// reportMeta is the YAML front matter of the report copy.
type reportMeta struct {
	Title         string   `yaml:"title"`
	Subtitle      string   `yaml:"subtitle"`
	ContentsTitle string   `yaml:"contents_title"`
	Contents      []string `yaml:"contents"`
}

func (m reportMeta) validate() error {
	if m.Title == "" {
		return fmt.Errorf("%w: front matter has no title", ErrReportCopy)
	}
	if len(m.Contents) == 0 {
		return fmt.Errorf("%w: front matter has no contents list", ErrReportCopy)
	}
	return nil
}

// buildReport assembles the frozen document: title block, table of
// contents, then the ten numbered sections from the embedded Markdown
// copy, with the pre-rendered chart images embedded where the copy
// references them.
func buildReport(geometry PageGeometry, styles StyleCatalog, charts map[string]ChartImage, now time.Time) (Document, error) {
	metaRaw, body, err := assets.ReportCopy()
	if err != nil {
		return Document{}, err
	}
	var meta reportMeta
	if err := yamlutil.Decode(metaRaw, &meta); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrReportCopy, err)
	}
	if err := meta.validate(); err != nil {
		return Document{}, err
	}

	b := NewBuilder(geometry, styles, charts)

	// Collect the first error; every Add below only fails on a frozen
	// document or a bad reference, both of which abort the build.
	var buildErr error
	add := func(err error) {
		if buildErr == nil {
			buildErr = err
		}
	}

	// Title block.
	add(b.SetTitle(meta.Title))
	add(b.SetCreated(now))
	add(b.AddParagraph(meta.Title, StyleTitle))
	if meta.Subtitle != "" {
		add(b.AddParagraph(meta.Subtitle, StyleHeading))
	}
	add(b.AddSpacer(titleBlockSpacing))
	add(b.AddParagraph("Generated on: "+now.Format(generatedOnFormat), StyleBody))
	add(b.AddPageBreak())

	// Table of contents: a flat list of section titles.
	add(b.AddParagraph(meta.ContentsTitle, StyleHeading))
	for _, entry := range meta.Contents {
		add(b.AddParagraph(entry, StyleBody))
		add(b.AddSpacer(tocEntrySpacing))
	}
	add(b.AddPageBreak())
	if buildErr != nil {
		return Document{}, buildErr
	}

	// Section content from the Markdown copy.
	if err := newMarkdownConverter().Convert(body, b); err != nil {
		return Document{}, err
	}

	return b.Freeze()
}
