package optreport

import (
	"fmt"
	"time"
)

// Block is one unit of document content. The set of implementations is
// closed: Paragraph, TableBlock, ImageBlock, Spacer, and PageBreak. The
// layout engine handles each kind exhaustively.
type Block interface {
	// blockKind identifies the variant; it also seals the interface.
	blockKind() string
}

// Paragraph is a run of text rendered with a named style. Text may
// contain newlines; the layout engine honors them as line breaks.
type Paragraph struct {
	Text  string
	Style string
}

func (Paragraph) blockKind() string { return "paragraph" }

// TableStyleRules are per-table overrides applied uniformly to one table.
type TableStyleRules struct {
	HeaderBackground RGB
	HeaderText       RGB
	GridWidth        float64 // grid line width in points
	Align            string  // cell text alignment
	BandBackground   RGB     // background for banded (odd) body rows
}

// DefaultTableRules returns the report's fixed table styling: grey header
// with near-white text, 1 pt black grid, centered cells, beige bands.
func DefaultTableRules() TableStyleRules {
	return TableStyleRules{
		HeaderBackground: RGB{R: 128, G: 128, B: 128},
		HeaderText:       RGB{R: 245, G: 245, B: 245},
		GridWidth:        1.0,
		Align:            AlignCenter,
		BandBackground:   RGB{R: 245, G: 245, B: 220},
	}
}

// TableBlock is a table with a header row followed by body rows. All rows
// share the same column count.
type TableBlock struct {
	Rows  [][]string // Rows[0] is the header row
	Rules TableStyleRules
}

func (TableBlock) blockKind() string { return "table" }

// ImageBlock embeds a rendered chart at a declared display size. The
// ChartImage is owned by the block and never mutated after creation.
type ImageBlock struct {
	ChartID string     // the ChartSpec this image was declared to come from
	Image   ChartImage // the rendered raster
	Width   float64    // display width in points
	Height  float64    // display height in points
}

func (ImageBlock) blockKind() string { return "image" }

// Spacer consumes vertical space without content.
type Spacer struct {
	Height float64 // points
}

func (Spacer) blockKind() string { return "spacer" }

// PageBreak unconditionally terminates the current page.
type PageBreak struct{}

func (PageBreak) blockKind() string { return "pagebreak" }

// Document is the root aggregate: a fixed page geometry plus the ordered
// block sequence. Block order is rendering order. A Document is produced
// by Builder.Freeze and is not mutated afterwards.
type Document struct {
	Geometry PageGeometry
	Styles   StyleCatalog
	Title    string    // artifact metadata title, may be empty
	Created  time.Time // artifact creation timestamp; zero means unset
	Blocks   []Block
}

// Builder accumulates content blocks in call order. It performs no layout
// computation; it only establishes order, styling references, and
// reference integrity for embedded chart images.
type Builder struct {
	geometry PageGeometry
	styles   StyleCatalog
	charts   map[string]ChartImage // rendered images by spec ID
	title    string
	created  time.Time
	blocks   []Block
	frozen   bool
}

// NewBuilder creates a Builder over the given geometry and style catalog.
// charts holds the pre-rendered chart images available for embedding,
// keyed by spec ID; every image must be rendered before building starts.
func NewBuilder(geometry PageGeometry, styles StyleCatalog, charts map[string]ChartImage) *Builder {
	return &Builder{
		geometry: geometry,
		styles:   styles,
		charts:   charts,
	}
}

// AddParagraph appends a text block using the named style.
func (b *Builder) AddParagraph(text, style string) error {
	if b.frozen {
		return ErrDocumentFrozen
	}
	if _, err := b.styles.Lookup(style); err != nil {
		return err
	}
	b.blocks = append(b.blocks, Paragraph{Text: text, Style: style})
	return nil
}

// AddTable appends a table block. The first row is the header; every row
// must share the header's column count.
func (b *Builder) AddTable(rows [][]string, rules TableStyleRules) error {
	if b.frozen {
		return ErrDocumentFrozen
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: table has no rows", ErrTableShape)
	}
	cols := len(rows[0])
	if cols == 0 {
		return fmt.Errorf("%w: header row has no columns", ErrTableShape)
	}
	for i, row := range rows {
		if len(row) != cols {
			return fmt.Errorf("%w: row %d has %d columns, header has %d", ErrTableShape, i, len(row), cols)
		}
	}
	b.blocks = append(b.blocks, TableBlock{Rows: rows, Rules: rules})
	return nil
}

// AddImage appends an image block for the chart rendered from the spec
// identified by chartID, displayed at width x height points. It fails if
// no image was rendered for chartID or if the rendered image reports a
// different spec than declared.
func (b *Builder) AddImage(chartID string, width, height float64) error {
	if b.frozen {
		return ErrDocumentFrozen
	}
	img, ok := b.charts[chartID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrChartNotRendered, chartID)
	}
	if img.SpecID != chartID {
		return fmt.Errorf("%w: declared %q, image from %q", ErrChartMismatch, chartID, img.SpecID)
	}
	if len(img.PNG) == 0 {
		return fmt.Errorf("%w: %q has an empty raster", ErrChartNotRendered, chartID)
	}
	b.blocks = append(b.blocks, ImageBlock{
		ChartID: chartID,
		Image:   img,
		Width:   width,
		Height:  height,
	})
	return nil
}

// AddSpacer appends vertical space of the given height in points.
func (b *Builder) AddSpacer(height float64) error {
	if b.frozen {
		return ErrDocumentFrozen
	}
	b.blocks = append(b.blocks, Spacer{Height: height})
	return nil
}

// SetTitle sets the artifact's metadata title.
func (b *Builder) SetTitle(title string) error {
	if b.frozen {
		return ErrDocumentFrozen
	}
	b.title = title
	return nil
}

// SetCreated pins the artifact's creation timestamp, which otherwise
// defaults to the serialization time. Builds that pin it produce
// byte-identical artifacts for identical content.
func (b *Builder) SetCreated(t time.Time) error {
	if b.frozen {
		return ErrDocumentFrozen
	}
	b.created = t
	return nil
}

// AddPageBreak appends an explicit page break.
func (b *Builder) AddPageBreak() error {
	if b.frozen {
		return ErrDocumentFrozen
	}
	b.blocks = append(b.blocks, PageBreak{})
	return nil
}

// Len returns the number of blocks accumulated so far.
func (b *Builder) Len() int {
	return len(b.blocks)
}

// Freeze validates the accumulated sequence and returns the finalized
// Document. After Freeze, all Add methods fail with ErrDocumentFrozen.
func (b *Builder) Freeze() (Document, error) {
	if b.frozen {
		return Document{}, ErrDocumentFrozen
	}
	if err := b.geometry.Validate(); err != nil {
		return Document{}, err
	}
	if len(b.blocks) == 0 {
		return Document{}, ErrEmptyDocument
	}
	b.frozen = true
	return Document{
		Geometry: b.geometry,
		Styles:   b.styles,
		Title:    b.title,
		Created:  b.created,
		Blocks:   b.blocks,
	}, nil
}
