package optreport

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// bulletGlyph prefixes list items; lists are encoded as sequential
// paragraphs, not as a dedicated block kind.
const bulletGlyph = "• "

// chartScheme is the URL scheme that marks an image as a chart
// reference: chart://<spec-id>?w=<inches>&h=<inches>.
const chartScheme = "chart"

// embedSpacing is the vertical space appended after tables and images.
const embedSpacing = 20.0

// markdownConverter turns the report's Markdown copy into typed content
// blocks on a Builder. Headings map to the title/heading/subheading
// styles by level, lists become bullet paragraphs, fenced code becomes
// code-style paragraphs, GFM tables become TableBlocks, thematic breaks
// become PageBreaks, and chart:// images become ImageBlocks.
type markdownConverter struct {
	md goldmark.Markdown
}

func newMarkdownConverter() *markdownConverter {
	return &markdownConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// Convert parses source and appends the resulting blocks to b in
// document order.
func (c *markdownConverter) Convert(source []byte, b *Builder) error {
	doc := c.md.Parser().Parse(text.NewReader(source))
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if err := c.convertBlock(n, source, b); err != nil {
			return err
		}
	}
	return nil
}

func (c *markdownConverter) convertBlock(n ast.Node, source []byte, b *Builder) error {
	switch node := n.(type) {
	case *ast.Heading:
		return b.AddParagraph(nodeText(node, source), headingStyle(node.Level))

	case *ast.Paragraph:
		if img, ok := soleImage(node); ok {
			return c.convertChartImage(img, b)
		}
		return b.AddParagraph(nodeText(node, source), StyleBody)

	case *ast.List:
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			if err := b.AddParagraph(bulletGlyph+nodeText(item, source), StyleBody); err != nil {
				return err
			}
		}
		return nil

	case *ast.FencedCodeBlock:
		return b.AddParagraph(rawLines(node, source), StyleCode)

	case *ast.CodeBlock:
		return b.AddParagraph(rawLines(node, source), StyleCode)

	case *ast.ThematicBreak:
		return b.AddPageBreak()

	case *east.Table:
		return c.convertTable(node, source, b)

	case *ast.HTMLBlock:
		// Raw HTML has no place in the block model.
		return nil

	default:
		return fmt.Errorf("%w: markdown node %s", ErrUnknownBlock, n.Kind())
	}
}

// headingStyle maps markdown heading levels onto the style catalog:
// h1 is the document title style, h2 a section heading, h3 and deeper a
// subheading.
func headingStyle(level int) string {
	switch level {
	case 1:
		return StyleTitle
	case 2:
		return StyleHeading
	default:
		return StyleSubheading
	}
}

// convertChartImage resolves a chart:// reference into an ImageBlock
// followed by the standard embed spacing.
func (c *markdownConverter) convertChartImage(img *ast.Image, b *Builder) error {
	ref, err := url.Parse(string(img.Destination))
	if err != nil || ref.Scheme != chartScheme || ref.Host == "" {
		return fmt.Errorf("%w: %q", ErrBadChartRef, img.Destination)
	}
	w, errW := strconv.ParseFloat(ref.Query().Get("w"), 64)
	h, errH := strconv.ParseFloat(ref.Query().Get("h"), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %q needs positive w and h in inches", ErrBadChartRef, img.Destination)
	}
	if err := b.AddImage(ref.Host, Inches(w), Inches(h)); err != nil {
		return err
	}
	return b.AddSpacer(embedSpacing)
}

// convertTable flattens a GFM table into rows of cell text. The header
// row comes first; shape validation happens in the builder.
func (c *markdownConverter) convertTable(node *east.Table, source []byte, b *Builder) error {
	var rows [][]string
	for rowNode := node.FirstChild(); rowNode != nil; rowNode = rowNode.NextSibling() {
		var row []string
		for cell := rowNode.FirstChild(); cell != nil; cell = cell.NextSibling() {
			row = append(row, nodeText(cell, source))
		}
		rows = append(rows, row)
	}
	if err := b.AddTable(rows, DefaultTableRules()); err != nil {
		return err
	}
	return b.AddSpacer(embedSpacing)
}

// soleImage reports whether the paragraph consists of a single image.
func soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	img, ok := p.FirstChild().(*ast.Image)
	if !ok || p.FirstChild() != p.LastChild() {
		return nil, false
	}
	return img, true
}

// nodeText extracts the plain text of a node and its descendants,
// dropping inline markup. Soft line breaks collapse to spaces.
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	collectText(n, source, &sb)
	return strings.TrimSpace(sb.String())
}

func collectText(n ast.Node, source []byte, sb *strings.Builder) {
	switch t := n.(type) {
	case *ast.Text:
		sb.Write(t.Segment.Value(source))
		if t.SoftLineBreak() || t.HardLineBreak() {
			sb.WriteByte(' ')
		}
		return
	case *ast.String:
		sb.Write(t.Value)
		return
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		collectText(c, source, sb)
	}
}

// rawLines joins the raw source lines of a block node, trimming the
// trailing newline.
func rawLines(n ast.Node, source []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return strings.TrimRight(sb.String(), "\n")
}
