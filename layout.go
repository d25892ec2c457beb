package optreport

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Table rendering constants, in points.
const (
	tableCellPadding    = 4.0
	tableLeading        = 12.0
	tableFontSize       = 10.0
	tableHeaderFontSize = 12.0
)

// placement records where one block landed. Placements are collected
// only when tracing is enabled; tests use them to verify pagination
// without parsing PDF output. StartPage is the page holding the block's
// first drawn content, after any advance to a fresh page; for a page
// break it is the fresh page itself.
type placement struct {
	Block      Block
	StartPage  int
	EndPage    int
	BottomY    float64       // cursor position after the block, in points
	RowsByPage map[int][]int // tables only: body row indices drawn per page
}

// LayoutEngine flows a frozen Document onto fixed-size pages and
// serializes the result as a PDF. It walks the block sequence exactly
// once and never relocates a block once placed.
type LayoutEngine struct {
	trace *[]placement // optional placement trace, set by tests
}

// NewLayoutEngine returns a layout engine.
func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{}
}

// layoutState is the cursor over the page currently being accumulated.
type layoutState struct {
	pdf        *fpdf.Fpdf
	geo        PageGeometry
	tr         func(string) string // UTF-8 to font codepage
	atTop      bool                // cursor sits at the top of a fresh page
	registered map[string]bool     // chart images registered with the PDF
}

// bottomLimit is the lowest cursor position content may reach.
func (st *layoutState) bottomLimit() float64 {
	return st.geo.Height - st.geo.Bottom
}

// remaining is the vertical space left on the current page.
func (st *layoutState) remaining() float64 {
	return st.bottomLimit() - st.pdf.GetY()
}

// newPage flushes the current page and moves the cursor to the top of a
// fresh one.
func (st *layoutState) newPage() {
	st.pdf.AddPage()
	st.atTop = true
}

// Layout consumes the document's block sequence and returns the
// serialized PDF bytes.
func (e *LayoutEngine) Layout(doc Document) ([]byte, error) {
	if err := doc.Geometry.Validate(); err != nil {
		return nil, err
	}
	if len(doc.Blocks) == 0 {
		return nil, ErrEmptyDocument
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: doc.Geometry.Width, Ht: doc.Geometry.Height},
	})
	pdf.SetCatalogSort(true)
	pdf.SetMargins(doc.Geometry.Left, doc.Geometry.Top, doc.Geometry.Right)
	pdf.SetAutoPageBreak(false, 0)
	if doc.Title != "" {
		pdf.SetTitle(doc.Title, true)
	}
	pdf.SetCreator("optreport", true)
	if !doc.Created.IsZero() {
		pdf.SetCreationDate(doc.Created)
		pdf.SetModificationDate(doc.Created)
	}

	st := &layoutState{
		pdf:        pdf,
		geo:        doc.Geometry,
		tr:         pdf.UnicodeTranslatorFromDescriptor(""),
		registered: map[string]bool{},
	}
	st.newPage()

	for _, block := range doc.Blocks {
		rec := placement{Block: block}

		var start int
		var err error
		switch b := block.(type) {
		case Paragraph:
			start, err = e.placeParagraph(st, b, doc.Styles)
		case TableBlock:
			rec.RowsByPage = map[int][]int{}
			start, err = e.placeTable(st, b, rec.RowsByPage)
		case ImageBlock:
			start, err = e.placeImage(st, b)
		case Spacer:
			start, err = e.placeSpacer(st, b)
		case PageBreak:
			st.newPage()
			start = pdf.PageNo()
		default:
			err = fmt.Errorf("%w: %T", ErrUnknownBlock, block)
		}
		if err != nil {
			return nil, err
		}
		if pdf.Err() {
			return nil, fmt.Errorf("placing block on page %d: %w", pdf.PageNo(), pdf.Error())
		}

		if e.trace != nil {
			rec.StartPage = start
			rec.EndPage = pdf.PageNo()
			rec.BottomY = pdf.GetY()
			*e.trace = append(*e.trace, rec)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serializing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// setStyleFont applies a paragraph style's font to the PDF cursor.
func setStyleFont(pdf *fpdf.Fpdf, style Style) {
	variant := ""
	if style.Bold {
		variant = "B"
	}
	pdf.SetFont(style.Font, variant, style.Size)
	pdf.SetTextColor(style.Color.R, style.Color.G, style.Color.B)
}

// splitToWidth wraps text to the given width using the current font.
// Wrapping runs over the code-page translation of the text, because
// core-font metrics are indexed by encoded byte; SplitLines operates on
// bytes where SplitText would misread non-ASCII glyphs as runes. The
// returned lines are already translated and must be drawn as-is.
func splitToWidth(st *layoutState, text string, width float64) []string {
	raw := st.pdf.SplitLines([]byte(st.tr(text)), width)
	lines := make([]string, 0, len(raw))
	for _, ln := range raw {
		lines = append(lines, string(ln))
	}
	return lines
}

// alignString maps a style alignment onto fpdf's alignment letters.
func alignString(align string) string {
	if align == AlignCenter {
		return "C"
	}
	return "L"
}

// placeParagraph measures the paragraph, starts a new page if the whole
// block fits there but not here, and otherwise flows it line by line,
// breaking pages between lines but never mid-word. It returns the page
// holding the first line.
func (e *LayoutEngine) placeParagraph(st *layoutState, p Paragraph, styles StyleCatalog) (int, error) {
	style, err := styles.Lookup(p.Style)
	if err != nil {
		return 0, err
	}
	setStyleFont(st.pdf, style)

	width := st.geo.PrintableWidth() - 2*style.Indent
	var lines []string
	for _, seg := range strings.Split(p.Text, "\n") {
		if seg == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, splitToWidth(st, seg, width)...)
	}
	if len(lines) == 0 {
		lines = []string{""}
	}

	// Whole-block fit rule: if the paragraph does not fit in the
	// remaining space but would fit on an empty page, advance first.
	total := float64(len(lines)) * style.Leading
	if !st.atTop && style.SpaceBefore > 0 {
		total += style.SpaceBefore
	}
	if total > st.remaining() && total <= st.geo.PrintableHeight() {
		st.newPage()
	}

	if !st.atTop && style.SpaceBefore > 0 {
		st.pdf.SetY(st.pdf.GetY() + style.SpaceBefore)
	}

	start := 0
	for _, line := range lines {
		if style.Leading > st.remaining() {
			st.newPage()
		}
		if start == 0 {
			start = st.pdf.PageNo()
		}
		if style.Shaded {
			st.pdf.SetFillColor(style.Background.R, style.Background.G, style.Background.B)
			st.pdf.Rect(st.geo.Left, st.pdf.GetY(), st.geo.PrintableWidth(), style.Leading, "F")
		}
		st.pdf.SetX(st.geo.Left + style.Indent)
		st.pdf.CellFormat(width, style.Leading, line, "", 1, alignString(style.Align), false, 0, "")
		st.atTop = false
	}

	st.pdf.SetY(st.pdf.GetY() + style.SpaceAfter)
	return start, nil
}

// tableMetrics holds the measured geometry of one table.
type tableMetrics struct {
	colWidths  []float64
	cellLines  [][][]string // per row, per column, wrapped text lines
	rowHeights []float64
}

// measureTable computes column widths and row heights. Columns take
// their natural width (widest cell plus padding) scaled so the table
// spans the printable width; cell text wraps within its column.
func (e *LayoutEngine) measureTable(st *layoutState, t TableBlock) tableMetrics {
	cols := len(t.Rows[0])
	printW := st.geo.PrintableWidth()

	natural := make([]float64, cols)
	for r, row := range t.Rows {
		e.setTableFont(st, r == 0, t.Rules)
		for c, cell := range row {
			w := st.pdf.GetStringWidth(st.tr(cell)) + 2*tableCellPadding
			natural[c] = max(natural[c], w)
		}
	}
	var sum float64
	for _, w := range natural {
		sum += w
	}
	widths := make([]float64, cols)
	for c, w := range natural {
		widths[c] = w * printW / sum
	}

	m := tableMetrics{
		colWidths:  widths,
		cellLines:  make([][][]string, len(t.Rows)),
		rowHeights: make([]float64, len(t.Rows)),
	}
	for r, row := range t.Rows {
		e.setTableFont(st, r == 0, t.Rules)
		m.cellLines[r] = make([][]string, cols)
		maxLines := 1
		for c, cell := range row {
			lines := splitToWidth(st, cell, widths[c]-2*tableCellPadding)
			if len(lines) == 0 {
				lines = []string{""}
			}
			m.cellLines[r][c] = lines
			maxLines = max(maxLines, len(lines))
		}
		m.rowHeights[r] = float64(maxLines)*tableLeading + 2*tableCellPadding
	}
	return m
}

// setTableFont selects the header or body font for table cells.
func (e *LayoutEngine) setTableFont(st *layoutState, header bool, rules TableStyleRules) {
	if header {
		st.pdf.SetFont(FontSans, "B", tableHeaderFontSize)
		st.pdf.SetTextColor(rules.HeaderText.R, rules.HeaderText.G, rules.HeaderText.B)
	} else {
		st.pdf.SetFont(FontSans, "", tableFontSize)
		st.pdf.SetTextColor(0, 0, 0)
	}
}

// placeTable flows a table across pages, breaking only between rows.
// The header row is repeated at the top of every continuation page.
// A single row taller than the printable height is a fatal overflow.
// It returns the page holding the header row.
func (e *LayoutEngine) placeTable(st *layoutState, t TableBlock, rowsByPage map[int][]int) (int, error) {
	m := e.measureTable(st, t)

	var total float64
	for r, h := range m.rowHeights {
		if h > st.geo.PrintableHeight() {
			return 0, fmt.Errorf("%w: table row %d is taller than a page", ErrLayoutOverflow, r)
		}
		total += h
	}
	if total > st.remaining() && total <= st.geo.PrintableHeight() {
		st.newPage()
	}

	drawRow := func(r int, banded bool) {
		x := st.geo.Left
		y := st.pdf.GetY()
		rowH := m.rowHeights[r]
		header := r == 0

		st.pdf.SetDrawColor(0, 0, 0)
		st.pdf.SetLineWidth(t.Rules.GridWidth)
		for c := range t.Rows[r] {
			w := m.colWidths[c]
			switch {
			case header:
				bg := t.Rules.HeaderBackground
				st.pdf.SetFillColor(bg.R, bg.G, bg.B)
				st.pdf.Rect(x, y, w, rowH, "FD")
			case banded:
				bg := t.Rules.BandBackground
				st.pdf.SetFillColor(bg.R, bg.G, bg.B)
				st.pdf.Rect(x, y, w, rowH, "FD")
			default:
				st.pdf.Rect(x, y, w, rowH, "D")
			}

			e.setTableFont(st, header, t.Rules)
			lines := m.cellLines[r][c]
			startY := y + (rowH-float64(len(lines))*tableLeading)/2
			for li, line := range lines {
				st.pdf.SetXY(x+tableCellPadding, startY+float64(li)*tableLeading)
				st.pdf.CellFormat(w-2*tableCellPadding, tableLeading, line, "", 0, alignString(t.Rules.Align), false, 0, "")
			}
			x += w
		}
		st.pdf.SetY(y + rowH)
		st.atTop = false
	}

	appendRow := func(r int) {
		if rowsByPage != nil && r > 0 {
			page := st.pdf.PageNo()
			rowsByPage[page] = append(rowsByPage[page], r)
		}
	}

	if m.rowHeights[0] > st.remaining() {
		st.newPage()
	}
	start := st.pdf.PageNo()
	drawRow(0, false)
	appendRow(0)

	for r := 1; r < len(t.Rows); r++ {
		if m.rowHeights[r] > st.remaining() {
			st.newPage()
			drawRow(0, false) // repeated header on the continuation page
		}
		drawRow(r, r%2 == 1)
		appendRow(r)
	}
	return start, nil
}

// placeImage embeds a chart raster at its declared display size. An
// image wider than the printable area is scaled down proportionally; an
// image taller than the printable height cannot be split and is a fatal
// overflow. Images are horizontally centered. It returns the page the
// image landed on.
func (e *LayoutEngine) placeImage(st *layoutState, img ImageBlock) (int, error) {
	w, h := img.Width, img.Height
	if printW := st.geo.PrintableWidth(); w > printW {
		h *= printW / w
		w = printW
	}
	if h > st.geo.PrintableHeight() {
		return 0, fmt.Errorf("%w: image %q is taller than a page", ErrLayoutOverflow, img.ChartID)
	}
	if h > st.remaining() {
		st.newPage()
	}

	// Registration is keyed on the raster content as well as the chart
	// ID: one raster embedded many times is stored once, while distinct
	// rasters never collide on a shared ID.
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	name := fmt.Sprintf("chart:%s#%08x", img.ChartID, crc32.ChecksumIEEE(img.Image.PNG))
	if !st.registered[name] {
		st.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Image.PNG))
		st.registered[name] = true
	}
	x := st.geo.Left + (st.geo.PrintableWidth()-w)/2
	st.pdf.ImageOptions(name, x, st.pdf.GetY(), w, h, false, opts, 0, "")
	st.pdf.SetY(st.pdf.GetY() + h)
	st.atTop = false
	return st.pdf.PageNo(), nil
}

// placeSpacer consumes vertical space, following the same fit-or-break
// rule as content blocks. It returns the page the space was consumed on.
func (e *LayoutEngine) placeSpacer(st *layoutState, sp Spacer) (int, error) {
	if sp.Height > st.geo.PrintableHeight() {
		return 0, fmt.Errorf("%w: spacer of %.1f pt is taller than a page", ErrLayoutOverflow, sp.Height)
	}
	if sp.Height > st.remaining() {
		st.newPage()
	}
	st.pdf.SetY(st.pdf.GetY() + sp.Height)
	st.atTop = false
	return st.pdf.PageNo(), nil
}
