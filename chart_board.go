package optreport

import (
	"strconv"

	"github.com/fogleman/gg"
)

// Board figure margins in points, converted to pixels at render time.
const (
	boardMarginLeft   = 26.0
	boardMarginRight  = 12.0
	boardMarginTop    = 44.0
	boardMarginBottom = 30.0
)

// boardPlotRect computes the square plot area for the board, centered in
// the figure after reserving gutters for the title and axis labels.
func boardPlotRect(spec ChartSpec) (x, y, side float64) {
	w := spec.WidthIn * float64(spec.DPI)
	h := spec.HeightIn * float64(spec.DPI)
	left := spec.px(boardMarginLeft)
	right := spec.px(boardMarginRight)
	top := spec.px(boardMarginTop)
	bottom := spec.px(boardMarginBottom)

	side = w - left - right
	if v := h - top - bottom; v < side {
		side = v
	}
	x = left + (w-left-right-side)/2
	y = top + (h-top-bottom-side)/2
	return x, y, side
}

// boardCellCenter returns the pixel center of the cell at (row, col).
// Row 0 is the top rank, column 0 the leftmost file.
func boardCellCenter(spec ChartSpec, row, col int) (float64, float64) {
	x, y, side := boardPlotRect(spec)
	cell := side / float64(spec.Board.Size)
	return x + (float64(col)+0.5)*cell, y + (float64(row)+0.5)*cell
}

// renderBoard draws the N-queens board: an alternating-shade
// checkerboard with one marker per row at the solved column, each
// annotated with the marker glyph.
func (g *ChartGenerator) renderBoard(dc *gg.Context, spec ChartSpec) error {
	d := spec.Board
	n := d.Size
	x0, y0, side := boardPlotRect(spec)
	cell := side / float64(n)

	// Checkerboard shading: even-parity squares stay white, odd-parity
	// squares get a light grey wash.
	dc.SetRGB(0.7, 0.7, 0.7)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if (row+col)%2 != 0 {
				dc.DrawRectangle(x0+float64(col)*cell, y0+float64(row)*cell, cell, cell)
				dc.Fill()
			}
		}
	}

	// Grid lines and frame.
	dc.SetRGB(0.55, 0.55, 0.55)
	dc.SetLineWidth(spec.px(0.6))
	for i := 0; i <= n; i++ {
		offset := float64(i) * cell
		dc.DrawLine(x0, y0+offset, x0+side, y0+offset)
		dc.DrawLine(x0+offset, y0, x0+offset, y0+side)
	}
	dc.Stroke()

	// Markers: filled circle with a dark edge and the glyph inside.
	glyphFace, err := g.face(spec, 16, true)
	if err != nil {
		return err
	}
	for row, col := range d.Solution {
		cx, cy := boardCellCenter(spec, row, col)
		radius := 0.3 * cell

		dc.SetHexColor(boardMarkerColor)
		dc.DrawCircle(cx, cy, radius)
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.SetLineWidth(spec.px(2))
		dc.DrawCircle(cx, cy, radius)
		dc.Stroke()

		dc.SetRGB(1, 1, 1)
		dc.SetFontFace(glyphFace)
		dc.DrawStringAnchored(d.Marker, cx, cy, 0.5, 0.5)
	}

	// Axis labels: file letters below, rank numbers on the left.
	tickFace, err := g.face(spec, 10, false)
	if err != nil {
		return err
	}
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(tickFace)
	for col := 0; col < n; col++ {
		label := string(rune('A' + col))
		dc.DrawStringAnchored(label, x0+(float64(col)+0.5)*cell, y0+side+spec.px(12), 0.5, 0.5)
	}
	for row := 0; row < n; row++ {
		label := strconv.Itoa(row + 1)
		dc.DrawStringAnchored(label, x0-spec.px(12), y0+(float64(row)+0.5)*cell, 0.5, 0.5)
	}

	// Title.
	titleFace, err := g.face(spec, 16, true)
	if err != nil {
		return err
	}
	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(spec.Title, x0+side/2, spec.px(boardMarginTop)/2, 0.5, 0.5)

	return nil
}

// boardMarkerColor is the marker fill. Tests probe rendered pixels for
// this exact color, so keep it in sync with chart_test.go.
const boardMarkerColor = "#D62728"
