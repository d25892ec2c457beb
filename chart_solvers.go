package optreport

import (
	"fmt"

	"github.com/fogleman/gg"
)

// renderSolvers draws the compound performance figure: a bar chart of
// solve times on the left half, an equal-weight problem-type pie on the
// right half.
func (g *ChartGenerator) renderSolvers(dc *gg.Context, spec ChartSpec) error {
	d := spec.Solvers
	w := spec.WidthIn * float64(spec.DPI)
	h := spec.HeightIn * float64(spec.DPI)

	tickFace, err := g.face(spec, 10, false)
	if err != nil {
		return err
	}
	labelFace, err := g.face(spec, 12, false)
	if err != nil {
		return err
	}
	titleFace, err := g.face(spec, 14, true)
	if err != nil {
		return err
	}

	// Left panel: bar chart.
	area := plotArea{
		x0:   spec.px(56),
		y0:   spec.px(40),
		w:    w/2 - spec.px(56) - spec.px(20),
		h:    h - spec.px(40) - spec.px(44),
		xmin: 0,
		xmax: float64(len(d.Names)),
		ymin: 0,
		ymax: d.YMax,
	}

	// Y ticks and frame.
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(tickFace)
	for _, t := range linspace(0, d.YMax, 6) {
		dc.DrawStringAnchored(fmt.Sprintf("%.1f", t), area.x0-spec.px(6), area.Y(t), 1, 0.5)
	}
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.SetLineWidth(spec.px(0.8))
	dc.DrawRectangle(area.x0, area.y0, area.w, area.h)
	dc.Stroke()

	// Bars with value labels above.
	slot := area.w / float64(len(d.Names))
	barW := 0.6 * slot
	for i, name := range d.Names {
		cx := area.x0 + (float64(i)+0.5)*slot
		top := area.Y(d.Times[i])

		dc.SetHexColor(d.Palette[i])
		dc.DrawRectangle(cx-barW/2, top, barW, area.y0+area.h-top)
		dc.Fill()

		dc.SetRGB(0, 0, 0)
		dc.SetFontFace(tickFace)
		dc.DrawStringAnchored(fmt.Sprintf("%.1fs", d.Times[i]), cx, top-spec.px(6), 0.5, 1)
		dc.DrawStringAnchored(name, cx, area.y0+area.h+spec.px(8), 0.5, 0.5)
	}

	// Y axis label and panel title.
	dc.SetFontFace(labelFace)
	dc.Push()
	dc.RotateAbout(-rightAngle, spec.px(16), area.y0+area.h/2)
	dc.DrawStringAnchored(d.YLabel, spec.px(16), area.y0+area.h/2, 0.5, 0.5)
	dc.Pop()
	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(spec.Title, area.x0+area.w/2, spec.px(20), 0.5, 0.5)

	// Right panel: equal-weight pie of problem types.
	cx := 0.75 * w
	cy := area.y0 + area.h/2
	r := min(w/4, area.h/2) - spec.px(30)

	slices := make([]pieSlice, len(d.PieLabels))
	for i, label := range d.PieLabels {
		slices[i] = pieSlice{
			label:  label,
			weight: 1,
			color:  d.Palette[i%len(d.Palette)],
		}
	}
	drawPie(dc, cx, cy, r, slices, pieOptions{
		labelFace: labelFace,
		pctFace:   tickFace,
		pctFormat: "%.0f%%",
	})

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(d.PieTitle, cx, spec.px(20), 0.5, 0.5)

	return nil
}
