package optreport

import (
	"github.com/fogleman/gg"
)

// renderAllocation draws the portfolio allocation pie: one wedge per
// sector, percentage labels in contrasting white inside each wedge and
// sector names outside.
func (g *ChartGenerator) renderAllocation(dc *gg.Context, spec ChartSpec) error {
	d := spec.Allocation
	w := spec.WidthIn * float64(spec.DPI)
	h := spec.HeightIn * float64(spec.DPI)

	labelFace, err := g.face(spec, 12, false)
	if err != nil {
		return err
	}
	pctFace, err := g.face(spec, 11, true)
	if err != nil {
		return err
	}
	titleFace, err := g.face(spec, 16, true)
	if err != nil {
		return err
	}

	cx, cy := w/2, h/2+spec.px(10)
	r := min(w, h)/2 - spec.px(60)

	slices := make([]pieSlice, len(d.Sectors))
	for i, sector := range d.Sectors {
		slices[i] = pieSlice{
			label:  sector,
			weight: d.Weights[i],
			color:  d.Palette[i],
		}
	}
	drawPie(dc, cx, cy, r, slices, pieOptions{
		labelFace:   labelFace,
		pctFace:     pctFace,
		pctFormat:   "%.1f%%",
		pctContrast: true,
	})

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(spec.Title, w/2, spec.px(22), 0.5, 0.5)

	return nil
}
