package optreport

import (
	"fmt"

	"github.com/fogleman/gg"
)

// plotArea maps data coordinates onto a pixel rectangle. Pixel y grows
// downward, so Y inverts the data axis.
type plotArea struct {
	x0, y0, w, h           float64
	xmin, xmax, ymin, ymax float64
}

func (p plotArea) X(v float64) float64 {
	return p.x0 + (v-p.xmin)/(p.xmax-p.xmin)*p.w
}

func (p plotArea) Y(v float64) float64 {
	return p.y0 + p.h - (v-p.ymin)/(p.ymax-p.ymin)*p.h
}

// pad widens a data range by 5% on both ends, matching the default
// autoscale margins of the original plots.
func pad(min, max float64) (float64, float64) {
	m := 0.05 * (max - min)
	return min - m, max + m
}

// renderFrontier draws the efficient frontier curve with labeled asset
// scatter points.
func (g *ChartGenerator) renderFrontier(dc *gg.Context, spec ChartSpec) error {
	d := spec.Frontier
	w := spec.WidthIn * float64(spec.DPI)
	h := spec.HeightIn * float64(spec.DPI)

	area := plotArea{
		x0: spec.px(56),
		y0: spec.px(40),
		w:  w - spec.px(56) - spec.px(16),
		h:  h - spec.px(40) - spec.px(52),
	}

	// Data extents cover the sampled curve and every asset point.
	risks := linspace(d.RiskMin, d.RiskMax, d.Samples)
	curve := make([]float64, len(risks))
	for i, r := range risks {
		curve[i] = d.Intercept + d.Slope*r + d.Curvature*r*r
	}
	xmin, xmax := risks[0], risks[len(risks)-1]
	ymin, ymax := curve[0], curve[0]
	for _, v := range curve {
		ymin, ymax = min(ymin, v), max(ymax, v)
	}
	for _, a := range d.Assets {
		xmin, xmax = min(xmin, a.Volatility), max(xmax, a.Volatility)
		ymin, ymax = min(ymin, a.Return), max(ymax, a.Return)
	}
	area.xmin, area.xmax = pad(xmin, xmax)
	area.ymin, area.ymax = pad(ymin, ymax)

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

	// Grid and ticks.
	xticks := linspace(area.xmin, area.xmax, 6)
	yticks := linspace(area.ymin, area.ymax, 6)
	dc.SetRGB(0.85, 0.85, 0.85)
	dc.SetLineWidth(spec.px(0.5))
	for _, t := range xticks {
		dc.DrawLine(area.X(t), area.y0, area.X(t), area.y0+area.h)
	}
	for _, t := range yticks {
		dc.DrawLine(area.x0, area.Y(t), area.x0+area.w, area.Y(t))
	}
	dc.Stroke()

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(tickFace)
	for _, t := range xticks {
		dc.DrawStringAnchored(fmt.Sprintf("%.2f", t), area.X(t), area.y0+area.h+spec.px(8), 0.5, 0.5)
	}
	for _, t := range yticks {
		dc.DrawStringAnchored(fmt.Sprintf("%.2f", t), area.x0-spec.px(6), area.Y(t), 1, 0.5)
	}

	// Plot frame.
	dc.SetRGB(0.3, 0.3, 0.3)
	dc.SetLineWidth(spec.px(0.8))
	dc.DrawRectangle(area.x0, area.y0, area.w, area.h)
	dc.Stroke()

	// Frontier curve.
	dc.SetHexColor("#1F77B4")
	dc.SetLineWidth(spec.px(2))
	for i, r := range risks {
		if i == 0 {
			dc.MoveTo(area.X(r), area.Y(curve[i]))
		} else {
			dc.LineTo(area.X(r), area.Y(curve[i]))
		}
	}
	dc.Stroke()

	// Asset scatter with offset annotations.
	dc.SetFontFace(tickFace)
	for _, a := range d.Assets {
		px, py := area.X(a.Volatility), area.Y(a.Return)
		dc.SetHexColor(a.Color)
		dc.DrawCircle(px, py, spec.px(5))
		dc.Fill()
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(a.Name, px+spec.px(5), py-spec.px(5), 0, 1)
	}

	// Legend for the curve, top-left inside the frame.
	lx := area.x0 + spec.px(10)
	ly := area.y0 + spec.px(12)
	dc.SetHexColor("#1F77B4")
	dc.SetLineWidth(spec.px(2))
	dc.DrawLine(lx, ly, lx+spec.px(18), ly)
	dc.Stroke()
	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(tickFace)
	dc.DrawStringAnchored(d.CurveLabel, lx+spec.px(22), ly, 0, 0.5)

	// Axis labels and title.
	dc.SetFontFace(labelFace)
	dc.DrawStringAnchored(d.XLabel, area.x0+area.w/2, area.y0+area.h+spec.px(24), 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(-rightAngle, spec.px(16), area.y0+area.h/2)
	dc.DrawStringAnchored(d.YLabel, spec.px(16), area.y0+area.h/2, 0.5, 0.5)
	dc.Pop()

	dc.SetFontFace(titleFace)
	dc.DrawStringAnchored(spec.Title, area.x0+area.w/2, spec.px(20), 0.5, 0.5)

	return nil
}
