package optreport

import "fmt"

// Layout units: all geometry is expressed in PostScript points (1/72 inch).
const (
	// PointsPerInch converts inches to points.
	PointsPerInch = 72.0

	// A4 page size in points.
	A4Width  = 595.28
	A4Height = 841.89
)

// Default margins in points, matching the report's fixed geometry.
const (
	DefaultMarginLeft   = 72.0
	DefaultMarginRight  = 72.0
	DefaultMarginTop    = 72.0
	DefaultMarginBottom = 18.0
)

// PageGeometry describes the fixed page size and margins for a document.
// It is fixed for the whole document; there is no per-section override.
type PageGeometry struct {
	Width  float64 // page width in points
	Height float64 // page height in points
	Top    float64 // top margin in points
	Bottom float64 // bottom margin in points
	Left   float64 // left margin in points
	Right  float64 // right margin in points
}

// A4Geometry returns the report's fixed page geometry: A4 portrait with
// 1-inch side and top margins and a 18 pt bottom margin.
func A4Geometry() PageGeometry {
	return PageGeometry{
		Width:  A4Width,
		Height: A4Height,
		Top:    DefaultMarginTop,
		Bottom: DefaultMarginBottom,
		Left:   DefaultMarginLeft,
		Right:  DefaultMarginRight,
	}
}

// PrintableWidth returns the page width minus left and right margins.
func (g PageGeometry) PrintableWidth() float64 {
	return g.Width - g.Left - g.Right
}

// PrintableHeight returns the page height minus top and bottom margins.
func (g PageGeometry) PrintableHeight() float64 {
	return g.Height - g.Top - g.Bottom
}

// Validate checks that the geometry has positive dimensions and a
// non-empty printable area.
func (g PageGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: page size %.2fx%.2f", ErrInvalidGeometry, g.Width, g.Height)
	}
	if g.Top < 0 || g.Bottom < 0 || g.Left < 0 || g.Right < 0 {
		return fmt.Errorf("%w: negative margin", ErrInvalidGeometry)
	}
	if g.PrintableWidth() <= 0 || g.PrintableHeight() <= 0 {
		return fmt.Errorf("%w: margins leave no printable area", ErrInvalidGeometry)
	}
	return nil
}

// Inches converts a length in inches to points.
func Inches(in float64) float64 {
	return in * PointsPerInch
}
