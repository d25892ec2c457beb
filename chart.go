package optreport

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// ChartKind selects one of the four fixed chart renderers.
type ChartKind string

// Chart kinds.
const (
	ChartKindBoard    ChartKind = "board"    // N-queens board visualization
	ChartKindFrontier ChartKind = "frontier" // efficient frontier plot
	ChartKindSolvers  ChartKind = "solvers"  // solver comparison (bar + pie)
	ChartKindPie      ChartKind = "pie"      // allocation pie chart
)

// ChartSpec is the fixed data and rendering parameters for one chart.
// Exactly one of the data fields is set, matching Kind.
type ChartSpec struct {
	ID       string    `yaml:"id"`
	Kind     ChartKind `yaml:"kind"`
	Title    string    `yaml:"title"`
	WidthIn  float64   `yaml:"width_in"`  // figure width in inches
	HeightIn float64   `yaml:"height_in"` // figure height in inches
	DPI      int       `yaml:"dpi"`

	Board      *BoardData      `yaml:"board"`
	Frontier   *FrontierData   `yaml:"frontier"`
	Solvers    *SolverData     `yaml:"solvers"`
	Allocation *AllocationData `yaml:"allocation"`
}

// BoardData describes the N-queens board visualization: one marker per
// row, at the column given by Solution.
type BoardData struct {
	Size     int    `yaml:"size"`
	Solution []int  `yaml:"solution"` // Solution[row] = column
	Marker   string `yaml:"marker"`   // glyph drawn on each marker
}

// FrontierAsset is one named scatter point on the frontier plot.
type FrontierAsset struct {
	Name       string  `yaml:"name"`
	Return     float64 `yaml:"return"`
	Volatility float64 `yaml:"volatility"`
	Color      string  `yaml:"color"` // hex
}

// FrontierData describes the efficient frontier plot: a quadratic curve
// r -> Intercept + Slope*r + Curvature*r^2 sampled over the risk range,
// overlaid with labeled asset scatter points.
type FrontierData struct {
	RiskMin    float64         `yaml:"risk_min"`
	RiskMax    float64         `yaml:"risk_max"`
	Samples    int             `yaml:"samples"`
	Intercept  float64         `yaml:"intercept"`
	Slope      float64         `yaml:"slope"`
	Curvature  float64         `yaml:"curvature"`
	CurveLabel string          `yaml:"curve_label"`
	XLabel     string          `yaml:"x_label"`
	YLabel     string          `yaml:"y_label"`
	Assets     []FrontierAsset `yaml:"assets"`
}

// SolverData describes the compound solver comparison chart: a bar chart
// of solve times next to an equal-weight pie of problem types.
type SolverData struct {
	Names     []string  `yaml:"names"`
	Times     []float64 `yaml:"times"` // seconds, one per name
	YMax      float64   `yaml:"y_max"`
	YLabel    string    `yaml:"y_label"`
	PieTitle  string    `yaml:"pie_title"`
	PieLabels []string  `yaml:"pie_labels"`
	Palette   []string  `yaml:"palette"` // hex, one per name
}

// AllocationData describes the portfolio allocation pie chart.
type AllocationData struct {
	Sectors []string  `yaml:"sectors"`
	Weights []float64 `yaml:"weights"` // percentages
	Palette []string  `yaml:"palette"` // hex, one per sector
}

// Validate checks that the spec carries the data its kind requires and
// that the data shapes are consistent.
func (s ChartSpec) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: spec has no id", ErrChartData)
	}
	if s.WidthIn <= 0 || s.HeightIn <= 0 || s.DPI <= 0 {
		return fmt.Errorf("%w: %s: non-positive figure size or resolution", ErrChartData, s.ID)
	}
	switch s.Kind {
	case ChartKindBoard:
		d := s.Board
		if d == nil {
			return fmt.Errorf("%w: %s: missing board data", ErrChartData, s.ID)
		}
		if d.Size <= 0 || len(d.Solution) != d.Size {
			return fmt.Errorf("%w: %s: board size %d with %d solution entries", ErrChartData, s.ID, d.Size, len(d.Solution))
		}
		for row, col := range d.Solution {
			if col < 0 || col >= d.Size {
				return fmt.Errorf("%w: %s: row %d places marker at column %d", ErrChartData, s.ID, row, col)
			}
		}
	case ChartKindFrontier:
		d := s.Frontier
		if d == nil {
			return fmt.Errorf("%w: %s: missing frontier data", ErrChartData, s.ID)
		}
		if d.Samples < 2 || d.RiskMax <= d.RiskMin {
			return fmt.Errorf("%w: %s: degenerate risk range", ErrChartData, s.ID)
		}
		if len(d.Assets) == 0 {
			return fmt.Errorf("%w: %s: no assets", ErrChartData, s.ID)
		}
	case ChartKindSolvers:
		d := s.Solvers
		if d == nil {
			return fmt.Errorf("%w: %s: missing solver data", ErrChartData, s.ID)
		}
		if len(d.Names) == 0 || len(d.Names) != len(d.Times) || len(d.Names) != len(d.Palette) {
			return fmt.Errorf("%w: %s: names/times/palette lengths differ", ErrChartData, s.ID)
		}
		if len(d.PieLabels) == 0 || d.YMax <= 0 {
			return fmt.Errorf("%w: %s: missing pie labels or y range", ErrChartData, s.ID)
		}
	case ChartKindPie:
		d := s.Allocation
		if d == nil {
			return fmt.Errorf("%w: %s: missing allocation data", ErrChartData, s.ID)
		}
		if len(d.Sectors) == 0 || len(d.Sectors) != len(d.Weights) || len(d.Sectors) != len(d.Palette) {
			return fmt.Errorf("%w: %s: sectors/weights/palette lengths differ", ErrChartData, s.ID)
		}
		var sum float64
		for i, w := range d.Weights {
			if w < 0 {
				return fmt.Errorf("%w: %s: sector %d has a negative weight", ErrChartData, s.ID, i)
			}
			sum += w
		}
		if sum <= 0 {
			return fmt.Errorf("%w: %s: weights sum to zero", ErrChartData, s.ID)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChartKind, s.Kind)
	}
	return nil
}

// ChartImage is the rendered output of one ChartSpec: a PNG buffer plus
// its pixel dimensions and resolution. It is never mutated after
// creation.
type ChartImage struct {
	SpecID   string
	PNG      []byte
	WidthPx  int
	HeightPx int
	DPI      int
}

// ChartGenerator renders ChartSpecs into raster images. Rendering is
// deterministic: two invocations with an identical spec produce
// byte-identical PNG output. The fonts are the embedded Go fonts, so no
// system font lookup is involved.
type ChartGenerator struct {
	regular *sfnt.Font
	bold    *sfnt.Font
}

// NewChartGenerator parses the embedded fonts and returns a generator.
func NewChartGenerator() (*ChartGenerator, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing regular font: %v", ErrChartRender, err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing bold font: %v", ErrChartRender, err)
	}
	return &ChartGenerator{regular: regular, bold: bold}, nil
}

// Render produces the raster image for spec. Any failure is fatal to the
// build; charts are not optional content.
func (g *ChartGenerator) Render(spec ChartSpec) (ChartImage, error) {
	if err := spec.Validate(); err != nil {
		return ChartImage{}, err
	}

	w := int(math.Round(spec.WidthIn * float64(spec.DPI)))
	h := int(math.Round(spec.HeightIn * float64(spec.DPI)))
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	var err error
	switch spec.Kind {
	case ChartKindBoard:
		err = g.renderBoard(dc, spec)
	case ChartKindFrontier:
		err = g.renderFrontier(dc, spec)
	case ChartKindSolvers:
		err = g.renderSolvers(dc, spec)
	case ChartKindPie:
		err = g.renderAllocation(dc, spec)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownChartKind, spec.Kind)
	}
	if err != nil {
		return ChartImage{}, err
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return ChartImage{}, fmt.Errorf("%w: encoding %s: %v", ErrChartRender, spec.ID, err)
	}
	return ChartImage{
		SpecID:   spec.ID,
		PNG:      buf.Bytes(),
		WidthPx:  w,
		HeightPx: h,
		DPI:      spec.DPI,
	}, nil
}

// RenderAll renders every spec and returns the images keyed by spec ID.
func (g *ChartGenerator) RenderAll(specs []ChartSpec) (map[string]ChartImage, error) {
	images := make(map[string]ChartImage, len(specs))
	for _, spec := range specs {
		img, err := g.Render(spec)
		if err != nil {
			return nil, err
		}
		images[spec.ID] = img
	}
	return images, nil
}

// face builds a font face sized in points at the spec's resolution.
func (g *ChartGenerator) face(spec ChartSpec, sizePt float64, bold bool) (font.Face, error) {
	src := g.regular
	if bold {
		src = g.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    sizePt,
		DPI:     float64(spec.DPI),
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: building %gpt face: %v", ErrChartRender, sizePt, err)
	}
	return face, nil
}

// rightAngle is a quarter turn in radians, used for rotated axis labels.
const rightAngle = math.Pi / 2

// px converts a length in points to pixels at the spec's resolution.
func (s ChartSpec) px(pt float64) float64 {
	return pt * float64(s.DPI) / PointsPerInch
}

// linspace returns n evenly spaced values from min to max inclusive.
func linspace(min, max float64, n int) []float64 {
	vals := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range vals {
		vals[i] = min + float64(i)*step
	}
	vals[n-1] = max
	return vals
}

// pieSlice is one wedge of a pie chart.
type pieSlice struct {
	label  string
	weight float64
	color  string // hex
}

// pieOptions controls pie chart text placement.
type pieOptions struct {
	labelFace   font.Face // sector labels outside the wedges
	pctFace     font.Face // percentage labels inside the wedges
	pctFormat   string    // e.g. "%.0f%%" or "%.1f%%"
	pctContrast bool      // white percentage text instead of black
}

// drawPie draws a pie chart centered at (cx, cy) with radius r. Wedges
// start at twelve o'clock and advance clockwise, each labeled outside at
// its mid-angle with its percentage rendered inside.
func drawPie(dc *gg.Context, cx, cy, r float64, slices []pieSlice, opts pieOptions) {
	var total float64
	for _, s := range slices {
		total += s.weight
	}

	angle := -math.Pi / 2
	for _, s := range slices {
		sweep := 2 * math.Pi * s.weight / total

		dc.SetHexColor(s.color)
		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, r, angle, angle+sweep)
		dc.ClosePath()
		dc.Fill()

		mid := angle + sweep/2

		// Percentage inside the wedge.
		if opts.pctContrast {
			dc.SetRGB(1, 1, 1)
		} else {
			dc.SetRGB(0, 0, 0)
		}
		dc.SetFontFace(opts.pctFace)
		pct := fmt.Sprintf(opts.pctFormat, 100*s.weight/total)
		dc.DrawStringAnchored(pct, cx+0.6*r*math.Cos(mid), cy+0.6*r*math.Sin(mid), 0.5, 0.5)

		// Sector label outside the wedge.
		dc.SetRGB(0, 0, 0)
		dc.SetFontFace(opts.labelFace)
		lx := cx + 1.12*r*math.Cos(mid)
		ly := cy + 1.12*r*math.Sin(mid)
		ax := 0.5 - 0.5*math.Cos(mid) // anchor away from the pie
		dc.DrawStringAnchored(s.label, lx, ly, ax, 0.5)

		angle += sweep
	}
}
