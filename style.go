package optreport

import "fmt"

// Style name constants for the fixed catalog.
const (
	StyleTitle      = "title"
	StyleHeading    = "heading"
	StyleSubheading = "subheading"
	StyleBody       = "body"
	StyleCode       = "code"
)

// Font family constants. These are PDF core fonts, available without
// embedding.
const (
	FontSans = "Helvetica"
	FontMono = "Courier"
)

// Alignment constants for paragraph styles.
const (
	AlignLeft   = "left"
	AlignCenter = "center"
)

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B int
}

// Report accent colors.
var (
	colorDarkBlue  = RGB{R: 0, G: 0, B: 139}
	colorDarkGreen = RGB{R: 0, G: 100, B: 0}
	colorBlack     = RGB{R: 0, G: 0, B: 0}
	colorLightGrey = RGB{R: 211, G: 211, B: 211}
)

// Style is a named, immutable paragraph style. A Style value is copied on
// lookup; callers never share catalog state.
type Style struct {
	Name        string
	Font        string  // font family (FontSans, FontMono)
	Bold        bool
	Size        float64 // font size in points
	Leading     float64 // line height in points
	Color       RGB
	Align       string  // AlignLeft or AlignCenter
	SpaceBefore float64 // vertical space before the paragraph, points
	SpaceAfter  float64 // vertical space after the paragraph, points
	Indent      float64 // horizontal indent on both sides, points
	Shaded      bool    // draw a tinted band behind the text
	Background  RGB     // band color, used when Shaded is set
}

// StyleCatalog holds the fixed set of named styles. It is built once per
// document build and exposes lookup only; styles are never mutated after
// construction.
type StyleCatalog struct {
	styles map[string]Style
}

// NewStyleCatalog builds the report's five named styles from the base
// style sheet with explicit overrides.
func NewStyleCatalog() StyleCatalog {
	base := Style{
		Font:    FontSans,
		Size:    10,
		Leading: 12,
		Color:   colorBlack,
		Align:   AlignLeft,
	}

	styles := map[string]Style{}
	add := func(s Style) { styles[s.Name] = s }

	title := base
	title.Name = StyleTitle
	title.Size = 24
	title.Leading = 28
	title.Bold = true
	title.Align = AlignCenter
	title.Color = colorDarkBlue
	title.SpaceAfter = 30
	add(title)

	heading := base
	heading.Name = StyleHeading
	heading.Size = 16
	heading.Leading = 19
	heading.Bold = true
	heading.Color = colorDarkBlue
	heading.SpaceBefore = 20
	heading.SpaceAfter = 12
	add(heading)

	subheading := base
	subheading.Name = StyleSubheading
	subheading.Size = 14
	subheading.Leading = 17
	subheading.Bold = true
	subheading.Color = colorDarkGreen
	subheading.SpaceBefore = 12
	subheading.SpaceAfter = 8
	add(subheading)

	body := base
	body.Name = StyleBody
	body.SpaceAfter = 6
	add(body)

	code := base
	code.Name = StyleCode
	code.Font = FontMono
	code.Indent = 20
	code.SpaceBefore = 6
	code.SpaceAfter = 6
	code.Shaded = true
	code.Background = colorLightGrey
	add(code)

	return StyleCatalog{styles: styles}
}

// Lookup returns the style registered under name.
func (c StyleCatalog) Lookup(name string) (Style, error) {
	s, ok := c.styles[name]
	if !ok {
		return Style{}, fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return s, nil
}

// Names returns the registered style names. Order is unspecified.
func (c StyleCatalog) Names() []string {
	names := make([]string, 0, len(c.styles))
	for name := range c.styles {
		names = append(names, name)
	}
	return names
}
