package optreport

// Notes:
// - Convert: tests the mapping from Markdown constructs to content
//   blocks (headings, lists, code fences, breaks, tables, chart images)
// - convertChartImage: tests chart:// reference parsing and failures

import (
	"errors"
	"strings"
	"testing"
)

// convert runs the Markdown converter over source with the given chart
// map and returns the builder's frozen document.
func convert(t *testing.T, source string, charts map[string]ChartImage) Document {
	t.Helper()

	b := NewBuilder(A4Geometry(), NewStyleCatalog(), charts)
	if err := newMarkdownConverter().Convert([]byte(source), b); err != nil {
		t.Fatalf("Convert() = %v", err)
	}
	doc, err := b.Freeze()
	if err != nil {
		t.Fatalf("Freeze() = %v", err)
	}
	return doc
}

// ---------------------------------------------------------------------------
// TestMarkdownConverter_Headings - Style Mapping by Level
// ---------------------------------------------------------------------------

func TestMarkdownConverter_Headings(t *testing.T) {
	t.Parallel()

	doc := convert(t, "# Top\n\n## Section\n\n### Detail\n\n#### Deeper\n", nil)

	want := []struct {
		text  string
		style string
	}{
		{text: "Top", style: StyleTitle},
		{text: "Section", style: StyleHeading},
		{text: "Detail", style: StyleSubheading},
		{text: "Deeper", style: StyleSubheading},
	}
	if len(doc.Blocks) != len(want) {
		t.Fatalf("got %d blocks, want %d", len(doc.Blocks), len(want))
	}
	for i, w := range want {
		p, ok := doc.Blocks[i].(Paragraph)
		if !ok {
			t.Fatalf("block %d is %T, want Paragraph", i, doc.Blocks[i])
		}
		if p.Text != w.text || p.Style != w.style {
			t.Errorf("block %d = %q/%q, want %q/%q", i, p.Text, p.Style, w.text, w.style)
		}
	}
}

// ---------------------------------------------------------------------------
// TestMarkdownConverter_Paragraphs - Text and Inline Markup
// ---------------------------------------------------------------------------

func TestMarkdownConverter_Paragraphs(t *testing.T) {
	t.Parallel()

	source := "Some **bold** and `inline` text\nacross two source lines.\n"
	doc := convert(t, source, nil)

	if len(doc.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(doc.Blocks))
	}
	p := doc.Blocks[0].(Paragraph)
	if p.Style != StyleBody {
		t.Errorf("style = %q, want %q", p.Style, StyleBody)
	}
	if p.Text != "Some bold and inline text across two source lines." {
		t.Errorf("text = %q", p.Text)
	}
}

func TestMarkdownConverter_Lists(t *testing.T) {
	t.Parallel()

	doc := convert(t, "- first\n- second\n- third\n", nil)

	if len(doc.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(doc.Blocks))
	}
	for i, item := range []string{"first", "second", "third"} {
		p := doc.Blocks[i].(Paragraph)
		if p.Text != bulletGlyph+item {
			t.Errorf("item %d = %q, want %q", i, p.Text, bulletGlyph+item)
		}
		if p.Style != StyleBody {
			t.Errorf("item %d style = %q, want %q", i, p.Style, StyleBody)
		}
	}
}

func TestMarkdownConverter_CodeFence(t *testing.T) {
	t.Parallel()

	source := "```\nx = solve(n=8)\nprint(x)\n```\n"
	doc := convert(t, source, nil)

	if len(doc.Blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(doc.Blocks))
	}
	p := doc.Blocks[0].(Paragraph)
	if p.Style != StyleCode {
		t.Errorf("style = %q, want %q", p.Style, StyleCode)
	}
	if p.Text != "x = solve(n=8)\nprint(x)" {
		t.Errorf("code text = %q, newlines must survive", p.Text)
	}
}

func TestMarkdownConverter_ThematicBreak(t *testing.T) {
	t.Parallel()

	doc := convert(t, "before\n\n---\n\nafter\n", nil)

	if len(doc.Blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(doc.Blocks))
	}
	if _, ok := doc.Blocks[1].(PageBreak); !ok {
		t.Fatalf("block 1 is %T, want PageBreak", doc.Blocks[1])
	}
}

// ---------------------------------------------------------------------------
// TestMarkdownConverter_Tables - GFM Tables
// ---------------------------------------------------------------------------

func TestMarkdownConverter_Table(t *testing.T) {
	t.Parallel()

	source := strings.Join([]string{
		"| Solver | Type |",
		"| ------ | ---- |",
		"| Z3     | CSP  |",
		"| HiGHS  | LP   |",
		"",
	}, "\n")
	doc := convert(t, source, nil)

	if len(doc.Blocks) != 2 {
		t.Fatalf("got %d blocks, want table plus spacer", len(doc.Blocks))
	}
	table, ok := doc.Blocks[0].(TableBlock)
	if !ok {
		t.Fatalf("block 0 is %T, want TableBlock", doc.Blocks[0])
	}
	wantRows := [][]string{{"Solver", "Type"}, {"Z3", "CSP"}, {"HiGHS", "LP"}}
	if len(table.Rows) != len(wantRows) {
		t.Fatalf("got %d rows, want %d", len(table.Rows), len(wantRows))
	}
	for r, row := range wantRows {
		for c, cell := range row {
			if table.Rows[r][c] != cell {
				t.Errorf("cell (%d,%d) = %q, want %q", r, c, table.Rows[r][c], cell)
			}
		}
	}
	if table.Rules != DefaultTableRules() {
		t.Errorf("table rules = %+v, want defaults", table.Rules)
	}

	spacer, ok := doc.Blocks[1].(Spacer)
	if !ok || spacer.Height != embedSpacing {
		t.Errorf("block 1 = %#v, want %v pt spacer", doc.Blocks[1], embedSpacing)
	}
}

// ---------------------------------------------------------------------------
// TestMarkdownConverter_ChartImages - chart:// References
// ---------------------------------------------------------------------------

func TestMarkdownConverter_ChartImage(t *testing.T) {
	t.Parallel()

	doc := convert(t, "![Board](chart://board?w=4&h=3)\n", testCharts("board"))

	if len(doc.Blocks) != 2 {
		t.Fatalf("got %d blocks, want image plus spacer", len(doc.Blocks))
	}
	img, ok := doc.Blocks[0].(ImageBlock)
	if !ok {
		t.Fatalf("block 0 is %T, want ImageBlock", doc.Blocks[0])
	}
	if img.ChartID != "board" {
		t.Errorf("ChartID = %q, want board", img.ChartID)
	}
	if img.Width != 288 || img.Height != 216 {
		t.Errorf("display size = %vx%v pt, want 288x216", img.Width, img.Height)
	}
	if _, ok := doc.Blocks[1].(Spacer); !ok {
		t.Errorf("block 1 is %T, want Spacer", doc.Blocks[1])
	}
}

func TestMarkdownConverter_ChartImage_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{
			name:    "http scheme",
			source:  "![x](http://example.com/a.png)\n",
			wantErr: ErrBadChartRef,
		},
		{
			name:    "missing dimensions",
			source:  "![x](chart://board)\n",
			wantErr: ErrBadChartRef,
		},
		{
			name:    "non-numeric width",
			source:  "![x](chart://board?w=wide&h=3)\n",
			wantErr: ErrBadChartRef,
		},
		{
			name:    "zero height",
			source:  "![x](chart://board?w=4&h=0)\n",
			wantErr: ErrBadChartRef,
		},
		{
			name:    "unrendered chart",
			source:  "![x](chart://mystery?w=4&h=3)\n",
			wantErr: ErrChartNotRendered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b := NewBuilder(A4Geometry(), NewStyleCatalog(), testCharts("board"))
			err := newMarkdownConverter().Convert([]byte(tt.source), b)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Convert() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
