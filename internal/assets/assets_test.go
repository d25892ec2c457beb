package assets

// Notes:
// - ReportCopy/ChartData: tests the embedded assets load and carry the
//   expected content
// - splitFrontMatter: tests delimiter handling

import (
	"bytes"
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestReportCopy - Embedded Narrative
// ---------------------------------------------------------------------------

func TestReportCopy(t *testing.T) {
	t.Parallel()

	meta, body, err := ReportCopy()
	if err != nil {
		t.Fatalf("ReportCopy() = %v", err)
	}

	if !bytes.Contains(meta, []byte("title:")) {
		t.Error("front matter has no title key")
	}
	if !bytes.Contains(meta, []byte("contents:")) {
		t.Error("front matter has no contents key")
	}
	if bytes.Contains(meta, []byte("## ")) {
		t.Error("front matter leaked Markdown content")
	}

	if !bytes.Contains(body, []byte("## 1. Introduction")) {
		t.Error("body has no first section heading")
	}
	if !bytes.Contains(body, []byte("chart://n_queens")) {
		t.Error("body has no board chart reference")
	}
	if bytes.HasPrefix(body, []byte("---")) {
		t.Error("body still starts with a front matter delimiter")
	}
}

// ---------------------------------------------------------------------------
// TestChartData - Embedded Chart Catalog
// ---------------------------------------------------------------------------

func TestChartData(t *testing.T) {
	t.Parallel()

	raw, err := ChartData()
	if err != nil {
		t.Fatalf("ChartData() = %v", err)
	}
	for _, id := range []string{"n_queens", "efficient_frontier", "solver_comparison", "portfolio_allocation"} {
		if !bytes.Contains(raw, []byte("id: "+id)) {
			t.Errorf("chart data has no %s spec", id)
		}
	}
}

// ---------------------------------------------------------------------------
// TestSplitFrontMatter - Delimiter Handling
// ---------------------------------------------------------------------------

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		raw      string
		wantMeta string
		wantBody string
		wantErr  error
	}{
		{
			name:     "meta and body",
			raw:      "---\ntitle: T\n---\nbody text\n",
			wantMeta: "title: T",
			wantBody: "body text\n",
		},
		{
			name:     "empty body",
			raw:      "---\ntitle: T\n---\n",
			wantMeta: "title: T",
			wantBody: "",
		},
		{
			name:    "no opening delimiter",
			raw:     "title: T\n---\nbody\n",
			wantErr: ErrFrontMatter,
		},
		{
			name:    "no closing delimiter",
			raw:     "---\ntitle: T\nbody\n",
			wantErr: ErrFrontMatter,
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: ErrFrontMatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			meta, body, err := splitFrontMatter([]byte(tt.raw))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("splitFrontMatter() = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitFrontMatter() = %v", err)
			}
			if string(meta) != tt.wantMeta {
				t.Errorf("meta = %q, want %q", meta, tt.wantMeta)
			}
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
		})
	}
}
