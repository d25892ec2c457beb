package optreport

// Notes:
// - loadChartSpecs: tests the embedded chart catalog
// - Generate: full-pipeline test over the real assets; covers artifact
//   shape (pages, embedded images) and byte-for-byte reproducibility
//   under a pinned clock

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// ---------------------------------------------------------------------------
// TestLoadChartSpecs - Embedded Chart Catalog
// ---------------------------------------------------------------------------

func TestLoadChartSpecs(t *testing.T) {
	t.Parallel()

	specs, err := loadChartSpecs()
	if err != nil {
		t.Fatalf("loadChartSpecs() = %v", err)
	}
	if len(specs) != 4 {
		t.Fatalf("catalog holds %d specs, want 4", len(specs))
	}

	byID := map[string]ChartSpec{}
	for _, spec := range specs {
		if err := spec.Validate(); err != nil {
			t.Errorf("spec %s fails validation: %v", spec.ID, err)
		}
		byID[spec.ID] = spec
	}

	board, ok := byID["n_queens"]
	if !ok {
		t.Fatal("catalog has no n_queens spec")
	}
	if board.Kind != ChartKindBoard || board.Board == nil {
		t.Fatalf("n_queens spec = %+v", board)
	}
	if board.Board.Size != 8 {
		t.Errorf("board size = %d, want 8", board.Board.Size)
	}
	wantSolution := []int{0, 4, 7, 5, 2, 6, 1, 3}
	for i, col := range wantSolution {
		if board.Board.Solution[i] != col {
			t.Errorf("solution[%d] = %d, want %d", i, board.Board.Solution[i], col)
		}
	}
	if board.DPI != 300 {
		t.Errorf("board dpi = %d, want 300", board.DPI)
	}

	for _, id := range []string{"efficient_frontier", "solver_comparison", "portfolio_allocation"} {
		if _, ok := byID[id]; !ok {
			t.Errorf("catalog has no %s spec", id)
		}
	}
}

// ---------------------------------------------------------------------------
// TestService_Generate - Full Pipeline
// ---------------------------------------------------------------------------

func TestService_Generate(t *testing.T) {
	if testing.Short() {
		t.Skip("full-resolution chart rendering")
	}
	t.Parallel()

	clock := func() time.Time {
		return time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	}

	var logBuf bytes.Buffer
	svc, err := New(WithNow(clock), WithLogger(log.New(&logBuf)))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	pdf, err := svc.Generate()
	if err != nil {
		t.Fatalf("Generate() = %v", err)
	}

	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Error("artifact does not start with a PDF header")
	}

	// One embedded raster per chart reference in the copy.
	if images := bytes.Count(pdf, []byte("/Subtype /Image")); images != 4 {
		t.Errorf("artifact embeds %d images, want 4", images)
	}

	// The page-tree object also says /Type /Pages, hence the offset.
	pages := bytes.Count(pdf, []byte("/Type /Page")) - 1
	if pages < 10 {
		t.Errorf("artifact has %d pages, want at least 10", pages)
	}

	if !bytes.Contains(logBuf.Bytes(), []byte("rendering charts")) {
		t.Error("logger saw no progress messages")
	}

	// A pinned clock makes the whole artifact reproducible.
	again, err := New(WithNow(clock))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	second, err := again.Generate()
	if err != nil {
		t.Fatalf("second Generate() = %v", err)
	}
	if !bytes.Equal(pdf, second) {
		t.Errorf("artifacts differ across runs (%d vs %d bytes)", len(pdf), len(second))
	}
}

// ---------------------------------------------------------------------------
// TestWithNow - Option Contract
// ---------------------------------------------------------------------------

func TestWithNow_NilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithNow(nil) did not panic")
		}
	}()
	WithNow(nil)
}
