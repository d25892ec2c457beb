package optreport

// Shared test fixtures: fake chart images for builder-level tests and a
// real (tiny) PNG for tests that reach the PDF image codec.

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// fakeChart returns a ChartImage that satisfies the builder's reference
// checks without carrying a decodable raster.
func fakeChart(id string) ChartImage {
	return ChartImage{
		SpecID:   id,
		PNG:      []byte("raster"),
		WidthPx:  100,
		HeightPx: 100,
		DPI:      100,
	}
}

// realChart returns a ChartImage whose raster is a valid PNG, for tests
// that serialize an actual PDF.
func realChart(t *testing.T, id string) ChartImage {
	return realChartSized(t, id, 8)
}

// realChartSized is realChart with a chosen raster side length, so
// tests can produce distinct payloads under one ID.
func realChartSized(t *testing.T, id string, side int) ChartImage {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			img.Set(x, y, color.RGBA{R: 214, G: 39, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture PNG: %v", err)
	}
	return ChartImage{SpecID: id, PNG: buf.Bytes(), WidthPx: side, HeightPx: side, DPI: 72}
}

// testCharts builds a chart map from fake images.
func testCharts(ids ...string) map[string]ChartImage {
	charts := make(map[string]ChartImage, len(ids))
	for _, id := range ids {
		charts[id] = fakeChart(id)
	}
	return charts
}
