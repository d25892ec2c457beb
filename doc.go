// Package optreport renders a fixed multi-section technical report as a
// single self-contained PDF: narrative copy, tables, and four
// data-driven charts composed in order into one paginated artifact.
//
// # Pipeline
//
// Generation runs in three strictly sequential stages:
//
//  1. Chart rendering: the four fixed chart specs are rasterized to
//     300 DPI PNG buffers (fogleman/gg over the embedded Go fonts).
//  2. Document assembly: the embedded Markdown copy and chart images
//     are converted into an ordered sequence of typed content blocks
//     (paragraph, table, image, spacer, page break) and frozen.
//  3. Layout: the block sequence is flowed across A4 pages in a single
//     pass, splitting overflowing paragraphs between lines and tables
//     between rows, then serialized with go-pdf/fpdf.
//
// # Quick Start
//
//	svc, err := optreport.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf, err := svc.Generate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("report.pdf", pdf, 0o644)
//
// Output is deterministic for a fixed clock: pin the generation date
// with optreport.WithNow to make repeated builds byte-comparable.
//
// All content is compiled in; there is no configuration file, network
// access, or persisted intermediate state.
package optreport
