package optreport

import "errors"

// Sentinel errors for report generation.
var (
	// Chart rendering errors.
	ErrChartRender      = errors.New("chart rendering failed")
	ErrUnknownChartKind = errors.New("unknown chart kind")
	ErrChartData        = errors.New("invalid chart data shape")

	// Style catalog errors.
	ErrStyleNotFound = errors.New("style not found")

	// Document builder errors.
	ErrDocumentFrozen   = errors.New("document is frozen")
	ErrEmptyDocument    = errors.New("document has no content blocks")
	ErrTableShape       = errors.New("invalid table shape")
	ErrChartNotRendered = errors.New("chart image not rendered")
	ErrChartMismatch    = errors.New("chart image does not match declared spec")

	// Layout errors.
	ErrLayoutOverflow  = errors.New("block cannot fit within page bounds")
	ErrInvalidGeometry = errors.New("invalid page geometry")

	// Report copy errors.
	ErrBadChartRef  = errors.New("malformed chart reference")
	ErrReportCopy   = errors.New("invalid report copy")
	ErrUnknownBlock = errors.New("unknown content block kind")
)
