package optreport

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/optkit/optreport/internal/assets"
	"github.com/optkit/optreport/internal/yamlutil"
)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger routes the service's progress messages to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		s.cfg.logger = l
	}
}

// WithNow overrides the clock used for the title page's generation
// date. Pin it for reproducible artifacts.
func WithNow(now func() time.Time) Option {
	if now == nil {
		panic("optreport: WithNow requires a non-nil clock")
	}
	return func(s *Service) {
		s.cfg.now = now
	}
}

// Service runs the report pipeline: render the chart rasters, assemble
// the frozen block sequence, then lay it out into the final PDF. The
// pipeline is fully synchronous; each stage completes before the next
// starts.
type Service struct {
	cfg    serviceConfig
	charts *ChartGenerator
	styles StyleCatalog
	layout *LayoutEngine
}

// New creates a Service with default configuration.
func New(opts ...Option) (*Service, error) {
	charts, err := NewChartGenerator()
	if err != nil {
		return nil, err
	}
	s := &Service{
		cfg: serviceConfig{
			logger: log.New(io.Discard),
			now:    time.Now,
		},
		charts: charts,
		styles: NewStyleCatalog(),
		layout: NewLayoutEngine(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// chartCatalog is the YAML shape of the embedded chart data asset.
type chartCatalog struct {
	Charts []ChartSpec `yaml:"charts"`
}

// loadChartSpecs parses the embedded chart sample data.
func loadChartSpecs() ([]ChartSpec, error) {
	raw, err := assets.ChartData()
	if err != nil {
		return nil, err
	}
	var catalog chartCatalog
	if err := yamlutil.Decode(raw, &catalog); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChartData, err)
	}
	if len(catalog.Charts) == 0 {
		return nil, fmt.Errorf("%w: chart data asset is empty", ErrChartData)
	}
	return catalog.Charts, nil
}

// Generate runs the full pipeline and returns the PDF as bytes. Any
// failure aborts the build; there is no partial output.
func (s *Service) Generate() ([]byte, error) {
	specs, err := loadChartSpecs()
	if err != nil {
		return nil, err
	}

	s.cfg.logger.Info("rendering charts", "count", len(specs))
	images, err := s.charts.RenderAll(specs)
	if err != nil {
		return nil, fmt.Errorf("rendering charts: %w", err)
	}

	doc, err := buildReport(A4Geometry(), s.styles, images, s.cfg.now())
	if err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}

	s.cfg.logger.Info("serializing document", "blocks", len(doc.Blocks))
	pdf, err := s.layout.Layout(doc)
	if err != nil {
		return nil, fmt.Errorf("laying out document: %w", err)
	}
	return pdf, nil
}
