// Package pipeline provides the core pattern generation pipeline.
//
// This package implements the complete synthesize → relax → shape → export
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Synthesize: Generate seed points from the configured strategy
//  2. Shape: Relax, build the Voronoi diagram, clip, scale, and mask cells
//  3. Export: Serialize the drawing into output formats (DXF, SVG)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Config: pattern.Config{
//	        Boundary:  pattern.Rect{Width: 100, Height: 50},
//	        GapMM:     0.5,
//	        Generator: &pattern.JitterGrid{Rows: 10, Cols: 20},
//	    },
//	    Formats: []string{"dxf"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dxf := result.Artifacts["dxf"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lumafab/agpattern/pkg/cache"
	"github.com/lumafab/agpattern/pkg/export"
	"github.com/lumafab/agpattern/pkg/pattern"
)

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Config is the full pattern configuration.
	Config pattern.Config `json:"config"`

	// Formats selects the output formats. Defaults to DXF only.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the artifact cache and regenerates.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Points is the final (relaxed) point set.
	Points pattern.PointSet

	// Cells contains the finished cell polygons in millimeters.
	Cells []pattern.Polygon

	// ConfigHash is the content hash of the configuration.
	ConfigHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	PointCount     int
	CellCount      int
	SynthesizeTime time.Duration
	ShapeTime      time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	ArtifactHit bool // Whether all artifacts came from cache
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent - calling it multiple times has
// the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if err := export.ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset optional fields.
//
// RelaxationSteps is deliberately not defaulted here: zero steps is a
// meaningful setting, so the flag and request layers own that default.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{export.FormatDXF}
	}
	if o.Config.Seed == 0 {
		o.Config.Seed = pattern.DefaultSeed
	}
	if o.Config.Unit == "" {
		o.Config.Unit = pattern.UnitMillimeter
	}
	if o.Config.Text.Enabled && o.Config.Text.HeightMM == 0 {
		o.Config.Text.HeightMM = pattern.DefaultTextHeightMM
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Formats: []string{format},
	}
}
