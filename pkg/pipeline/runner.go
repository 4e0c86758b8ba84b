package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lumafab/agpattern/pkg/cache"
	"github.com/lumafab/agpattern/pkg/export"
	"github.com/lumafab/agpattern/pkg/observability"
	"github.com/lumafab/agpattern/pkg/pattern"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// newRNG derives the pipeline's random source from the configured seed.
// Identical seeds reproduce identical patterns across runs and machines.
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Execute runs the complete synthesize → shape → export pipeline with
// artifact caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Compute the config content hash for cache keys and API responses.
	configData, err := json.Marshal(&opts.Config)
	if err != nil {
		return nil, fmt.Errorf("serialize config for cache key: %w", err)
	}
	result.ConfigHash = cache.Hash(configData)

	// Try to serve every requested format from cache.
	if !opts.Refresh {
		if artifacts, hit := r.lookupArtifacts(ctx, result.ConfigHash, opts); hit {
			result.Artifacts = artifacts
			result.CacheInfo.ArtifactHit = true
			r.Logger.Debug("artifact cache hit", "config_hash", result.ConfigHash)
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	// Stage 1: Synthesize
	rng := newRNG(opts.Config.Seed)
	synthStart := time.Now()
	points, err := r.Synthesize(ctx, opts, rng)
	if err != nil {
		return nil, fmt.Errorf("synthesize: %w", err)
	}
	result.Points = points
	result.Stats.PointCount = len(points)
	result.Stats.SynthesizeTime = time.Since(synthStart)

	r.Logger.Info("synthesized points",
		"generator", opts.Config.Generator.Kind(),
		"points", len(points),
		"duration", result.Stats.SynthesizeTime)

	// Stage 2: Shape (relax, tessellate, clip, scale, mask)
	shapeStart := time.Now()
	cells, relaxed, err := r.BuildCells(ctx, opts, points)
	if err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}
	result.Points = relaxed
	result.Cells = cells
	result.Stats.CellCount = len(cells)
	result.Stats.ShapeTime = time.Since(shapeStart)

	r.Logger.Info("shaped cells",
		"cells", len(cells),
		"duration", result.Stats.ShapeTime)

	// Stage 3: Export
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, cells, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	// Cache each format.
	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(result.ConfigHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return result, nil
}

// Synthesize produces the seed point set for the configured generator.
func (r *Runner) Synthesize(ctx context.Context, opts Options, rng *rand.Rand) (pattern.PointSet, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	kind := string(opts.Config.Generator.Kind())

	observability.Pipeline().OnSynthesizeStart(ctx, kind)
	start := time.Now()
	points, err := opts.Config.Generator.Synthesize(ctx, &opts.Config, rng)
	observability.Pipeline().OnSynthesizeComplete(ctx, kind, len(points), time.Since(start), err)
	return points, err
}

// BuildCells turns seed points into finished cell polygons: Lloyd
// relaxation, Voronoi tessellation, boundary clipping, gap scaling, and
// the optional text mask. It returns the cells and the relaxed points.
//
// A failed text mask is recoverable: the pattern ships unmasked with a
// warning rather than failing the whole run.
func (r *Runner) BuildCells(ctx context.Context, opts Options, points pattern.PointSet) ([]pattern.Polygon, pattern.PointSet, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	cfg := &opts.Config

	observability.Pipeline().OnShapeStart(ctx, len(points))
	start := time.Now()

	cells, relaxed, err := r.buildCells(ctx, cfg, points)

	observability.Pipeline().OnShapeComplete(ctx, len(cells), time.Since(start), err)
	return cells, relaxed, err
}

func (r *Runner) buildCells(ctx context.Context, cfg *pattern.Config, points pattern.PointSet) ([]pattern.Polygon, pattern.PointSet, error) {
	if len(points) == 0 {
		// Degenerate but legal: the drawing is boundary-only.
		return nil, points, nil
	}

	observability.Pipeline().OnRelaxStart(ctx, cfg.RelaxationSteps, len(points))
	relaxStart := time.Now()
	relaxed, err := pattern.Relax(ctx, points, cfg.Boundary, cfg.RelaxationSteps)
	observability.Pipeline().OnRelaxComplete(ctx, cfg.RelaxationSteps, time.Since(relaxStart), err)
	if err != nil {
		return nil, nil, err
	}

	diagram := pattern.BuildDiagram(relaxed, cfg.Boundary)
	regions := diagram.FiniteRegions()

	cells := pattern.Shape(regions, cfg.Boundary, cfg.GapScale(len(relaxed)))

	if cfg.Text.Enabled && cfg.Text.Content != "" {
		masked, err := pattern.MaskText(cells, cfg.Boundary, cfg.Text)
		if err != nil {
			r.Logger.Warn("text mask failed, continuing without label",
				"text", cfg.Text.Content, "err", err)
		} else {
			cells = masked
		}
	}

	return cells, relaxed, nil
}

// Render serializes finished cells into every requested format.
func (r *Runner) Render(ctx context.Context, cells []pattern.Polygon, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	observability.Pipeline().OnExportStart(ctx, opts.Formats)
	start := time.Now()

	drawing := export.Drawing{
		Boundary: opts.Config.Boundary,
		Cells:    cells,
		Unit:     opts.Config.Unit,
	}
	artifacts, err := export.Render(drawing, opts.Formats)

	observability.Pipeline().OnExportComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// lookupArtifacts returns cached artifacts for every requested format, or
// reports a miss if any format is absent.
func (r *Runner) lookupArtifacts(ctx context.Context, configHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(configHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return nil, false
		}
		artifacts[format] = data
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return artifacts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
