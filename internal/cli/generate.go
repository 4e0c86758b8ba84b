package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumafab/agpattern/pkg/pattern"
	"github.com/lumafab/agpattern/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	generator  string  // synthesis strategy: "jitter", "sunflower", "poisson"
	width      float64 // boundary width in mm
	height     float64 // boundary height in mm
	cellSize   float64 // target cell size in mm; derives the density parameters
	rows       int     // jitter grid rows (ignored when --cell is set)
	cols       int     // jitter grid columns (ignored when --cell is set)
	points     int     // sunflower point count (ignored when --cell is set)
	radius     float64 // poisson minimum distance in mm (ignored when --cell is set)
	gap        float64 // gap between cells in mm
	relax      int     // Lloyd relaxation rounds
	jitter     float64 // jitter strength in cell widths
	text       string  // optional engraved label
	textHeight float64 // label glyph height in mm
	seed       uint64  // random seed
	unit       string  // output unit: "mm" or "um"
	output     string  // output base path (extension added per format)
	noCache    bool    // disable the artifact cache
	refresh    bool    // regenerate even on a cache hit
}

// generateCommand creates the generate command for single patterns.
func (c *CLI) generateCommand() *cobra.Command {
	var formatsStr string
	opts := generateOpts{
		generator:  "jitter",
		width:      100,
		height:     100,
		rows:       10,
		cols:       10,
		points:     100,
		radius:     2,
		relax:      pattern.DefaultRelaxationSteps,
		jitter:     pattern.DefaultJitterStrength,
		textHeight: pattern.DefaultTextHeightMM,
		seed:       pattern.DefaultSeed,
		unit:       string(pattern.UnitMillimeter),
		output:     "pattern",
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a single cell pattern",
		Long: `Generate a single cellular pattern and write it to disk.

The synthesis strategy is selected with --generator. Density is set
either directly (--rows/--cols, --points, --radius) or uniformly via
--cell, which derives the strategy's parameters from a target cell
size in millimeters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			return c.runGenerate(cmd.Context(), &opts, formats)
		},
	}

	cmd.Flags().StringVarP(&opts.generator, "generator", "g", opts.generator, "point generator: jitter (default), sunflower, poisson")
	cmd.Flags().Float64VarP(&opts.width, "width", "W", opts.width, "boundary width in mm")
	cmd.Flags().Float64VarP(&opts.height, "height", "H", opts.height, "boundary height in mm")
	cmd.Flags().Float64Var(&opts.cellSize, "cell", 0, "target cell size in mm (derives density for any generator)")
	cmd.Flags().IntVar(&opts.rows, "rows", opts.rows, "grid rows (jitter)")
	cmd.Flags().IntVar(&opts.cols, "cols", opts.cols, "grid columns (jitter)")
	cmd.Flags().IntVar(&opts.points, "points", opts.points, "point count (sunflower)")
	cmd.Flags().Float64Var(&opts.radius, "radius", opts.radius, "minimum point distance in mm (poisson)")
	cmd.Flags().Float64Var(&opts.gap, "gap", 0, "gap between cells in mm")
	cmd.Flags().IntVar(&opts.relax, "relax", opts.relax, "Lloyd relaxation rounds")
	cmd.Flags().Float64Var(&opts.jitter, "jitter", opts.jitter, "jitter strength in cell widths")
	cmd.Flags().StringVar(&opts.text, "text", "", "engrave a text label into the pattern")
	cmd.Flags().Float64Var(&opts.textHeight, "text-height", opts.textHeight, "label glyph height in mm")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed for reproducibility")
	cmd.Flags().StringVar(&opts.unit, "unit", opts.unit, "output unit: mm (default), um")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dxf (default), svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output base path (extension added per format)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even if cached")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, opts *generateOpts, formats []string) error {
	cfg, err := opts.config()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spin := newSpinnerWithContext(ctx, "Generating pattern...")
	spin.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Config:  cfg,
		Formats: formats,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		spin.StopWithError(fmt.Sprintf("Generation failed: %v", err))
		return err
	}
	spin.Stop()

	paths, err := writeArtifacts(opts.output, formats, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Generated pattern")
	printStats(result.Stats.PointCount, result.Stats.CellCount, result.CacheInfo.ArtifactHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// config assembles the pattern configuration from the flags.
func (o *generateOpts) config() (pattern.Config, error) {
	kind, err := pattern.ParseKind(o.generator)
	if err != nil {
		return pattern.Config{}, err
	}

	cfg := pattern.Config{
		Boundary:        pattern.Rect{Width: o.width, Height: o.height},
		GapMM:           o.gap,
		RelaxationSteps: o.relax,
		JitterStrength:  o.jitter,
		Unit:            pattern.Unit(o.unit),
		Seed:            o.seed,
	}
	if o.text != "" {
		cfg.Text = pattern.TextLabel{Enabled: true, Content: o.text, HeightMM: o.textHeight}
	}

	if o.cellSize > 0 {
		cfg.Generator, err = pattern.DeriveGenerator(kind, cfg.Boundary, o.cellSize)
		return cfg, err
	}

	switch kind {
	case pattern.KindJitterGrid:
		cfg.Generator = &pattern.JitterGrid{Rows: o.rows, Cols: o.cols}
	case pattern.KindSunflower:
		cfg.Generator = &pattern.Sunflower{NumPoints: o.points, C: pattern.DefaultSpiralConstant}
	case pattern.KindPoissonDisc:
		cfg.Generator = &pattern.PoissonDisc{RadiusMM: o.radius, K: pattern.DefaultPoissonCandidates}
	}
	return cfg, nil
}

// writeArtifacts writes one file per format next to the base path and
// returns the written paths.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if dir := filepath.Dir(base); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + "." + format
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
