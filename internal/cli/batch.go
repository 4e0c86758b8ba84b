package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumafab/agpattern/pkg/jobs"
	"github.com/lumafab/agpattern/pkg/pattern"
	"github.com/lumafab/agpattern/pkg/pipeline"
	"github.com/lumafab/agpattern/pkg/storage"
)

// batchOpts holds the command-line flags for the batch command.
type batchOpts struct {
	generator string  // synthesis strategy
	width     float64 // boundary width in mm
	height    float64 // boundary height in mm
	relax     int     // Lloyd relaxation rounds
	jitter    float64 // jitter strength
	text      string  // optional engraved label
	seed      uint64  // random seed
	output    string  // output directory
	jobID     string  // job id for grouping; random when empty
	noCache   bool    // disable the artifact cache
}

// batchCommand creates the batch command for parameter sweeps.
func (c *CLI) batchCommand() *cobra.Command {
	var cellSizesStr, lineWidthsStr, formatsStr string
	opts := batchOpts{
		generator: "jitter",
		width:     100,
		height:    100,
		relax:     pattern.DefaultRelaxationSteps,
		jitter:    pattern.DefaultJitterStrength,
		seed:      pattern.DefaultSeed,
		output:    "out",
	}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate every combination of a parameter grid",
		Long: `Generate the cartesian product of cell sizes and line widths in one
run. Every combination is written into the output directory under a
job-scoped name:

  {job}/{generator}_cell-{size}um_gap-{width}um.{format}

Sizes are given in micrometers. A combination that fails is skipped
with a warning; the batch only fails when no combination succeeds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cellSizes, err := parseIntList(cellSizesStr)
			if err != nil {
				return fmt.Errorf("parse --cell-sizes: %w", err)
			}
			lineWidths, err := parseIntList(lineWidthsStr)
			if err != nil {
				return fmt.Errorf("parse --line-widths: %w", err)
			}
			formats := parseFormats(formatsStr)
			return c.runBatch(cmd.Context(), &opts, cellSizes, lineWidths, formats)
		},
	}

	cmd.Flags().StringVarP(&opts.generator, "generator", "g", opts.generator, "point generator: jitter (default), sunflower, poisson")
	cmd.Flags().Float64VarP(&opts.width, "width", "W", opts.width, "boundary width in mm")
	cmd.Flags().Float64VarP(&opts.height, "height", "H", opts.height, "boundary height in mm")
	cmd.Flags().StringVar(&cellSizesStr, "cell-sizes", "1000", "target cell sizes in um (comma-separated)")
	cmd.Flags().StringVar(&lineWidthsStr, "line-widths", "0", "gap widths in um (comma-separated)")
	cmd.Flags().IntVar(&opts.relax, "relax", opts.relax, "Lloyd relaxation rounds")
	cmd.Flags().Float64Var(&opts.jitter, "jitter", opts.jitter, "jitter strength in cell widths")
	cmd.Flags().StringVar(&opts.text, "text", "", "engrave a text label into every pattern")
	cmd.Flags().Uint64Var(&opts.seed, "seed", opts.seed, "random seed for reproducibility")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): dxf (default), svg (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "output directory")
	cmd.Flags().StringVar(&opts.jobID, "job", "", "job id for grouping outputs (random when empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, opts *batchOpts, cellSizes, lineWidths []int, formats []string) error {
	kind, err := pattern.ParseKind(opts.generator)
	if err != nil {
		return err
	}

	store, err := storage.NewLocalStore(opts.output, "")
	if err != nil {
		return err
	}
	defer store.Close()

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	jobID := opts.jobID
	if jobID == "" {
		jobID = jobs.NewRecord("").ID
	}

	boundary := pattern.Rect{Width: opts.width, Height: opts.height}
	total := len(cellSizes) * len(lineWidths)
	prog := newProgress(c.Logger)
	printInfo("Sweeping %d combinations into %s", total, opts.output)

	written := 0
	for _, cellUM := range cellSizes {
		for _, gapUM := range lineWidths {
			if err := ctx.Err(); err != nil {
				return err
			}
			paths, err := c.runBatchCombination(ctx, runner, store, kind, boundary, opts, jobID, cellUM, gapUM, formats)
			if err != nil {
				printWarning("cell %dum gap %dum failed: %v", cellUM, gapUM, err)
				continue
			}
			for _, p := range paths {
				printFile(p)
			}
			written += len(paths)
		}
	}

	if written == 0 {
		return fmt.Errorf("all %d combinations failed", total)
	}
	prog.done(fmt.Sprintf("Wrote %d files", written))
	printSuccess("Batch %s complete", jobID)
	return nil
}

func (c *CLI) runBatchCombination(ctx context.Context, runner *pipeline.Runner, store storage.Store, kind pattern.Kind, boundary pattern.Rect, opts *batchOpts, jobID string, cellUM, gapUM int, formats []string) ([]string, error) {
	gen, err := pattern.DeriveGenerator(kind, boundary, float64(cellUM)/1000)
	if err != nil {
		return nil, err
	}

	cfg := pattern.Config{
		Boundary:        boundary,
		GapMM:           float64(gapUM) / 1000,
		RelaxationSteps: opts.relax,
		JitterStrength:  opts.jitter,
		Seed:            opts.seed,
		Generator:       gen,
	}
	if opts.text != "" {
		cfg.Text = pattern.TextLabel{Enabled: true, Content: opts.text, HeightMM: pattern.DefaultTextHeightMM}
	}

	result, err := runner.Execute(ctx, pipeline.Options{
		Config:  cfg,
		Formats: formats,
		Logger:  c.Logger,
	})
	if err != nil {
		return nil, err
	}

	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		name := storage.ObjectName(jobID, kind, cellUM, gapUM, format)
		url, err := store.Upload(ctx, name, result.Artifacts[format], storage.ContentTypes[format])
		if err != nil {
			return nil, err
		}
		paths = append(paths, url)
	}
	return paths, nil
}

// parseIntList parses a comma-separated list of integers.
func parseIntList(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", p)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return out, nil
}
