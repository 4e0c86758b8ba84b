package pattern

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/lumafab/agpattern/pkg/errors"
)

// Synthesizer produces an initial point set for a configuration. All
// randomness comes from the explicit rng handle; two calls with equal
// configuration and equally seeded generators produce identical output.
type Synthesizer interface {
	// Kind identifies the strategy.
	Kind() Kind

	// Synthesize produces points inside cfg.Boundary. An empty result is
	// not an error; the pipeline degrades to a boundary-only document.
	Synthesize(ctx context.Context, cfg *Config, rng *rand.Rand) (PointSet, error)
}

// sqrtAreaPerPoint is the average nearest-neighbor spacing estimate for n
// points spread over r.
func sqrtAreaPerPoint(r Rect, n int) float64 {
	return math.Sqrt(r.Area() / float64(n))
}

// jitterOffset draws a symmetric uniform offset in ±scale/2 per axis.
func jitterOffset(rng *rand.Rand, scale float64) Point {
	return Point{
		X: (rng.Float64() - 0.5) * scale,
		Y: (rng.Float64() - 0.5) * scale,
	}
}

// JitterGrid synthesizes a rows x cols lattice spanning the boundary
// inclusive of its edges, then displaces each point by a bounded uniform
// random offset. With JitterStrength 0 the exact lattice is reproduced
// regardless of seed. Points may legally leave the boundary here; clipping
// happens later in the pipeline.
type JitterGrid struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Kind returns KindJitterGrid.
func (g *JitterGrid) Kind() Kind { return KindJitterGrid }

func (g *JitterGrid) validate() error {
	if g.Rows < 1 || g.Cols < 1 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"grid dimensions must be at least 1x1, got %dx%d", g.Rows, g.Cols)
	}
	return nil
}

// Synthesize lays out the lattice row by row, bottom to top.
func (g *JitterGrid) Synthesize(ctx context.Context, cfg *Config, rng *rand.Rand) (PointSet, error) {
	xs := linspace(0, cfg.Boundary.Width, g.Cols)
	ys := linspace(0, cfg.Boundary.Height, g.Rows)

	// Jitter magnitude is measured in average cell widths.
	maxJitter := cfg.Boundary.Width / float64(g.Cols) * cfg.JitterStrength

	points := make(PointSet, 0, g.Rows*g.Cols)
	for _, y := range ys {
		for _, x := range xs {
			p := Point{X: x, Y: y}
			if maxJitter > 0 {
				p = p.Add(jitterOffset(rng, maxJitter))
			}
			points = append(points, p)
		}
	}
	return points, nil
}

// linspace returns n evenly spaced samples over [start, stop] inclusive.
// With n == 1 the single sample is start.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}
