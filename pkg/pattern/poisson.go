package pattern

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/lumafab/agpattern/pkg/errors"
)

// neighborReach is how many acceleration-grid cells to scan on each side
// of a candidate when checking the minimum-distance invariant. With cell
// size radius/sqrt(2) a reach of 2 (a 5x5 block) covers every point that
// could violate the radius. Empirical constant from the reference
// implementation; kept configurable rather than derived.
const neighborReach = 2

// PoissonDisc synthesizes blue-noise points with Bridson's algorithm:
// every pair of accepted points is at least Radius apart, and coverage is
// dense enough that no disc of radius 2*Radius fits between them.
type PoissonDisc struct {
	RadiusMM float64 `json:"radius_mm"`
	K        int     `json:"k"` // candidates attempted per active point
}

// Kind returns KindPoissonDisc.
func (g *PoissonDisc) Kind() Kind { return KindPoissonDisc }

func (g *PoissonDisc) validate() error {
	if g.RadiusMM <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "disc radius must be positive, got %g", g.RadiusMM)
	}
	if g.K < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "candidate count must be at least 1, got %d", g.K)
	}
	return nil
}

// Synthesize runs Bridson's algorithm. Termination is unconditional: the
// acceleration grid admits at most one point per cell, bounding the total
// count by the boundary area over RadiusMM squared. The context is checked
// between active-list pops so long runs stay cancellable.
func (g *PoissonDisc) Synthesize(ctx context.Context, cfg *Config, rng *rand.Rand) (PointSet, error) {
	bounds := cfg.Boundary
	cellSize := g.RadiusMM / math.Sqrt2
	gridW := int(math.Ceil(bounds.Width / cellSize))
	gridH := int(math.Ceil(bounds.Height / cellSize))

	// grid maps each cell to the index of its accepted point, or -1.
	grid := make([]int, gridW*gridH)
	for i := range grid {
		grid[i] = -1
	}
	cellOf := func(p Point) (int, int) {
		gx := int(p.X / cellSize)
		gy := int(p.Y / cellSize)
		if gx >= gridW {
			gx = gridW - 1
		}
		if gy >= gridH {
			gy = gridH - 1
		}
		return gx, gy
	}

	var points PointSet
	var active []int

	accept := func(p Point) {
		idx := len(points)
		points = append(points, p)
		active = append(active, idx)
		gx, gy := cellOf(p)
		grid[gy*gridW+gx] = idx
	}

	accept(Point{X: rng.Float64() * bounds.Width, Y: rng.Float64() * bounds.Height})

	for len(active) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// Pop a random active point; swap-remove keeps this O(1).
		ai := rng.IntN(len(active))
		parent := points[active[ai]]
		active[ai] = active[len(active)-1]
		active = active[:len(active)-1]

		for try := 0; try < g.K; try++ {
			theta := rng.Float64() * 2 * math.Pi
			dist := g.RadiusMM * (1 + rng.Float64())
			candidate := Point{
				X: parent.X + dist*math.Cos(theta),
				Y: parent.Y + dist*math.Sin(theta),
			}
			if candidate.X < 0 || candidate.X >= bounds.Width ||
				candidate.Y < 0 || candidate.Y >= bounds.Height {
				continue
			}
			if g.tooClose(candidate, points, grid, gridW, gridH, cellOf) {
				continue
			}
			accept(candidate)
		}
	}
	return points, nil
}

// tooClose scans the 5x5 acceleration-grid block around the candidate for
// an accepted point closer than the disc radius.
func (g *PoissonDisc) tooClose(candidate Point, points PointSet, grid []int, gridW, gridH int, cellOf func(Point) (int, int)) bool {
	gx, gy := cellOf(candidate)
	for y := gy - neighborReach; y <= gy+neighborReach; y++ {
		if y < 0 || y >= gridH {
			continue
		}
		for x := gx - neighborReach; x <= gx+neighborReach; x++ {
			if x < 0 || x >= gridW {
				continue
			}
			if idx := grid[y*gridW+x]; idx >= 0 && points[idx].Dist(candidate) < g.RadiusMM {
				return true
			}
		}
	}
	return false
}
