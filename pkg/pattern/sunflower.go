package pattern

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/lumafab/agpattern/pkg/errors"
)

// goldenRatio is phi, the divisor of the phyllotaxis angle step.
var goldenRatio = (1 + math.Sqrt(5)) / 2

// Sunflower synthesizes points along a Fermat spiral centered in the
// boundary: radius c*sqrt(i), angle 2*pi*i/phi. Candidates outside the
// boundary are discarded; a surplus is uniformly subsampled down to
// NumPoints. Optional jitter uses the average point spacing as its unit
// and clamps displaced points back inside the boundary.
type Sunflower struct {
	NumPoints int     `json:"num_points"`
	C         float64 `json:"c"` // spiral radial constant, mm per sqrt(index)
}

// Kind returns KindSunflower.
func (g *Sunflower) Kind() Kind { return KindSunflower }

func (g *Sunflower) validate() error {
	if g.NumPoints < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "target point count must be at least 1, got %d", g.NumPoints)
	}
	if g.C <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "spiral constant must be positive, got %g", g.C)
	}
	return nil
}

// Synthesize generates spiral candidates until both the target count and
// the boundary-covering radius are exhausted, whichever needs more turns.
func (g *Sunflower) Synthesize(ctx context.Context, cfg *Config, rng *rand.Rand) (PointSet, error) {
	center := cfg.Boundary.Center()

	// Spiral indices needed for the radius to cover the half-diagonal,
	// so corners are reachable even for small targets.
	maxRadius := math.Hypot(center.X, center.Y)
	forRadius := int(math.Pow(maxRadius/g.C, 2)) + 1

	n := g.NumPoints
	if forRadius > n {
		n = forRadius
	}

	points := make(PointSet, 0, g.NumPoints)
	for i := 0; i < n; i++ {
		r := g.C * math.Sqrt(float64(i))
		theta := 2 * math.Pi * float64(i) / goldenRatio
		p := Point{
			X: center.X + r*math.Cos(theta),
			Y: center.Y + r*math.Sin(theta),
		}
		if cfg.Boundary.Contains(p) {
			points = append(points, p)
		}
	}

	if len(points) > g.NumPoints {
		points = subsample(points, g.NumPoints, rng)
	}

	if cfg.JitterStrength > 0 {
		maxJitter := sqrtAreaPerPoint(cfg.Boundary, g.NumPoints) * cfg.JitterStrength
		for i, p := range points {
			points[i] = cfg.Boundary.Clamp(p.Add(jitterOffset(rng, maxJitter)))
		}
	}
	return points, nil
}

// subsample picks n points uniformly without replacement, preserving the
// original ordering of the survivors.
func subsample(points PointSet, n int, rng *rand.Rand) PointSet {
	keep := make([]bool, len(points))
	for _, idx := range rng.Perm(len(points))[:n] {
		keep[idx] = true
	}
	out := make(PointSet, 0, n)
	for i, p := range points {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}
