package pattern

import "context"

// Relax applies steps rounds of Lloyd relaxation to points. Each round
// rebuilds the Voronoi diagram and moves every point with a finite region
// to that region's vertex centroid, clamped into the boundary; points with
// unbounded or degenerate regions keep their position for the round.
//
// steps == 0 returns a copy identical to the input in both coordinates
// and order. The context is checked between rounds; Voronoi construction
// itself is not interruptible.
func Relax(ctx context.Context, points PointSet, bounds Rect, steps int) (PointSet, error) {
	current := points.Clone()
	for i := 0; i < steps; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		diagram := BuildDiagram(current, bounds)
		next := make(PointSet, len(current))
		for j, p := range current {
			region := diagram.Regions[j]
			if !region.Finite() {
				next[j] = p
				continue
			}
			next[j] = bounds.Clamp(region.Ring.Centroid())
		}
		current = next
	}
	return current, nil
}
