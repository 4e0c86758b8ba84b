package pattern

import (
	"github.com/ctessum/geom"
)

// minFragmentArea filters out sliver rings produced by clipping nearly
// tangent region edges against the boundary.
const minFragmentArea = 1e-9

// Shape clips raw Voronoi region polygons to the boundary rectangle and
// shrinks each resulting fragment about its own centroid by scale.
// A region may clip into zero, one, or several fragments; all are kept.
// scale == 1 leaves the clipped fragments untouched.
func Shape(regions []Polygon, bounds Rect, scale float64) []Polygon {
	clipRect := bounds.geomPolygon()

	cells := make([]Polygon, 0, len(regions))
	for _, region := range regions {
		clipped := toGeomPolygon(region.Oriented(true)).Intersection(clipRect)
		for _, fragment := range fromGeomPolygonal(clipped) {
			if scale != 1 {
				center := toGeomPolygon(fragment).Centroid()
				fragment = fragment.ScaleAbout(Point{X: center.X, Y: center.Y}, scale)
			}
			cells = append(cells, fragment)
		}
	}
	return cells
}

// geomPolygon returns the rectangle as a counterclockwise boolean operand.
func (r Rect) geomPolygon() geom.Polygon {
	return geom.Polygon{{
		{X: 0, Y: 0},
		{X: r.Width, Y: 0},
		{X: r.Width, Y: r.Height},
		{X: 0, Y: r.Height},
	}}
}

// toGeomPolygon converts rings into a polygon-boolean operand. Multiple
// rings form one polygon with holes (ring nesting decides containment).
func toGeomPolygon(rings ...Polygon) geom.Polygon {
	gp := make(geom.Polygon, 0, len(rings))
	for _, ring := range rings {
		path := make([]geom.Point, len(ring))
		for i, p := range ring {
			path[i] = geom.Point{X: p.X, Y: p.Y}
		}
		gp = append(gp, path)
	}
	return gp
}

// fromGeomPolygonal extracts the usable rings of a boolean result as flat
// closed contours (a hole ring becomes its own contour, which is what the
// cut-path exporters need). The repeated closing vertex polyclip emits is
// stripped; rings with fewer than three distinct vertices or vanishing
// area are dropped.
func fromGeomPolygonal(g geom.Polygonal) []Polygon {
	if g == nil {
		return nil
	}
	var out []Polygon
	for _, gp := range g.Polygons() {
		for _, path := range gp {
			ring := make(Polygon, 0, len(path))
			for _, p := range path {
				ring = append(ring, Point{X: p.X, Y: p.Y})
			}
			if n := len(ring); n > 1 && ring[0] == ring[n-1] {
				ring = ring[:n-1]
			}
			if len(ring) < 3 || ring.Area() < minFragmentArea {
				continue
			}
			out = append(out, ring)
		}
	}
	return out
}
