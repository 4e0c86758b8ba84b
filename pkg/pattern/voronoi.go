package pattern

import (
	"math"

	"github.com/pzsz/voronoi"
)

// borderEps is the tolerance for detecting ring vertices that lie on the
// expanded computation box, which marks a region as unbounded.
const borderEps = 1e-6

// Region is one site's cell in a Diagram. A region is unbounded when the
// true Voronoi cell extends to infinity (its ring was artificially closed
// at the computation box), and degenerate when it has fewer than three
// vertices. Only bounded, non-degenerate regions describe finite cells.
type Region struct {
	Ring    Polygon
	Bounded bool
}

// Finite reports whether the region is a usable finite cell.
func (r Region) Finite() bool {
	return r.Bounded && len(r.Ring) >= 3
}

// Diagram is a Voronoi diagram for a point set. Regions are indexed like
// the input points; a diagram is built fresh from a PointSet and never
// mutated.
type Diagram struct {
	Regions []Region
}

// FiniteRegions returns the raw region polygons of all finite cells.
// The polygons are unclipped and may extend beyond the boundary.
func (d *Diagram) FiniteRegions() []Polygon {
	out := make([]Polygon, 0, len(d.Regions))
	for _, r := range d.Regions {
		if r.Finite() {
			out = append(out, r.Ring)
		}
	}
	return out
}

// BuildDiagram computes the Voronoi diagram of points using Fortune's
// sweep. The computation box is the boundary expanded by its larger side
// on every edge: cells whose ring touches the expanded box stand in for
// unbounded regions and are flagged accordingly, while interior cells are
// exact. Duplicate input points share a single cell; the extra indices
// are left with degenerate regions.
func BuildDiagram(points PointSet, bounds Rect) *Diagram {
	d := &Diagram{Regions: make([]Region, len(points))}
	if len(points) == 0 {
		return d
	}

	margin := math.Max(bounds.Width, bounds.Height)
	xl, xr := -margin, bounds.Width+margin
	yt, yb := -margin, bounds.Height+margin

	// Coincident sites break the sweep line; compute on unique sites only
	// and attribute each cell to the first occurrence.
	sites := make([]voronoi.Vertex, 0, len(points))
	siteIndex := make(map[voronoi.Vertex]int, len(points))
	for i, p := range points {
		v := voronoi.Vertex{X: p.X, Y: p.Y}
		if _, dup := siteIndex[v]; dup {
			continue
		}
		siteIndex[v] = i
		sites = append(sites, v)
	}

	diagram := voronoi.ComputeDiagram(sites, voronoi.NewBBox(xl, xr, yt, yb), true)

	onBorder := func(p Point) bool {
		return math.Abs(p.X-xl) < borderEps || math.Abs(p.X-xr) < borderEps ||
			math.Abs(p.Y-yt) < borderEps || math.Abs(p.Y-yb) < borderEps
	}

	for _, cell := range diagram.Cells {
		idx, ok := siteIndex[cell.Site]
		if !ok {
			continue
		}
		ring := make(Polygon, 0, len(cell.Halfedges))
		bounded := true
		for _, he := range cell.Halfedges {
			start := he.GetStartpoint()
			p := Point{X: start.X, Y: start.Y}
			if onBorder(p) {
				bounded = false
			}
			ring = append(ring, p)
		}
		d.Regions[idx] = Region{Ring: ring, Bounded: bounded}
	}
	return d
}
