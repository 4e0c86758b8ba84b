package pattern

import "math"

// Point is a location in the plane, in millimeters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// PointSet is an ordered sequence of points. Each pipeline stage consumes
// one set and produces a fresh one; sets are never shared between stages.
type PointSet []Point

// Clone returns an independent copy of the set.
func (s PointSet) Clone() PointSet {
	out := make(PointSet, len(s))
	copy(out, s)
	return out
}

// Rect is the boundary rectangle with origin at (0,0).
// Both dimensions are strictly positive for a valid configuration.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns Width * Height.
func (r Rect) Area() float64 { return r.Width * r.Height }

// Center returns the rectangle's midpoint.
func (r Rect) Center() Point { return Point{r.Width / 2, r.Height / 2} }

// Diagonal returns the length of the rectangle's diagonal.
func (r Rect) Diagonal() float64 { return math.Hypot(r.Width, r.Height) }

// Contains reports whether p lies inside the closed rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= 0 && p.X <= r.Width && p.Y >= 0 && p.Y <= r.Height
}

// Clamp returns p with each coordinate clamped into the rectangle.
func (r Rect) Clamp(p Point) Point {
	return Point{
		X: math.Min(math.Max(p.X, 0), r.Width),
		Y: math.Min(math.Max(p.Y, 0), r.Height),
	}
}

// Polygon is a closed ring of vertices. The closing edge from the last
// vertex back to the first is implicit; a valid ring has at least 3
// distinct vertices.
type Polygon []Point

// Centroid returns the arithmetic mean of the ring's vertices.
// This is the centroid definition used by Lloyd relaxation; it differs
// from the area centroid for irregular rings but converges to the same
// fixed points in practice.
func (p Polygon) Centroid() Point {
	if len(p) == 0 {
		return Point{}
	}
	var c Point
	for _, v := range p {
		c.X += v.X
		c.Y += v.Y
	}
	c.X /= float64(len(p))
	c.Y /= float64(len(p))
	return c
}

// Area returns the absolute area of the ring (shoelace formula).
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// SignedArea returns the shoelace area of the ring, positive for
// counterclockwise winding.
func (p Polygon) SignedArea() float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	for i, v := range p {
		w := p[(i+1)%len(p)]
		sum += v.X*w.Y - w.X*v.Y
	}
	return sum / 2
}

// Oriented returns the ring with the requested winding, reversing the
// vertex order when necessary.
func (p Polygon) Oriented(ccw bool) Polygon {
	if (p.SignedArea() >= 0) == ccw {
		return p
	}
	out := make(Polygon, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// ContainsPoint reports whether pt lies inside the ring (ray casting).
// Points exactly on an edge are unspecified.
func (p Polygon) ContainsPoint(pt Point) bool {
	inside := false
	for i, v := range p {
		w := p[(i+1)%len(p)]
		if (v.Y > pt.Y) != (w.Y > pt.Y) &&
			pt.X < v.X+(w.X-v.X)*(pt.Y-v.Y)/(w.Y-v.Y) {
			inside = !inside
		}
	}
	return inside
}

// ScaleAbout returns a copy of the ring scaled uniformly about center.
func (p Polygon) ScaleAbout(center Point, factor float64) Polygon {
	out := make(Polygon, len(p))
	for i, v := range p {
		out[i] = Point{
			X: center.X + (v.X-center.X)*factor,
			Y: center.Y + (v.Y-center.Y)*factor,
		}
	}
	return out
}
