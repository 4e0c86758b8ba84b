package pattern

import (
	"math"

	"github.com/ctessum/geom"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/lumafab/agpattern/pkg/errors"
	"github.com/lumafab/agpattern/pkg/fonts"
)

// curveSteps is the number of line segments a quadratic or cubic glyph
// curve is flattened into. At label sizes of a few millimeters the chord
// error is far below manufacturing tolerance.
const curveSteps = 8

// MaskText subtracts the outline silhouette of label.Content from the
// cell polygons. Every failure it can encounter (missing glyph, outline
// produced no rings, font parse error) is recoverable: the caller should
// log a warning and continue with the unmasked cells. MaskText never
// panics the pipeline.
func MaskText(cells []Polygon, bounds Rect, label TextLabel) ([]Polygon, error) {
	rings, err := TextOutlines(label.Content, label.HeightMM, bounds.Center())
	if err != nil {
		return nil, err
	}

	// All rings go into a single boolean operand so letter counters
	// ('O', 'a', ...) nest as holes and survive the subtraction.
	mask := maskOperand(rings)

	out := make([]Polygon, 0, len(cells))
	for _, cell := range cells {
		diff := toGeomPolygon(cell.Oriented(true)).Difference(mask)
		out = append(out, fromGeomPolygonal(diff)...)
	}
	return out, nil
}

// maskOperand orients the glyph rings by nesting depth (outer contours
// counterclockwise, nested counters clockwise) before combining them into
// one operand. The font's native windings arrive mirrored by the y-axis
// flip, so the subtraction would add area instead of removing it if they
// were used as-is.
func maskOperand(rings []Polygon) geom.Polygon {
	oriented := make([]Polygon, len(rings))
	for i, ring := range rings {
		depth := 0
		for j, other := range rings {
			if j != i && other.ContainsPoint(ring[0]) {
				depth++
			}
		}
		oriented[i] = ring.Oriented(depth%2 == 0)
	}
	return toGeomPolygon(oriented...)
}

// TextOutlines renders content as closed outline rings at the given glyph
// height, with the outline's bounding box centered on center. Height maps
// to the font's em square; the visible cap height is a fraction of it.
func TextOutlines(content string, heightMM float64, center Point) ([]Polygon, error) {
	f, err := fonts.Regular()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTextRender, err, "parse embedded font")
	}

	upem := int(f.UnitsPerEm())
	ppem := fixed.I(upem) // load outlines in raw font units

	var (
		buf   sfnt.Buffer
		rings []Polygon
		penX  float64
		prev  sfnt.GlyphIndex
	)

	for i, r := range content {
		gi, err := f.GlyphIndex(&buf, r)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTextRender, err, "glyph lookup for %q", r)
		}
		if gi == 0 {
			return nil, errors.New(errors.ErrCodeTextRender, "no glyph for %q", r)
		}

		if i > 0 {
			if kern, err := f.Kern(&buf, prev, gi, ppem, font.HintingNone); err == nil {
				penX += fixed26_6ToFloat(kern)
			}
		}

		segments, err := f.LoadGlyph(&buf, gi, ppem, nil)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTextRender, err, "load glyph for %q", r)
		}
		rings = append(rings, flattenGlyph(segments, penX)...)

		advance, err := f.GlyphAdvance(&buf, gi, ppem, font.HintingNone)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTextRender, err, "advance for %q", r)
		}
		penX += fixed26_6ToFloat(advance)
		prev = gi
	}

	if len(rings) == 0 {
		return nil, errors.New(errors.ErrCodeTextRender, "text %q produced no outlines", content)
	}

	return placeRings(rings, heightMM/float64(upem), center), nil
}

// placeRings scales font-unit rings to millimeters, flips the y axis from
// font convention (y down) to drawing convention (y up), and translates
// the combined bounding box center onto target.
func placeRings(rings []Polygon, scale float64, target Point) []Polygon {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, ring := range rings {
		for _, p := range ring {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2

	out := make([]Polygon, len(rings))
	for i, ring := range rings {
		placed := make(Polygon, len(ring))
		for j, p := range ring {
			placed[j] = Point{
				X: target.X + (p.X-cx)*scale,
				Y: target.Y - (p.Y-cy)*scale,
			}
		}
		out[i] = placed
	}
	return out
}

// flattenGlyph converts one glyph's segments into closed rings, offset
// horizontally by penX. Contours are implicitly closed at each MoveTo.
func flattenGlyph(segments []sfnt.Segment, penX float64) []Polygon {
	var rings []Polygon
	var current Polygon

	point := func(a fixed.Point26_6) Point {
		return Point{X: penX + fixed26_6ToFloat(a.X), Y: fixed26_6ToFloat(a.Y)}
	}
	closeCurrent := func() {
		if len(current) >= 3 {
			rings = append(rings, current)
		}
		current = nil
	}

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeCurrent()
			current = Polygon{point(seg.Args[0])}
		case sfnt.SegmentOpLineTo:
			current = append(current, point(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			current = appendQuad(current, point(seg.Args[0]), point(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			current = appendCube(current, point(seg.Args[0]), point(seg.Args[1]), point(seg.Args[2]))
		}
	}
	closeCurrent()
	return rings
}

// appendQuad flattens a quadratic Bezier from the ring's last point
// through control c to end.
func appendQuad(ring Polygon, c, end Point) Polygon {
	if len(ring) == 0 {
		return append(ring, end)
	}
	start := ring[len(ring)-1]
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		ring = append(ring, Point{
			X: u*u*start.X + 2*u*t*c.X + t*t*end.X,
			Y: u*u*start.Y + 2*u*t*c.Y + t*t*end.Y,
		})
	}
	return ring
}

// appendCube flattens a cubic Bezier from the ring's last point through
// controls c1, c2 to end.
func appendCube(ring Polygon, c1, c2, end Point) Polygon {
	if len(ring) == 0 {
		return append(ring, end)
	}
	start := ring[len(ring)-1]
	for i := 1; i <= curveSteps; i++ {
		t := float64(i) / curveSteps
		u := 1 - t
		ring = append(ring, Point{
			X: u*u*u*start.X + 3*u*u*t*c1.X + 3*u*t*t*c2.X + t*t*t*end.X,
			Y: u*u*u*start.Y + 3*u*u*t*c1.Y + 3*u*t*t*c2.Y + t*t*t*end.Y,
		})
	}
	return ring
}

func fixed26_6ToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
