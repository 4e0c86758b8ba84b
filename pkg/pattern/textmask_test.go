package pattern

import (
	"math"
	"testing"

	"github.com/lumafab/agpattern/pkg/errors"
)

func TestTextOutlinesPlacement(t *testing.T) {
	center := Point{X: 15, Y: 10}
	rings, err := TextOutlines("A", 5, center)
	if err != nil {
		t.Fatalf("TextOutlines: %v", err)
	}
	if len(rings) == 0 {
		t.Fatal("expected outline rings")
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, ring := range rings {
		if len(ring) < 3 {
			t.Fatalf("degenerate ring with %d points", len(ring))
		}
		for _, p := range ring {
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}

	// The height maps to the em square, so the visible glyph box is a
	// fraction of it, and the bounding box is centered on the target.
	if h := maxY - minY; h <= 0 || h > 5 {
		t.Errorf("outline height = %g, want within (0, 5]", h)
	}
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2
	if math.Abs(cx-center.X) > 1e-9 || math.Abs(cy-center.Y) > 1e-9 {
		t.Errorf("outline center = (%g,%g), want %+v", cx, cy, center)
	}
}

func TestTextOutlinesMultiCharacterAdvances(t *testing.T) {
	one, err := TextOutlines("I", 5, Point{})
	if err != nil {
		t.Fatalf("TextOutlines: %v", err)
	}
	three, err := TextOutlines("III", 5, Point{})
	if err != nil {
		t.Fatalf("TextOutlines: %v", err)
	}
	if len(three) <= len(one) {
		t.Errorf("rings: %d for one glyph, %d for three", len(one), len(three))
	}
}

func TestTextOutlinesMissingGlyph(t *testing.T) {
	// Go Regular carries no airplane glyph.
	_, err := TextOutlines("✈", 5, Point{})
	if errors.GetCode(err) != errors.ErrCodeTextRender {
		t.Errorf("code = %v, want TEXT_RENDER (err: %v)", errors.GetCode(err), err)
	}
}

func TestTextOutlinesEmptyContent(t *testing.T) {
	if _, err := TextOutlines("", 5, Point{}); err == nil {
		t.Error("expected error for empty content")
	}
}

// materialArea computes the net material of a flat contour list: a ring
// nested at even depth adds area, a ring at odd depth is a hole and
// subtracts. Winding-independent, so it works on clipper output directly.
func materialArea(cells []Polygon) float64 {
	var total float64
	for i, ring := range cells {
		depth := 0
		for j, other := range cells {
			if j != i && other.ContainsPoint(ring[0]) {
				depth++
			}
		}
		if depth%2 == 0 {
			total += ring.Area()
		} else {
			total -= ring.Area()
		}
	}
	return total
}

// insideMaterial reports even-odd containment of p over the contour list.
func insideMaterial(cells []Polygon, p Point) bool {
	count := 0
	for _, c := range cells {
		if c.ContainsPoint(p) {
			count++
		}
	}
	return count%2 == 1
}

func TestMaskTextRemovesArea(t *testing.T) {
	bounds := Rect{Width: 30, Height: 20}
	// One big cell covering the whole boundary; the label sits at the
	// center, so the silhouette must carve material out of it.
	cell := Polygon{{0, 0}, {30, 0}, {30, 20}, {0, 20}}

	label := TextLabel{Enabled: true, Content: "AG", HeightMM: 8}
	masked, err := MaskText([]Polygon{cell}, bounds, label)
	if err != nil {
		t.Fatalf("MaskText: %v", err)
	}
	if len(masked) < 2 {
		t.Fatalf("contours = %d, want the cell ring plus glyph contours", len(masked))
	}

	total := materialArea(masked)
	if total >= cell.Area() {
		t.Errorf("masked material = %g, want less than %g", total, cell.Area())
	}
	// The glyphs are small relative to the cell; the cut must not eat
	// a large share of it.
	if total < 500 {
		t.Errorf("masked material = %g, cut removed too much", total)
	}
}

func TestMaskTextCutsGlyphInterior(t *testing.T) {
	bounds := Rect{Width: 30, Height: 20}
	cell := Polygon{{0, 0}, {30, 0}, {30, 20}, {0, 20}}

	// The "I" stem sits on the glyph box center, which lands on the
	// boundary center.
	label := TextLabel{Enabled: true, Content: "I", HeightMM: 8}
	masked, err := MaskText([]Polygon{cell}, bounds, label)
	if err != nil {
		t.Fatalf("MaskText: %v", err)
	}

	if insideMaterial(masked, bounds.Center()) {
		t.Error("glyph interior should be cut out of the cell")
	}
	if !insideMaterial(masked, Point{X: 3, Y: 3}) {
		t.Error("material away from the label should survive")
	}
}

func TestMaskTextKeepsLetterCounters(t *testing.T) {
	bounds := Rect{Width: 30, Height: 20}
	cell := Polygon{{0, 0}, {30, 0}, {30, 20}, {0, 20}}

	// The counter of "O" is an island of material inside the cut.
	label := TextLabel{Enabled: true, Content: "O", HeightMM: 8}
	masked, err := MaskText([]Polygon{cell}, bounds, label)
	if err != nil {
		t.Fatalf("MaskText: %v", err)
	}

	if !insideMaterial(masked, bounds.Center()) {
		t.Error("the counter island should remain material")
	}
}

func TestMaskTextAwayFromCellsIsNoop(t *testing.T) {
	bounds := Rect{Width: 100, Height: 100}
	// A small cell in the corner, far from the centered label.
	corner := Polygon{{0, 0}, {5, 0}, {5, 5}, {0, 5}}

	label := TextLabel{Enabled: true, Content: "X", HeightMM: 4}
	masked, err := MaskText([]Polygon{corner}, bounds, label)
	if err != nil {
		t.Fatalf("MaskText: %v", err)
	}
	if len(masked) != 1 {
		t.Fatalf("cells = %d, want 1", len(masked))
	}
	if area := masked[0].Area(); math.Abs(area-25) > 1e-9 {
		t.Errorf("area = %g, want 25", area)
	}
}

func TestMaskTextPropagatesRenderErrors(t *testing.T) {
	bounds := Rect{Width: 10, Height: 10}
	cell := Polygon{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	label := TextLabel{Enabled: true, Content: "✈", HeightMM: 4}
	if _, err := MaskText([]Polygon{cell}, bounds, label); !errors.Is(err, errors.ErrCodeTextRender) {
		t.Errorf("expected TEXT_RENDER error, got %v", err)
	}
}
