package pattern

import (
	"math"
	"testing"
)

func TestRect(t *testing.T) {
	r := Rect{Width: 30, Height: 40}

	if r.Area() != 1200 {
		t.Errorf("Area = %g", r.Area())
	}
	if r.Diagonal() != 50 {
		t.Errorf("Diagonal = %g", r.Diagonal())
	}
	if c := r.Center(); c.X != 15 || c.Y != 20 {
		t.Errorf("Center = %+v", c)
	}

	if !r.Contains(Point{X: 0, Y: 0}) || !r.Contains(Point{X: 30, Y: 40}) {
		t.Error("Contains should include the closed edges")
	}
	if r.Contains(Point{X: 30.1, Y: 0}) {
		t.Error("Contains should exclude points past the edge")
	}

	got := r.Clamp(Point{X: -5, Y: 45})
	if got.X != 0 || got.Y != 40 {
		t.Errorf("Clamp = %+v", got)
	}
}

func TestPolygonArea(t *testing.T) {
	square := Polygon{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	if square.Area() != 4 {
		t.Errorf("Area = %g, want 4", square.Area())
	}

	// Winding direction must not matter.
	reversed := Polygon{{0, 2}, {2, 2}, {2, 0}, {0, 0}}
	if reversed.Area() != 4 {
		t.Errorf("reversed Area = %g, want 4", reversed.Area())
	}

	if (Polygon{{0, 0}, {1, 1}}).Area() != 0 {
		t.Error("degenerate ring should have zero area")
	}
}

func TestPolygonCentroid(t *testing.T) {
	square := Polygon{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	c := square.Centroid()
	if c.X != 1 || c.Y != 1 {
		t.Errorf("Centroid = %+v, want (1,1)", c)
	}

	if c := (Polygon{}).Centroid(); c.X != 0 || c.Y != 0 {
		t.Errorf("empty Centroid = %+v", c)
	}
}

func TestPolygonScaleAbout(t *testing.T) {
	square := Polygon{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	scaled := square.ScaleAbout(Point{X: 1, Y: 1}, 0.5)

	wantArea := 1.0
	if math.Abs(scaled.Area()-wantArea) > 1e-12 {
		t.Errorf("scaled Area = %g, want %g", scaled.Area(), wantArea)
	}
	// The centroid is the fixed point of the scaling.
	c := scaled.Centroid()
	if math.Abs(c.X-1) > 1e-12 || math.Abs(c.Y-1) > 1e-12 {
		t.Errorf("scaled Centroid = %+v, want (1,1)", c)
	}
}

func TestPolygonOriented(t *testing.T) {
	ccw := Polygon{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	cw := Polygon{{0, 2}, {2, 2}, {2, 0}, {0, 0}}

	if ccw.SignedArea() <= 0 {
		t.Fatalf("SignedArea = %g, want positive for counterclockwise", ccw.SignedArea())
	}
	if cw.SignedArea() >= 0 {
		t.Fatalf("SignedArea = %g, want negative for clockwise", cw.SignedArea())
	}

	if got := cw.Oriented(true); got.SignedArea() <= 0 {
		t.Error("Oriented(true) should reverse a clockwise ring")
	}
	if got := ccw.Oriented(false); got.SignedArea() >= 0 {
		t.Error("Oriented(false) should reverse a counterclockwise ring")
	}
	// A ring already in the requested winding comes back unchanged.
	got := ccw.Oriented(true)
	for i := range ccw {
		if got[i] != ccw[i] {
			t.Fatal("Oriented should not touch a correctly wound ring")
		}
	}
}

func TestPolygonContainsPoint(t *testing.T) {
	square := Polygon{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	if !square.ContainsPoint(Point{X: 2, Y: 2}) {
		t.Error("interior point should be contained")
	}
	if square.ContainsPoint(Point{X: 5, Y: 2}) || square.ContainsPoint(Point{X: 2, Y: -1}) {
		t.Error("exterior points should not be contained")
	}

	// Concave ring: the notch is outside.
	l := Polygon{{0, 0}, {4, 0}, {4, 2}, {2, 2}, {2, 4}, {0, 4}}
	if !l.ContainsPoint(Point{X: 1, Y: 3}) {
		t.Error("point in the leg should be contained")
	}
	if l.ContainsPoint(Point{X: 3, Y: 3}) {
		t.Error("point in the notch should not be contained")
	}
}

func TestPointSetClone(t *testing.T) {
	s := PointSet{{1, 2}, {3, 4}}
	c := s.Clone()
	c[0].X = 99
	if s[0].X != 1 {
		t.Error("Clone should be independent of the original")
	}
}
