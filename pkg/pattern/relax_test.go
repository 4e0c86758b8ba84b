package pattern

import (
	"context"
	"testing"
)

func TestRelaxZeroStepsCopies(t *testing.T) {
	original := lattice3x3()
	relaxed, err := Relax(context.Background(), original, Rect{Width: 30, Height: 30}, 0)
	if err != nil {
		t.Fatalf("Relax: %v", err)
	}
	if len(relaxed) != len(original) {
		t.Fatalf("len = %d, want %d", len(relaxed), len(original))
	}
	for i := range original {
		if relaxed[i] != original[i] {
			t.Fatalf("point %d changed: %+v != %+v", i, relaxed[i], original[i])
		}
	}

	// Independent copy, not an alias.
	relaxed[0] = Point{X: 99, Y: 99}
	if original[0] == relaxed[0] {
		t.Error("Relax must not alias its input")
	}
}

func TestRelaxLatticeIsFixedPoint(t *testing.T) {
	// For the 3x3 lattice the only finite region belongs to the center
	// site, and its centroid is the site itself. Border sites have
	// unbounded regions and stay put, so the lattice is a fixed point.
	original := lattice3x3()
	relaxed, err := Relax(context.Background(), original, Rect{Width: 30, Height: 30}, 1)
	if err != nil {
		t.Fatalf("Relax: %v", err)
	}
	for i := range original {
		if d := relaxed[i].Dist(original[i]); d > 1e-9 {
			t.Errorf("point %d moved by %g: %+v", i, d, relaxed[i])
		}
	}
}

func TestRelaxMovedPointsStayInBounds(t *testing.T) {
	// Points with unbounded regions keep their position, wherever that is
	// (jitter may legally place them outside the boundary). Every point
	// that relaxation does move lands on a clamped centroid, so it must
	// end up inside the boundary.
	bounds := Rect{Width: 40, Height: 40}
	cfg := Config{
		Boundary:       bounds,
		JitterStrength: 1,
		Generator:      &JitterGrid{Rows: 6, Cols: 6},
	}
	points, err := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(42))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	relaxed, err := Relax(context.Background(), points, bounds, 3)
	if err != nil {
		t.Fatalf("Relax: %v", err)
	}
	if len(relaxed) != len(points) {
		t.Fatalf("relaxation changed the point count: %d != %d", len(relaxed), len(points))
	}

	moved := 0
	for i, p := range relaxed {
		if p == points[i] {
			continue
		}
		moved++
		if p.X < 0 || p.X > 40 || p.Y < 0 || p.Y > 40 {
			t.Errorf("moved point %d left boundary: %+v", i, p)
		}
	}
	// A 6x6 jittered grid always has interior sites with finite regions.
	if moved == 0 {
		t.Error("expected relaxation to move the interior points")
	}
}

func TestRelaxMovesDisplacedSiteToRegionCentroid(t *testing.T) {
	// Displace the center site of the lattice. Its region stays finite,
	// and one step moves the site exactly onto that region's vertex
	// centroid; the border sites keep unbounded regions and stay put.
	points := lattice3x3()
	points[4] = Point{X: 13, Y: 14}
	bounds := Rect{Width: 30, Height: 30}

	diagram := BuildDiagram(points, bounds)
	if !diagram.Regions[4].Finite() {
		t.Fatal("displaced center site should keep a finite region")
	}
	want := bounds.Clamp(diagram.Regions[4].Ring.Centroid())

	relaxed, err := Relax(context.Background(), points, bounds, 1)
	if err != nil {
		t.Fatalf("Relax: %v", err)
	}
	if relaxed[4].Dist(want) > 1e-9 {
		t.Errorf("center site = %+v, want region centroid %+v", relaxed[4], want)
	}
	for _, i := range []int{0, 1, 2, 3, 5, 6, 7, 8} {
		if relaxed[i] != points[i] {
			t.Errorf("border site %d moved to %+v", i, relaxed[i])
		}
	}
}

func TestRelaxCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Relax(ctx, lattice3x3(), Rect{Width: 30, Height: 30}, 5); err == nil {
		t.Error("expected error for cancelled context")
	}
}
