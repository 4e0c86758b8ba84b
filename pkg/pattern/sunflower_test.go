package pattern

import (
	"context"
	"testing"
)

func TestSunflowerTargetCount(t *testing.T) {
	cfg := Config{
		Boundary:  Rect{Width: 50, Height: 50},
		Generator: &Sunflower{NumPoints: 50, C: 4},
	}
	points, err := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(42))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	// The spiral covers the half-diagonal, so enough candidates land
	// inside to subsample down to exactly the target.
	if len(points) != 50 {
		t.Errorf("len = %d, want 50", len(points))
	}
	for i, p := range points {
		if !cfg.Boundary.Contains(p) {
			t.Fatalf("point %d outside boundary: %+v", i, p)
		}
	}
}

func TestSunflowerFirstPointIsCenter(t *testing.T) {
	cfg := Config{
		Boundary:  Rect{Width: 40, Height: 20},
		Generator: &Sunflower{NumPoints: 30, C: 2},
	}
	points, err := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(42))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if len(points) == 0 {
		t.Fatal("expected points")
	}
	// Index 0 has radius 0; subsampling preserves order, and with no
	// jitter the center survives untouched when kept.
	center := cfg.Boundary.Center()
	found := false
	for _, p := range points {
		if p == center {
			found = true
			break
		}
	}
	if !found {
		// Subsampling may drop the center; at least every point must be
		// on the spiral inside the boundary. This assertion documents
		// the common case without pinning the RNG stream.
		t.Logf("center not in subsample (allowed)")
	}
}

func TestSunflowerJitterStaysInBounds(t *testing.T) {
	cfg := Config{
		Boundary:       Rect{Width: 30, Height: 30},
		JitterStrength: 1.5,
		Generator:      &Sunflower{NumPoints: 40, C: 3},
	}
	points, err := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(42))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	for i, p := range points {
		if !cfg.Boundary.Contains(p) {
			t.Fatalf("jittered point %d escaped boundary: %+v", i, p)
		}
	}
}

func TestSunflowerDeterministic(t *testing.T) {
	cfg := Config{
		Boundary:       Rect{Width: 50, Height: 50},
		JitterStrength: 0.5,
		Generator:      &Sunflower{NumPoints: 60, C: 4},
	}
	a, _ := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(42))
	b, _ := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(42))
	if len(a) != len(b) {
		t.Fatal("same seed should reproduce the same count")
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed should reproduce the same points")
		}
	}
}
