package pattern

import (
	"context"
	"math"
	"math/rand/v2"
	"testing"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

func TestJitterGridExactLattice(t *testing.T) {
	cfg := Config{
		Boundary:       Rect{Width: 30, Height: 20},
		JitterStrength: 0,
		Generator:      &JitterGrid{Rows: 3, Cols: 4},
	}

	// With zero jitter the lattice is exact regardless of seed.
	for _, seed := range []uint64{1, 42} {
		points, err := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(seed))
		if err != nil {
			t.Fatalf("Synthesize: %v", err)
		}
		if len(points) != 12 {
			t.Fatalf("len = %d, want 12", len(points))
		}

		// Row-major from the bottom, edges included.
		if points[0] != (Point{0, 0}) {
			t.Errorf("first point = %+v, want origin", points[0])
		}
		if points[3] != (Point{30, 0}) {
			t.Errorf("end of first row = %+v, want (30,0)", points[3])
		}
		if points[11] != (Point{30, 20}) {
			t.Errorf("last point = %+v, want (30,20)", points[11])
		}
		if points[5] != (Point{10, 10}) {
			t.Errorf("points[5] = %+v, want (10,10)", points[5])
		}
	}
}

func TestJitterGridDisplacementBounded(t *testing.T) {
	cfg := Config{
		Boundary:       Rect{Width: 100, Height: 100},
		JitterStrength: 0.5,
		Generator:      &JitterGrid{Rows: 10, Cols: 10},
	}
	points, err := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(42))
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	// Max displacement per axis is half of cellWidth * strength.
	maxOffset := 100.0 / 10 * 0.5 / 2
	xs := linspace(0, 100, 10)
	ys := linspace(0, 100, 10)
	for i, p := range points {
		lx := xs[i%10]
		ly := ys[i/10]
		if math.Abs(p.X-lx) > maxOffset || math.Abs(p.Y-ly) > maxOffset {
			t.Fatalf("point %d displaced too far: %+v from (%g,%g)", i, p, lx, ly)
		}
	}
}

func TestJitterGridDeterministic(t *testing.T) {
	cfg := Config{
		Boundary:       Rect{Width: 50, Height: 50},
		JitterStrength: 0.5,
		Generator:      &JitterGrid{Rows: 5, Cols: 5},
	}
	a, _ := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(42))
	b, _ := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(42))
	c, _ := cfg.Generator.Synthesize(context.Background(), &cfg, testRNG(7))

	for i := range a {
		if a[i] != b[i] {
			t.Fatal("same seed should reproduce the same points")
		}
	}
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds should produce different points")
	}
}

func TestLinspace(t *testing.T) {
	got := linspace(0, 10, 3)
	want := []float64{0, 5, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("linspace = %v, want %v", got, want)
		}
	}

	if got := linspace(2, 10, 1); len(got) != 1 || got[0] != 2 {
		t.Errorf("linspace n=1 = %v, want [2]", got)
	}
}
