package pattern

import (
	"math"

	"github.com/lumafab/agpattern/pkg/errors"
)

// DeriveGenerator maps a target cell size onto the density parameter of
// the chosen strategy: grid dimensions for the jitter grid, point count
// for the sunflower spiral, disc radius for Poisson sampling. The API
// and batch CLI share this derivation so a given cell size means the
// same thing on every entry point.
func DeriveGenerator(kind Kind, boundary Rect, cellSizeMM float64) (Generator, error) {
	if cellSizeMM <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "cell size must be positive, got %g", cellSizeMM)
	}

	switch kind {
	case KindJitterGrid:
		return &JitterGrid{
			Rows: max(1, int(math.Round(boundary.Height/cellSizeMM))),
			Cols: max(1, int(math.Round(boundary.Width/cellSizeMM))),
		}, nil
	case KindSunflower:
		cellArea := cellSizeMM * cellSizeMM
		return &Sunflower{
			NumPoints: max(1, int(math.Round(boundary.Area()/cellArea))),
			C:         DefaultSpiralConstant,
		}, nil
	case KindPoissonDisc:
		return &PoissonDisc{
			RadiusMM: cellSizeMM / 2,
			K:        DefaultPoissonCandidates,
		}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidGenerator, "unknown generator kind %q", kind)
}

// ParseKind maps the short names used by flags and endpoints onto kinds.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "jitter", string(KindJitterGrid):
		return KindJitterGrid, nil
	case string(KindSunflower):
		return KindSunflower, nil
	case "poisson", string(KindPoissonDisc):
		return KindPoissonDisc, nil
	}
	return "", errors.New(errors.ErrCodeInvalidGenerator,
		"unknown generator %q (must be one of: jitter, sunflower, poisson)", s)
}
