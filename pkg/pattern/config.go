package pattern

import (
	"github.com/lumafab/agpattern/pkg/errors"
)

// Unit is the length unit used for exported coordinates.
// Internal pipeline coordinates are always millimeters.
type Unit string

// Supported output units.
const (
	UnitMillimeter Unit = "mm"
	UnitMicrometer Unit = "um"
)

// Factor returns the multiplier from internal millimeters to the unit.
func (u Unit) Factor() float64 {
	if u == UnitMicrometer {
		return 1000
	}
	return 1
}

// Valid reports whether u is a supported unit.
func (u Unit) Valid() bool {
	return u == UnitMillimeter || u == UnitMicrometer
}

// Kind identifies a point synthesis strategy.
type Kind string

// Generator kinds.
const (
	KindJitterGrid  Kind = "jitter-grid"
	KindSunflower   Kind = "sunflower"
	KindPoissonDisc Kind = "poisson-disc"
)

// Default parameter values shared by CLI and API.
const (
	// DefaultJitterStrength displaces grid points by up to half the average
	// cell width in each direction.
	DefaultJitterStrength = 0.5

	// DefaultRelaxationSteps is a single Lloyd iteration.
	DefaultRelaxationSteps = 1

	// DefaultPoissonCandidates is the candidate count k in Bridson's
	// algorithm. Empirical constant from the reference implementation.
	DefaultPoissonCandidates = 30

	// DefaultSpiralConstant is the Fermat spiral radial constant.
	DefaultSpiralConstant = 4.0

	// DefaultTextHeightMM is the glyph height for text labels.
	DefaultTextHeightMM = 5.0

	// DefaultSeed keeps unconfigured runs reproducible.
	DefaultSeed = uint64(42)
)

// MinScaleFactor is the floor for the gap scale factor. It prevents a gap
// wider than the cell from collapsing or inverting polygons. Empirical
// safety constant; kept configurable rather than derived.
const MinScaleFactor = 0.1

// TextLabel configures the optional text silhouette subtracted from the
// cell pattern.
type TextLabel struct {
	Enabled  bool    `json:"enabled"`
	Content  string  `json:"content,omitempty"`
	HeightMM float64 `json:"height_mm,omitempty"`
}

// Generator is the tagged-union variant of a Config: exactly one of the
// three synthesis strategies. A Generator is also the Synthesizer that
// produces the initial point set for its strategy.
type Generator interface {
	Synthesizer

	// validate checks the strategy-specific density parameters.
	validate() error
}

// Config is the complete, validated parameter set for one generation run.
// Construct it, call Validate once, and treat it as immutable afterwards.
type Config struct {
	Boundary        Rect      `json:"boundary"`
	GapMM           float64   `json:"gap_mm"`
	RelaxationSteps int       `json:"relaxation_steps"`
	JitterStrength  float64   `json:"jitter_strength"`
	Text            TextLabel `json:"text"`
	Unit            Unit      `json:"unit"`
	Seed            uint64    `json:"seed"`

	// Generator selects and parameterizes the synthesis strategy.
	Generator Generator `json:"-"`
}

// Validate checks the full configuration. It returns an INVALID_CONFIG
// coded error on the first violation; a config that passes is safe to run.
func (c *Config) Validate() error {
	if c.Boundary.Width <= 0 || c.Boundary.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig,
			"boundary dimensions must be positive, got %gx%g", c.Boundary.Width, c.Boundary.Height)
	}
	if c.GapMM < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "gap width must be non-negative, got %g", c.GapMM)
	}
	if c.RelaxationSteps < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "relaxation steps must be non-negative, got %d", c.RelaxationSteps)
	}
	if c.JitterStrength < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "jitter strength must be non-negative, got %g", c.JitterStrength)
	}
	if c.Unit == "" {
		c.Unit = UnitMillimeter
	}
	if !c.Unit.Valid() {
		return errors.New(errors.ErrCodeInvalidUnit, "unsupported output unit %q", c.Unit)
	}
	if c.Text.Enabled && c.Text.Content != "" && c.Text.HeightMM <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "text height must be positive, got %g", c.Text.HeightMM)
	}
	if c.Generator == nil {
		return errors.New(errors.ErrCodeInvalidGenerator, "no generator configured")
	}
	return c.Generator.validate()
}

// CharacteristicDim returns the characteristic cell dimension used to turn
// a requested gap width into a scale factor. Grid mode derives it from the
// column count; spiral and disc modes from the average area per point.
// pointCount is the size of the synthesized point set.
func (c *Config) CharacteristicDim(pointCount int) float64 {
	if g, ok := c.Generator.(*JitterGrid); ok {
		return c.Boundary.Width / float64(g.Cols)
	}
	if pointCount <= 0 {
		return c.Boundary.Diagonal()
	}
	return sqrtAreaPerPoint(c.Boundary, pointCount)
}

// GapScale returns the uniform scale factor that realizes the configured
// gap, clamped to MinScaleFactor. A zero gap yields exactly 1.
func (c *Config) GapScale(pointCount int) float64 {
	if c.GapMM == 0 {
		return 1
	}
	scale := 1 - c.GapMM/c.CharacteristicDim(pointCount)
	if scale < MinScaleFactor {
		return MinScaleFactor
	}
	return scale
}
