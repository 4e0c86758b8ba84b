package api

import (
	"github.com/lumafab/agpattern/pkg/errors"
	"github.com/lumafab/agpattern/pkg/export"
	"github.com/lumafab/agpattern/pkg/pattern"
)

// BoundaryRequest is the pattern boundary in millimeters.
type BoundaryRequest struct {
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
}

func (b BoundaryRequest) rect() pattern.Rect {
	return pattern.Rect{Width: b.WidthMM, Height: b.HeightMM}
}

// TextRequest is the optional engraved label.
type TextRequest struct {
	Content  string  `json:"content"`
	HeightMM float64 `json:"height_mm,omitempty"`
}

// GenerateRequest is the shared request body of all three generate
// endpoints. Every combination of cell size and line width from the
// option lists is generated, so one request sweeps a whole parameter
// grid.
type GenerateRequest struct {
	JobID    string          `json:"job_id,omitempty"`
	Boundary BoundaryRequest `json:"boundary"`

	// CellSizeUMOptions are target cell sizes in micrometers.
	CellSizeUMOptions []int `json:"cell_size_um_options"`

	// LineWidthUMOptions are gap widths between cells in micrometers.
	// Required for the jitter-grid endpoint; the sunflower and poisson
	// endpoints default to a single zero-gap pass when omitted.
	LineWidthUMOptions []int `json:"line_width_um_options,omitempty"`

	RelaxationSteps *int         `json:"relaxation_steps,omitempty"`
	JitterStrength  *float64     `json:"jitter_strength,omitempty"`
	Text            *TextRequest `json:"text,omitempty"`
	Seed            uint64       `json:"seed,omitempty"`
	Formats         []string     `json:"formats,omitempty"`
	Unit            string       `json:"unit,omitempty"`
}

// validate checks the shared fields. Endpoint handlers run this before
// deriving generator parameters.
func (r *GenerateRequest) validate(kind pattern.Kind) error {
	if r.Boundary.WidthMM <= 0 || r.Boundary.HeightMM <= 0 {
		return errors.New(errors.ErrCodeInvalidRequest,
			"boundary dimensions must be positive, got %gx%g", r.Boundary.WidthMM, r.Boundary.HeightMM)
	}
	if len(r.CellSizeUMOptions) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "cell_size_um_options must not be empty")
	}
	if kind == pattern.KindJitterGrid && len(r.LineWidthUMOptions) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "line_width_um_options must not be empty")
	}
	for _, c := range r.CellSizeUMOptions {
		if c <= 0 {
			return errors.New(errors.ErrCodeInvalidRequest, "cell sizes must be positive, got %d", c)
		}
	}
	for _, w := range r.LineWidthUMOptions {
		if w < 0 {
			return errors.New(errors.ErrCodeInvalidRequest, "line widths must be non-negative, got %d", w)
		}
	}
	if len(r.Formats) > 0 {
		if err := export.ValidateFormats(r.Formats); err != nil {
			return err
		}
	}
	return nil
}

// combination is one point of the request's parameter grid.
type combination struct {
	CellSizeUM  int
	LineWidthUM int
}

// combinations expands the cartesian product of cell sizes and line
// widths, in request order. An omitted line-width list means one
// zero-gap pass per cell size.
func (r *GenerateRequest) combinations() []combination {
	widths := r.LineWidthUMOptions
	if len(widths) == 0 {
		widths = []int{0}
	}
	combos := make([]combination, 0, len(r.CellSizeUMOptions)*len(widths))
	for _, c := range r.CellSizeUMOptions {
		for _, w := range widths {
			combos = append(combos, combination{CellSizeUM: c, LineWidthUM: w})
		}
	}
	return combos
}

// baseConfig builds the generator-independent part of the pattern config
// for one combination.
func (r *GenerateRequest) baseConfig(combo combination) pattern.Config {
	cfg := pattern.Config{
		Boundary:        r.Boundary.rect(),
		GapMM:           float64(combo.LineWidthUM) / 1000,
		RelaxationSteps: pattern.DefaultRelaxationSteps,
		JitterStrength:  pattern.DefaultJitterStrength,
		Unit:            pattern.Unit(r.Unit),
		Seed:            r.Seed,
	}
	if r.RelaxationSteps != nil {
		cfg.RelaxationSteps = *r.RelaxationSteps
	}
	if r.JitterStrength != nil {
		cfg.JitterStrength = *r.JitterStrength
	}
	if r.Text != nil && r.Text.Content != "" {
		cfg.Text = pattern.TextLabel{
			Enabled:  true,
			Content:  r.Text.Content,
			HeightMM: r.Text.HeightMM,
		}
		if cfg.Text.HeightMM == 0 {
			cfg.Text.HeightMM = pattern.DefaultTextHeightMM
		}
	}
	return cfg
}

// formats returns the requested output formats, defaulting to DXF.
func (r *GenerateRequest) formats() []string {
	if len(r.Formats) > 0 {
		return r.Formats
	}
	return []string{export.FormatDXF}
}

// GenerateResponse carries the job id and the public URLs of every
// uploaded artifact.
type GenerateResponse struct {
	JobID      string   `json:"job_id"`
	PublicURLs []string `json:"public_urls"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
