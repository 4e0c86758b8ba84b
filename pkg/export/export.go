// Package export serializes generated cell patterns into vector drawing
// documents. DXF is the canonical manufacturing format; SVG is provided
// for quick visual inspection. Both emit only closed polylines: the
// boundary rectangle on a "Boundary" layer and every cell polygon on a
// "Pattern" layer.
package export

import (
	"fmt"

	"github.com/lumafab/agpattern/pkg/errors"
	"github.com/lumafab/agpattern/pkg/pattern"
)

// Output formats.
const (
	FormatDXF = "dxf"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatDXF: true,
	FormatSVG: true,
}

// Layer names, matching the manufacturing toolchain's expectations.
const (
	LayerBoundary = "Boundary"
	LayerPattern  = "Pattern"
)

// Drawing is the renderable result of a pattern run: the boundary
// rectangle plus the final cell polygons, all in millimeters. Unit
// selects the coordinate scale written to the document.
type Drawing struct {
	Boundary pattern.Rect
	Cells    []pattern.Polygon
	Unit     pattern.Unit
}

// scale returns the millimeter-to-output-unit multiplier.
func (d Drawing) scale() float64 {
	return d.Unit.Factor()
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format %q (must be one of: dxf, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Render serializes the drawing into every requested format.
func Render(d Drawing, formats []string) (map[string][]byte, error) {
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(formats))
	for _, f := range formats {
		switch f {
		case FormatDXF:
			artifacts[f] = DXF(d)
		case FormatSVG:
			artifacts[f] = SVG(d)
		default:
			return nil, fmt.Errorf("unhandled format %q", f)
		}
	}
	return artifacts, nil
}

// boundaryRing returns the boundary rectangle as a closed ring in output
// units.
func (d Drawing) boundaryRing() pattern.Polygon {
	s := d.scale()
	return pattern.Polygon{
		{X: 0, Y: 0},
		{X: d.Boundary.Width * s, Y: 0},
		{X: d.Boundary.Width * s, Y: d.Boundary.Height * s},
		{X: 0, Y: d.Boundary.Height * s},
	}
}
