package export

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo/float"
)

// Entity styles. Stroke-only rendering mirrors how the cut paths look on
// the laser writer; fills would hide overlapping defects.
const (
	boundaryStyle = `fill="none" stroke="#888888" stroke-width="0.2"`
	patternStyle  = `fill="none" stroke="#000000" stroke-width="0.1"`
)

// SVG serializes the drawing as an SVG document with one group per layer.
// The y axis is flipped so the document matches the DXF coordinate
// convention (origin bottom-left, y up).
func SVG(d Drawing) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)

	s := d.scale()
	width := d.Boundary.Width * s
	height := d.Boundary.Height * s

	canvas.Start(width, height)
	canvas.Gtransform(fmt.Sprintf("translate(0,%v) scale(1,-1)", height))

	canvas.Gid(LayerBoundary)
	canvas.Rect(0, 0, width, height, boundaryStyle)
	canvas.Gend()

	canvas.Gid(LayerPattern)
	for _, cell := range d.Cells {
		xs := make([]float64, len(cell))
		ys := make([]float64, len(cell))
		for i, p := range cell {
			xs[i] = p.X * s
			ys[i] = p.Y * s
		}
		canvas.Polygon(xs, ys, patternStyle)
	}
	canvas.Gend()

	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}
