package export

import (
	"bytes"
	"strconv"

	"github.com/lumafab/agpattern/pkg/pattern"
)

// DXF serializes the drawing as an ASCII DXF R12 document. R12 POLYLINE
// entities (rather than the later LWPOLYLINE) keep the output readable by
// effectively every CAD and laser-writer toolchain in circulation.
func DXF(d Drawing) []byte {
	w := &dxfWriter{}

	// HEADER
	w.tag(0, "SECTION")
	w.tag(2, "HEADER")
	w.tag(9, "$ACADVER")
	w.tag(1, "AC1009")
	w.tag(0, "ENDSEC")

	// TABLES: declare the two layers up front so strict readers don't
	// have to infer them from entity attributes.
	w.tag(0, "SECTION")
	w.tag(2, "TABLES")
	w.tag(0, "TABLE")
	w.tag(2, "LAYER")
	w.tag(70, "2")
	w.layer(LayerBoundary)
	w.layer(LayerPattern)
	w.tag(0, "ENDTAB")
	w.tag(0, "ENDSEC")

	// ENTITIES
	w.tag(0, "SECTION")
	w.tag(2, "ENTITIES")
	w.polyline(LayerBoundary, d.boundaryRing())
	scale := d.scale()
	for _, cell := range d.Cells {
		w.polyline(LayerPattern, cell.ScaleAbout(pattern.Point{}, scale))
	}
	w.tag(0, "ENDSEC")
	w.tag(0, "EOF")

	return w.buf.Bytes()
}

type dxfWriter struct {
	buf bytes.Buffer
}

// tag writes one DXF group code / value pair.
func (w *dxfWriter) tag(code int, value string) {
	w.buf.WriteString(strconv.Itoa(code))
	w.buf.WriteByte('\n')
	w.buf.WriteString(value)
	w.buf.WriteByte('\n')
}

func (w *dxfWriter) float(code int, v float64) {
	w.tag(code, strconv.FormatFloat(v, 'f', -1, 64))
}

// layer emits one LAYER table record with default color and linetype.
func (w *dxfWriter) layer(name string) {
	w.tag(0, "LAYER")
	w.tag(2, name)
	w.tag(70, "0")
	w.tag(62, "7")
	w.tag(6, "CONTINUOUS")
}

// polyline emits a closed POLYLINE / VERTEX / SEQEND chain on layer.
func (w *dxfWriter) polyline(layer string, ring pattern.Polygon) {
	w.tag(0, "POLYLINE")
	w.tag(8, layer)
	w.tag(66, "1") // vertices follow
	w.tag(70, "1") // closed
	for _, p := range ring {
		w.tag(0, "VERTEX")
		w.tag(8, layer)
		w.float(10, p.X)
		w.float(20, p.Y)
	}
	w.tag(0, "SEQEND")
}
