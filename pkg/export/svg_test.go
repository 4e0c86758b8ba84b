package export

import (
	"strings"
	"testing"
)

func TestSVGStructure(t *testing.T) {
	d := testDrawing()
	out := string(SVG(d))

	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("not an SVG document")
	}
	if !strings.Contains(out, `id="`+LayerBoundary+`"`) {
		t.Error("missing Boundary group")
	}
	if !strings.Contains(out, `id="`+LayerPattern+`"`) {
		t.Error("missing Pattern group")
	}
	if n := strings.Count(out, "<polygon"); n != len(d.Cells) {
		t.Errorf("polygon count = %d, want %d", n, len(d.Cells))
	}
	if !strings.Contains(out, "<rect") {
		t.Error("boundary rectangle missing")
	}
}

func TestSVGFlipsYAxis(t *testing.T) {
	out := string(SVG(testDrawing()))
	if !strings.Contains(out, "scale(1,-1)") {
		t.Error("document must flip the y axis to match DXF orientation")
	}
}

func TestSVGStrokeOnly(t *testing.T) {
	out := string(SVG(testDrawing()))
	if !strings.Contains(out, `fill="none"`) {
		t.Error("entities must render stroke-only")
	}
}

func TestRenderFormats(t *testing.T) {
	artifacts, err := Render(testDrawing(), []string{FormatDXF, FormatSVG})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(artifacts) != 2 {
		t.Fatalf("artifacts = %d, want 2", len(artifacts))
	}
	if !strings.Contains(string(artifacts[FormatDXF]), "ENTITIES") {
		t.Error("dxf artifact malformed")
	}
	if !strings.Contains(string(artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact malformed")
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	if _, err := Render(testDrawing(), []string{"pdf"}); err == nil {
		t.Error("expected error for unsupported format")
	}
}
