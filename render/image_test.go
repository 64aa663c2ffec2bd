package render

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

func gu(v float64) units.Unit { return units.GraphicUnit.New(v) }

func pt(x, y float64) geom.Point { return geom.NewPoint(gu(x), gu(y)) }

// luma returns the approximate brightness of a canvas pixel.
func luma(r *ImageRenderer, x, y int) uint32 {
	c := color.RGBAModel.Convert(r.Image().At(x, y)).(color.RGBA)
	return (uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3
}

func TestImageRendererCanvasSize(t *testing.T) {
	r := NewImageRenderer(gu(100), gu(50), 2)
	b := r.Image().Bounds()
	if b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("canvas = %dx%d, want 200x100", b.Dx(), b.Dy())
	}
	// Starts white.
	if got := luma(r, 10, 10); got < 250 {
		t.Errorf("blank canvas luma = %d, want white", got)
	}
}

func TestDrawLine(t *testing.T) {
	r := NewImageRenderer(gu(100), gu(100), 1)
	r.DrawLine(pt(10, 50), pt(90, 50), gu(2))

	if got := luma(r, 50, 50); got > 128 {
		t.Errorf("pixel on the line has luma %d, want dark", got)
	}
	if got := luma(r, 50, 20); got < 250 {
		t.Errorf("pixel off the line has luma %d, want white", got)
	}
}

func TestDrawRect(t *testing.T) {
	r := NewImageRenderer(gu(100), gu(100), 1)
	r.DrawRect(geom.NewRect(gu(20), gu(20), gu(60), gu(40)), gu(1))

	// The outline is stroked, the interior stays white.
	if got := luma(r, 50, 20); got > 128 {
		t.Errorf("pixel on the top edge has luma %d, want dark", got)
	}
	if got := luma(r, 50, 40); got < 250 {
		t.Errorf("pixel inside the rectangle has luma %d, want white", got)
	}
}

func TestDrawGlyphPlaceholder(t *testing.T) {
	r := NewImageRenderer(gu(100), gu(100), 1)
	// Without a music font the glyph draws as its bounding box outline.
	bounds := geom.NewRect(gu(0), gu(-20), gu(30), gu(40))
	r.DrawGlyph("gClef", pt(40, 50), bounds)

	if got := luma(r, 55, 30); got > 128 {
		t.Errorf("pixel on the placeholder edge has luma %d, want dark", got)
	}
}

func TestDrawText(t *testing.T) {
	r := NewImageRenderer(gu(100), gu(100), 1)
	r.DrawText("forte", pt(10, 50), 12)

	// The built-in bitmap face draws just below and right of the origin;
	// scan a window for any dark pixel.
	found := false
	for x := 10; x < 60 && !found; x++ {
		for y := 38; y < 54 && !found; y++ {
			if luma(r, x, y) < 128 {
				found = true
			}
		}
	}
	if !found {
		t.Error("no dark pixels after drawing text")
	}
}

func TestEncodePNG(t *testing.T) {
	r := NewImageRenderer(gu(20), gu(20), 1)
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("output is not a PNG stream")
	}
}

func TestSetTextFontRejectsGarbage(t *testing.T) {
	r := NewImageRenderer(gu(20), gu(20), 1)
	if err := r.SetTextFont([]byte("not a font")); err == nil {
		t.Error("SetTextFont() accepted garbage, want error")
	}
	if err := r.SetMusicFont([]byte("not a font"), nil, gu(1)); err == nil {
		t.Error("SetMusicFont() accepted garbage, want error")
	}
}
