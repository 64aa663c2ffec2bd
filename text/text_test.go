package text

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/smufl"
	"github.com/cantus/engrave/units"
)

func gu(v float64) units.Unit { return units.GraphicUnit.New(v) }

func pt(x, y float64) geom.Point { return geom.NewPoint(gu(x), gu(y)) }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

type recordRenderer struct {
	texts  []recordedText
	glyphs []string
}

type recordedText struct {
	text   string
	pos    geom.Point
	sizePt float64
}

func (r *recordRenderer) DrawLine(geom.Point, geom.Point, units.Unit) {}
func (r *recordRenderer) DrawRect(geom.Rect, units.Unit) {}

func (r *recordRenderer) DrawText(text string, pos geom.Point, sizePt float64) {
	r.texts = append(r.texts, recordedText{text, pos, sizePt})
}

func (r *recordRenderer) DrawGlyph(name string, _ geom.Point, _ geom.Rect) {
	r.glyphs = append(r.glyphs, name)
}

func testContext(r core.Renderer) *core.RenderContext {
	return &core.RenderContext{Renderer: r, Logger: log.New(io.Discard)}
}

func TestTextDefaults(t *testing.T) {
	txt := NewText(pt(0, 0), nil, "Allegro", 0)
	if txt.SizePt() != DefaultSizePt {
		t.Errorf("SizePt() = %v, want %v", txt.SizePt(), DefaultSizePt)
	}
	if txt.Content() != "Allegro" {
		t.Errorf("Content() = %q, want Allegro", txt.Content())
	}
}

func TestTextRender(t *testing.T) {
	txt := NewText(pt(5, 7), nil, "Andante", 10)
	rec := &recordRenderer{}
	txt.RenderComplete(testContext(rec), pt(5, 7), nil)

	if len(rec.texts) != 1 {
		t.Fatalf("got %d text draws, want 1", len(rec.texts))
	}
	got := rec.texts[0]
	if got.text != "Andante" || got.sizePt != 10 {
		t.Errorf("drew %q at %vpt, want Andante at 10pt", got.text, got.sizePt)
	}
	if !got.pos.Eq(pt(5, 7)) {
		t.Errorf("drew at %v, want (5, 7)", got.pos)
	}
}

func TestMusicTextWidth(t *testing.T) {
	font := smufl.NewFont(smufl.Bravura(), units.MakeKind("su", gu(1)))
	m, err := NewMusicText(pt(0, 0), nil, font, "noteheadBlack", "noteheadBlack", "noteheadWhole")
	if err != nil {
		t.Fatalf("NewMusicText() error: %v", err)
	}
	want := 1.18 + 1.18 + 1.7
	if got := m.Width().In(units.GraphicUnit); !almostEqual(got, want) {
		t.Errorf("Width() = %v, want %v", got, want)
	}
}

func TestMusicTextUnknownGlyph(t *testing.T) {
	font := smufl.NewFont(smufl.Bravura(), units.MakeKind("su", gu(1)))
	if _, err := NewMusicText(pt(0, 0), nil, font, "noSuchGlyph"); !errors.Is(err, smufl.ErrUnknownGlyph) {
		t.Errorf("NewMusicText() error = %v, want ErrUnknownGlyph", err)
	}
}

func TestMusicTextRender(t *testing.T) {
	font := smufl.NewFont(smufl.Bravura(), units.MakeKind("su", gu(1)))
	m, err := NewMusicText(pt(0, 0), nil, font, "accidentalSharp", "accidentalFlat")
	if err != nil {
		t.Fatalf("NewMusicText() error: %v", err)
	}
	rec := &recordRenderer{}
	m.RenderComplete(testContext(rec), pt(0, 0), nil)
	if len(rec.glyphs) != 2 || rec.glyphs[0] != "accidentalSharp" || rec.glyphs[1] != "accidentalFlat" {
		t.Errorf("drew %v, want the two accidentals in order", rec.glyphs)
	}
}

func TestRichTextParse(t *testing.T) {
	r, err := NewRichText(pt(0, 0), nil, "Moderato <b>con</b> brio<br><i>sempre legato</i>", 0)
	if err != nil {
		t.Fatalf("NewRichText() error: %v", err)
	}
	lines := r.Lines()
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if got := r.PlainText(); got != "Moderato con brio\nsempre legato" {
		t.Errorf("PlainText() = %q", got)
	}

	var bold *Run
	for i := range lines[0] {
		if lines[0][i].Style.Bold {
			bold = &lines[0][i]
		}
	}
	if bold == nil || bold.Text != "con" {
		t.Errorf("bold run = %v, want \"con\"", bold)
	}
	if !lines[1][0].Style.Italic {
		t.Error("second line should be italic")
	}
}

func TestRichTextParagraphs(t *testing.T) {
	r, err := NewRichText(pt(0, 0), nil, "<p>first</p><p>second</p>", 0)
	if err != nil {
		t.Fatalf("NewRichText() error: %v", err)
	}
	if got := r.PlainText(); got != "first\nsecond" {
		t.Errorf("PlainText() = %q, want \"first\\nsecond\"", got)
	}
}

func TestRichTextRender(t *testing.T) {
	r, err := NewRichText(pt(0, 0), nil, "one<br>two", 10)
	if err != nil {
		t.Fatalf("NewRichText() error: %v", err)
	}
	rec := &recordRenderer{}
	r.RenderComplete(testContext(rec), pt(0, 0), nil)

	if len(rec.texts) != 2 {
		t.Fatalf("got %d text draws, want 2", len(rec.texts))
	}
	if rec.texts[0].text != "one" || rec.texts[1].text != "two" {
		t.Errorf("drew %q then %q, want one then two", rec.texts[0].text, rec.texts[1].text)
	}
	// Baselines advance by the leading: 1.2 times the point size.
	if got := rec.texts[1].pos.Y.Sub(rec.texts[0].pos.Y).In(units.GraphicUnit); !almostEqual(got, 12) {
		t.Errorf("leading = %v, want 12", got)
	}
}
