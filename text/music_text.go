package text

import (
	"fmt"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/smufl"
	"github.com/cantus/engrave/units"
)

// MusicText is a horizontal run of music-font glyphs, used for dynamics,
// ornaments and other symbol sequences. Glyph metrics are resolved once at
// construction against the font's staff unit.
type MusicText struct {
	core.ObjectBase

	font   *smufl.Font
	glyphs []string
	bounds []geom.Rect
	width  units.Unit
}

// NewMusicText creates a glyph run. All glyphs must resolve in the font.
func NewMusicText(pos geom.Point, parent core.Object, font *smufl.Font, glyphs ...string) (*MusicText, error) {
	m := &MusicText{
		font:   font,
		glyphs: glyphs,
		bounds: make([]geom.Rect, len(glyphs)),
	}
	for i, g := range glyphs {
		bounds, err := font.BoundingRect(g)
		if err != nil {
			return nil, fmt.Errorf("music text: %w", err)
		}
		m.bounds[i] = bounds
		adv, err := font.AdvanceWidth(g)
		if err != nil {
			return nil, fmt.Errorf("music text: %w", err)
		}
		m.width = m.width.Add(adv)
	}
	m.Init(m, pos, parent)
	return m, nil
}

// Glyphs returns the run's glyph names.
func (m *MusicText) Glyphs() []string { return m.glyphs }

// Width returns the run's total advance width.
func (m *MusicText) Width() units.Unit { return m.width }

// RenderComplete draws the glyphs left to right from the run's origin.
func (m *MusicText) RenderComplete(rc *core.RenderContext, pos geom.Point, _ *core.Line) {
	x := pos.X
	for i, g := range m.glyphs {
		rc.Renderer.DrawGlyph(g, geom.NewPoint(x, pos.Y), m.bounds[i])
		adv, err := m.font.AdvanceWidth(g)
		if err != nil {
			return
		}
		x = x.Add(adv)
	}
}
