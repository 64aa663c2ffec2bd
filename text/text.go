// Package text provides the textual elements placed in a score: plain
// text labels, runs of music-font glyphs, and rich text parsed from HTML
// markup.
package text

import (
	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
)

// DefaultSizePt is the point size used when none is given.
const DefaultSizePt = 12.0

// Text is a single-line plain text element. Its position is the baseline
// origin of the first character.
type Text struct {
	core.ObjectBase

	content string
	sizePt  float64
}

// NewText creates a text element.
func NewText(pos geom.Point, parent core.Object, content string, sizePt float64) *Text {
	if sizePt <= 0 {
		sizePt = DefaultSizePt
	}
	t := &Text{content: content, sizePt: sizePt}
	t.Init(t, pos, parent)
	return t
}

// Content returns the text.
func (t *Text) Content() string { return t.content }

// SizePt returns the point size.
func (t *Text) SizePt() float64 { return t.sizePt }

// SetContent replaces the text.
func (t *Text) SetContent(content string) { t.content = content }

// RenderComplete draws the text at its baseline origin.
func (t *Text) RenderComplete(rc *core.RenderContext, pos geom.Point, _ *core.Line) {
	rc.Renderer.DrawText(t.content, pos, t.sizePt)
}
