// Package render provides drawing backends for the layout engine's
// renderer contract. ImageRenderer rasterizes a document onto an RGBA
// canvas and can encode it as PNG.
package render

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// ImageRenderer draws render calls onto a raster canvas. Coordinates are
// document canvas space; one graphic unit maps to scale pixels.
//
// Text draws with the library's built-in bitmap face until a text font is
// installed. Glyphs draw as bounding box outlines until a music font is
// installed; scores rendered without font files remain structurally
// faithful previews.
type ImageRenderer struct {
	ctx   *gg.Context
	scale float64

	textFont *truetype.Font

	musicFont       *truetype.Font
	musicCodepoints map[string]rune
	musicSizePt     float64
}

var _ core.Renderer = (*ImageRenderer)(nil)

// NewImageRenderer creates a white canvas covering width by height
// graphic units at the given pixels-per-unit scale.
func NewImageRenderer(width, height units.Unit, scale float64) *ImageRenderer {
	w := int(math.Ceil(width.In(units.GraphicUnit) * scale))
	h := int(math.Ceil(height.In(units.GraphicUnit) * scale))
	ctx := gg.NewContext(w, h)
	ctx.SetRGB(1, 1, 1)
	ctx.Clear()
	ctx.SetRGB(0, 0, 0)
	return &ImageRenderer{ctx: ctx, scale: scale}
}

// SetTextFont installs a TTF font for text drawing.
func (r *ImageRenderer) SetTextFont(data []byte) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing text font: %w", err)
	}
	r.textFont = f
	return nil
}

// SetMusicFont installs a SMuFL font file for glyph drawing. codepoints
// maps canonical glyph names to runes (see smufl.ParseGlyphnames);
// staffSpace is the staff unit the score is engraved at, which fixes the
// music font size: a SMuFL font's staff space is a quarter of its em.
func (r *ImageRenderer) SetMusicFont(data []byte, codepoints map[string]rune, staffSpace units.Unit) error {
	f, err := truetype.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing music font: %w", err)
	}
	r.musicFont = f
	r.musicCodepoints = codepoints
	r.musicSizePt = 4 * staffSpace.In(units.GraphicUnit)
	return nil
}

func (r *ImageRenderer) px(u units.Unit) float64 {
	return u.In(units.GraphicUnit) * r.scale
}

// DrawLine strokes a line segment.
func (r *ImageRenderer) DrawLine(from, to geom.Point, thickness units.Unit) {
	r.ctx.SetLineWidth(math.Max(r.px(thickness), 1))
	r.ctx.DrawLine(r.px(from.X), r.px(from.Y), r.px(to.X), r.px(to.Y))
	r.ctx.Stroke()
}

// DrawRect strokes a rectangle outline.
func (r *ImageRenderer) DrawRect(rect geom.Rect, thickness units.Unit) {
	r.ctx.SetLineWidth(math.Max(r.px(thickness), 1))
	r.ctx.DrawRectangle(r.px(rect.X), r.px(rect.Y), r.px(rect.Width), r.px(rect.Height))
	r.ctx.Stroke()
}

// DrawGlyph draws a music glyph at its baseline origin, falling back to
// the glyph's bounding box outline when no music font is installed.
func (r *ImageRenderer) DrawGlyph(name string, pos geom.Point, bounds geom.Rect) {
	if r.musicFont != nil {
		if cp, ok := r.musicCodepoints[name]; ok {
			face := truetype.NewFace(r.musicFont, &truetype.Options{Size: r.musicSizePt * r.scale})
			r.ctx.SetFontFace(face)
			r.ctx.DrawString(string(cp), r.px(pos.X), r.px(pos.Y))
			return
		}
	}
	r.ctx.SetLineWidth(1)
	r.ctx.DrawRectangle(
		r.px(pos.X.Add(bounds.X)), r.px(pos.Y.Add(bounds.Y)),
		r.px(bounds.Width), r.px(bounds.Height))
	r.ctx.Stroke()
}

// DrawText draws a text string at its baseline origin.
func (r *ImageRenderer) DrawText(content string, pos geom.Point, sizePt float64) {
	if r.textFont != nil {
		face := truetype.NewFace(r.textFont, &truetype.Options{Size: sizePt * r.scale})
		r.ctx.SetFontFace(face)
	}
	r.ctx.DrawString(content, r.px(pos.X), r.px(pos.Y))
}

// Image returns the canvas.
func (r *ImageRenderer) Image() image.Image {
	return r.ctx.Image()
}

// EncodePNG writes the canvas as PNG.
func (r *ImageRenderer) EncodePNG(w io.Writer) error {
	return r.ctx.EncodePNG(w)
}

// SavePNG writes the canvas to a PNG file.
func (r *ImageRenderer) SavePNG(path string) error {
	return r.ctx.SavePNG(path)
}
