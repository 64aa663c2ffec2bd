package smufl

import (
	"errors"
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// ErrUnknownGlyph is returned when a glyph cannot be resolved from the
// font's metadata or the font file.
var ErrUnknownGlyph = errors.New("unknown glyph")

// Font resolves glyph metrics against a concrete staff-space unit.
//
// Metrics come from SMuFL metadata when present; when a font file is also
// loaded, glyphs missing from the metadata fall back to bounds computed
// from the font's glyph outlines via the cmap.
type Font struct {
	meta       *Metadata
	unit       units.Kind
	codepoints map[string]rune

	otf *sfnt.Font
	buf sfnt.Buffer
}

// NewFont binds SMuFL metadata to a staff-space unit. The unit should be
// the owning staff's unit: one staff space equals one unit.
func NewFont(meta *Metadata, unit units.Kind) *Font {
	return &Font{meta: meta, unit: unit, codepoints: defaultCodepoints}
}

// NewFontWithData additionally parses the font file (TTF or OTF), enabling
// metric fallback for glyphs absent from the metadata.
func NewFontWithData(meta *Metadata, data []byte, unit units.Kind) (*Font, error) {
	otf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing music font: %w", err)
	}
	f := NewFont(meta, unit)
	f.otf = otf
	return f, nil
}

// Name returns the font name declared in the metadata.
func (f *Font) Name() string { return f.meta.FontName }

// Unit returns the staff-space unit the font's metrics are expressed in.
func (f *Font) Unit() units.Kind { return f.unit }

// SetCodepoints installs a glyph-name-to-codepoint table (see
// [ParseGlyphnames]), used for font-file metric fallback. A built-in table
// covering the common glyphs is installed by default.
func (f *Font) SetCodepoints(table map[string]rune) {
	f.codepoints = table
}

// Codepoint resolves a canonical glyph name to its codepoint.
func (f *Font) Codepoint(name string) (rune, bool) {
	cp, ok := f.codepoints[name]
	return cp, ok
}

// EngravingDefault returns a named engraving default (line thicknesses and
// the like) as a staff-space length. Missing keys yield zero.
func (f *Font) EngravingDefault(key string) units.Unit {
	return f.unit.New(f.meta.EngravingDefaults[key])
}

// BoundingRect returns a glyph's bounding rectangle relative to its origin
// on the baseline, in staff units with y pointing down (the layout
// engine's convention; SMuFL metadata is y-up and is flipped here).
func (f *Font) BoundingRect(name string) (geom.Rect, error) {
	if bbox, ok := f.meta.GlyphBBoxes[name]; ok {
		return geom.NewRect(
			f.unit.New(bbox.SW[0]),
			f.unit.New(-bbox.NE[1]),
			f.unit.New(bbox.Width()),
			f.unit.New(bbox.Height()),
		), nil
	}
	return f.boundingRectFromOutline(name)
}

// AdvanceWidth returns a glyph's horizontal advance in staff units.
func (f *Font) AdvanceWidth(name string) (units.Unit, error) {
	if adv, ok := f.meta.GlyphAdvanceWidths[name]; ok {
		return f.unit.New(adv), nil
	}
	// Fall back to the bounding box width; SMuFL advance tables are
	// optional and most fringe layout only needs visual width.
	rect, err := f.BoundingRect(name)
	if err != nil {
		return units.ZERO, err
	}
	return rect.Width, nil
}

// boundingRectFromOutline computes glyph bounds from the font file. One
// staff space is a quarter of the em square per the SMuFL spec.
func (f *Font) boundingRectFromOutline(name string) (geom.Rect, error) {
	if f.otf == nil {
		return geom.Rect{}, fmt.Errorf("%w: %q not in metadata and no font file loaded", ErrUnknownGlyph, name)
	}
	cp, ok := f.codepoints[name]
	if !ok {
		return geom.Rect{}, fmt.Errorf("%w: no codepoint known for %q", ErrUnknownGlyph, name)
	}

	gi, err := f.otf.GlyphIndex(&f.buf, cp)
	if err != nil || gi == 0 {
		return geom.Rect{}, fmt.Errorf("%w: %q (U+%04X) not in font", ErrUnknownGlyph, name, cp)
	}
	upem := fixed.Int26_6(f.otf.UnitsPerEm())
	bounds, _, err := f.otf.GlyphBounds(&f.buf, gi, upem<<6, font.HintingNone)
	if err != nil {
		return geom.Rect{}, fmt.Errorf("reading bounds for %q: %w", name, err)
	}

	// With ppem equal to the em size, bounds are in font units; one staff
	// space is upem/4 font units.
	space := float64(upem) / 4
	scale := func(v fixed.Int26_6) float64 {
		return float64(v) / 64 / space
	}
	return geom.NewRect(
		f.unit.New(scale(bounds.Min.X)),
		f.unit.New(scale(bounds.Min.Y)),
		f.unit.New(scale(bounds.Max.X-bounds.Min.X)),
		f.unit.New(scale(bounds.Max.Y-bounds.Min.Y)),
	), nil
}
