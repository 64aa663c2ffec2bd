package core

import (
	"github.com/charmbracelet/log"

	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// Renderer is the drawing backend consumed by the render pass. The layout
// core never draws anything itself; it computes final document-space
// geometry and issues these primitive calls. Implementations turn them
// into pixels, vectors, or test records.
//
// All coordinates are in document canvas space.
type Renderer interface {
	// DrawLine draws a straight line segment of the given thickness.
	DrawLine(from, to geom.Point, thickness units.Unit)

	// DrawRect draws an unfilled rectangle outline.
	DrawRect(rect geom.Rect, thickness units.Unit)

	// DrawGlyph draws a single music glyph identified by its SMuFL
	// canonical name. pos is the glyph origin on the baseline; bounds is
	// the glyph's bounding rectangle relative to pos, already resolved by
	// the font metrics provider.
	DrawGlyph(name string, pos geom.Point, bounds geom.Rect)

	// DrawText draws a plain text string at the given baseline origin
	// with the given point size.
	DrawText(text string, pos geom.Point, sizePt float64)
}

// RenderContext carries the per-pass collaborators handed to every render
// call: the drawing backend and the pass logger.
type RenderContext struct {
	Renderer Renderer
	Logger   *log.Logger
}
