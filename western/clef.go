package western

import (
	"fmt"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// ClefType describes a clef shape: its SMuFL glyph and the vertical
// positions it implies, both in staff units measured down from the top
// staff line.
type ClefType struct {
	// Glyph is the SMuFL canonical glyph name.
	Glyph string

	// StaffPos is the glyph origin's vertical position.
	StaffPos float64

	// MiddleCPos is the staff position of middle C under this clef.
	MiddleCPos float64
}

var (
	TrebleClef     = ClefType{"gClef", 3, 5}
	BassClef       = ClefType{"fClef", 1, -1}
	AltoClef       = ClefType{"cClef", 2, 2}
	TenorClef      = ClefType{"cClef", 1, 1}
	PercussionClef = ClefType{"unpitchedPercussionClef1", 2, 2}
)

// Clef is a staff modifier marking how pitches are read from its position
// until the next clef. Its glyph metrics are resolved once at construction
// from the staff's music font.
type Clef struct {
	core.ObjectBase

	staff    *Staff
	clefType ClefType
	bounds   geom.Rect
}

// NewClef creates a clef at the given timeline position on a staff. The
// vertical position comes from the clef type.
func NewClef(posX units.Unit, staff *Staff, t ClefType) (*Clef, error) {
	bounds, err := staff.MusicFont().BoundingRect(t.Glyph)
	if err != nil {
		return nil, fmt.Errorf("creating clef: %w", err)
	}
	c := &Clef{staff: staff, clefType: t, bounds: bounds}
	c.Init(c, geom.NewPoint(posX, staff.unit.New(t.StaffPos)), staff)
	return c, nil
}

// Type returns the clef's type.
func (c *Clef) Type() ClefType { return c.clefType }

// Kind identifies the modifier as a clef.
func (c *Clef) Kind() ModifierKind { return KindClef }

// VisualWidth is the clef glyph's bounding width.
func (c *Clef) VisualWidth() units.Unit { return c.bounds.Width }

// MiddleCStaffPosition returns the vertical staff position of middle C
// implied by this clef, measured down from the top staff line.
func (c *Clef) MiddleCStaffPosition() units.Unit {
	return c.staff.unit.New(c.clefType.MiddleCPos)
}

// RenderComplete draws the clef glyph at its staff position.
func (c *Clef) RenderComplete(rc *core.RenderContext, pos geom.Point, _ *core.Line) {
	rc.Renderer.DrawGlyph(c.clefType.Glyph, pos, c.bounds)
}
