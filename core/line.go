package core

import (
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// MarginController declares that content at a given timeline position
// needs leading margin space when a line begins at or after it. Staves
// register one controller per clef, key signature and time signature so
// that the line breaker never starts a line where an active fringe element
// would have no room to render.
//
// Controllers sharing a tag supersede each other: at any break position,
// only the latest controller of each tag at or before the break is in
// force, and the margins of distinct tags are summed.
type MarginController struct {
	// FlowableX is the timeline position from which this controller is
	// in force.
	FlowableX units.Unit

	// Width is the required margin width.
	Width units.Unit

	// Tag groups controllers that supersede each other.
	Tag string
}

// Line is one segment of a broken flowable timeline: a break location.
// Lines are computed by the line breaker and are terminal once computed;
// any change to the flowable's content, controllers or page geometry
// discards them.
type Line struct {
	// FlowableX is the start offset of this line in the timeline.
	FlowableX units.Unit

	// Length is how much timeline content the line carries.
	Length units.Unit

	// Pos is the line's logical zero relative to its page's live-area
	// origin. Fringe decorations render at negative x offsets from here.
	Pos geom.Point

	// Page is the page the line renders on.
	Page *Page
}

// End returns the timeline position just past the line's content.
func (l *Line) End() units.Unit {
	return l.FlowableX.Add(l.Length)
}

// CanvasPos returns the line's logical zero in document canvas space.
func (l *Line) CanvasPos() geom.Point {
	return DocumentPos(l.Page).Add(l.Pos)
}

// Covers reports whether a timeline position falls within this line,
// start inclusive, end exclusive.
func (l *Line) Covers(x units.Unit) bool {
	return x.Ge(l.FlowableX) && x.Lt(l.End())
}
