package western

import (
	"github.com/cantus/engrave/units"
)

// Fringe layer paddings in staff units, applied between layers while
// walking right to left from the line's logical zero.
const (
	timeSigFringePadding = 0.5 // left of the time signature
	keySigFringePadding  = 0.5 // left of the key signature
	staffFringePadding   = 0.5 // leftmost, before the staff's own edge
)

// FringeEdge is the left edge of one optional fringe layer. Absent layers
// are distinct from layers at offset zero.
type FringeEdge struct {
	// X is the layer's left edge relative to the line's logical zero.
	// Fringes extend leftward, so present edges are negative or zero.
	X units.Unit

	// Present reports whether the layer appears in this fringe at all.
	Present bool
}

// FringeLayout gives the horizontal offsets, relative to a line's logical
// zero, of everything a staff draws in the line's leading fringe. Offsets
// are computed by walking right to left: time signature (only when a break
// falls exactly on one), key signature, clef, then the staff's own edge,
// with fixed paddings between layers.
//
// Within a [StaffGroup], the staff, clef and key signature edges are
// aligned to the leftmost member while time signatures stay right-aligned
// against the logical zero independently per staff.
type FringeLayout struct {
	// PosXInStaff is the staff-timeline position the fringe was computed
	// for: where the line begins within the staff, clamped to zero for
	// lines starting before the staff does.
	PosXInStaff units.Unit

	// Staff is the left edge of the staff lines themselves.
	Staff units.Unit

	Clef          FringeEdge
	KeySignature  FringeEdge
	TimeSignature FringeEdge
}
