package western

import (
	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/units"
)

// StaffGroup aligns the line fringes of a set of staves rendered
// together. The staff, clef and key signature edges of every member are
// pushed out to the leftmost member's staff edge, so the group reads as
// one system; time signatures stay right-aligned against each line's
// logical zero independently per staff.
//
// Staves join a group through [StaffOptions].
type StaffGroup struct {
	staves []*Staff
	cache  map[groupKey]FringeLayout
}

type groupKey struct {
	staff *Staff
	line  *core.Line
}

// NewStaffGroup creates an empty group.
func NewStaffGroup() *StaffGroup {
	return &StaffGroup{}
}

func (g *StaffGroup) add(s *Staff) {
	g.staves = append(g.staves, s)
	g.invalidate()
}

// Staves returns the member staves in join order.
func (g *StaffGroup) Staves() []*Staff {
	return g.staves
}

// FringeLayoutAt returns a member's aligned fringe layout for one line.
// All members' layouts for the line are computed and cached together, so
// repeated lookups are cheap and mutually consistent.
func (g *StaffGroup) FringeLayoutAt(staff *Staff, line *core.Line) FringeLayout {
	if layout, ok := g.cache[groupKey{staff, line}]; ok {
		return layout
	}

	member := false
	for _, s := range g.staves {
		if s == staff {
			member = true
			break
		}
	}
	if !member {
		return staff.isolatedFringeLayout(line)
	}

	// The leftmost isolated staff edge is the alignment basis.
	isolated := make([]FringeLayout, len(g.staves))
	basis := units.ZERO
	for i, s := range g.staves {
		isolated[i] = s.isolatedFringeLayout(line)
		if isolated[i].Staff.Lt(basis) {
			basis = isolated[i].Staff
		}
	}

	if g.cache == nil {
		g.cache = make(map[groupKey]FringeLayout)
	}
	var result FringeLayout
	for i, s := range g.staves {
		aligned := isolated[i]
		delta := basis.Sub(aligned.Staff)
		if !delta.Eq(units.ZERO) {
			aligned.Staff = basis
			if aligned.Clef.Present {
				aligned.Clef.X = aligned.Clef.X.Add(delta)
			}
			if aligned.KeySignature.Present {
				aligned.KeySignature.X = aligned.KeySignature.X.Add(delta)
			}
			// Time signatures are never shifted.
		}
		g.cache[groupKey{s, line}] = aligned
		if s == staff {
			result = aligned
		}
	}
	return result
}

// invalidate drops all cached layouts. Called whenever any member staff's
// modifier index changes, and at the pass boundaries.
func (g *StaffGroup) invalidate() {
	g.cache = nil
}
