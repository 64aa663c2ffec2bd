package western

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/smufl"
	"github.com/cantus/engrave/units"
)

// ErrNoClef is returned when a query needs an active clef and none is in
// force at the given position.
var ErrNoClef = errors.New("no clef is active at this position")

// StaffOptions configures a new staff. The zero value selects the
// defaults: five lines, 1.75mm spacing, built-in Bravura metadata, no
// group.
type StaffOptions struct {
	// LineCount is the number of staff lines.
	LineCount int

	// LineSpacing is the distance between adjacent staff lines. It defines
	// the staff's unit: one staff unit equals one line spacing.
	LineSpacing units.Unit

	// Metadata is the SMuFL metadata of the staff's music font.
	Metadata *smufl.Metadata

	// Group joins the staff to a fringe-alignment group.
	Group *StaffGroup
}

// Staff is a run of horizontal lines carrying musical content along its
// flowable's timeline. It indexes the clefs, key signatures and time
// signatures among its descendants and computes the fringe layout for
// every line it renders on.
type Staff struct {
	core.ObjectBase

	length      units.Unit
	lineCount   int
	lineSpacing units.Unit
	unit        units.Kind
	font        *smufl.Font
	group       *StaffGroup

	index       map[ModifierKind][]indexEntry
	fringeCache map[*core.Line]FringeLayout
}

// indexEntry pairs a modifier with its position in staff-timeline space.
type indexEntry struct {
	x   units.Unit
	mod StaffModifier
}

// NewStaff creates a staff of the given timeline length. opts may be nil
// for the defaults.
func NewStaff(pos geom.Point, parent core.Object, length units.Unit, opts *StaffOptions) *Staff {
	if opts == nil {
		opts = &StaffOptions{}
	}
	lineCount := opts.LineCount
	if lineCount == 0 {
		lineCount = 5
	}
	lineSpacing := opts.LineSpacing
	if lineSpacing.Eq(units.ZERO) {
		lineSpacing = units.Mm.New(1.75)
	}
	meta := opts.Metadata
	if meta == nil {
		meta = smufl.Bravura()
	}

	s := &Staff{
		length:      length,
		lineCount:   lineCount,
		lineSpacing: lineSpacing,
	}
	s.unit = units.MakeKind("su", lineSpacing)
	s.font = smufl.NewFont(meta, s.unit)
	s.Init(s, pos, parent)
	if opts.Group != nil {
		s.group = opts.Group
		opts.Group.add(s)
	}
	return s
}

// Unit returns the staff's unit kind: one unit equals one line spacing.
func (s *Staff) Unit() units.Kind { return s.unit }

// MusicFont returns the font metrics bound to this staff's unit.
func (s *Staff) MusicFont() *smufl.Font { return s.font }

// LineCount returns the number of staff lines.
func (s *Staff) LineCount() int { return s.lineCount }

// LineSpacing returns the distance between adjacent staff lines.
func (s *Staff) LineSpacing() units.Unit { return s.lineSpacing }

// Group returns the staff's fringe-alignment group, nil when ungrouped.
func (s *Staff) Group() *StaffGroup { return s.group }

// BreakableLength is the staff's timeline length; staves wrap across
// lines with their flowable.
func (s *Staff) BreakableLength() units.Unit { return s.length }

// Height returns the distance from the top line to the bottom line.
func (s *Staff) Height() units.Unit {
	return s.unit.New(float64(s.lineCount - 1))
}

// CenterY returns the vertical center of the staff.
func (s *Staff) CenterY() units.Unit {
	return s.Height().Div(2)
}

// BarlineExtent returns the vertical span bar lines should cover on this
// staff. Single-line staves extend one unit to each side of the line.
func (s *Staff) BarlineExtent() (top, bottom units.Unit) {
	if s.lineCount == 1 {
		return s.unit.New(-1), s.unit.New(1)
	}
	return units.ZERO, s.Height()
}

// YInsideStaff reports whether a vertical position lies on or between the
// outer staff lines.
func (s *Staff) YInsideStaff(y units.Unit) bool {
	return y.Ge(units.ZERO) && y.Le(s.Height())
}

// YOnLedger reports whether a vertical position outside the staff lies
// exactly on a ledger line position.
func (s *Staff) YOnLedger(y units.Unit) bool {
	if s.YInsideStaff(y) {
		return false
	}
	pos := y.In(s.unit)
	return math.Abs(pos-math.Round(pos)) < 1e-9
}

// LedgersNeededFor returns the vertical positions of the ledger lines
// needed to support content at y, from the staff outward.
func (s *Staff) LedgersNeededFor(y units.Unit) []units.Unit {
	pos := y.In(s.unit)
	bottom := float64(s.lineCount - 1)
	var ledgers []units.Unit
	for line := bottom + 1; line <= math.Floor(pos+1e-9); line++ {
		ledgers = append(ledgers, s.unit.New(line))
	}
	for line := -1.0; line >= math.Ceil(pos-1e-9); line-- {
		ledgers = append(ledgers, s.unit.New(line))
	}
	return ledgers
}

// DescendantPosX returns an object's position in staff-timeline space: the
// sum of local x positions from the object up to the staff.
func (s *Staff) DescendantPosX(obj core.Object) (units.Unit, error) {
	x := units.ZERO
	for node := obj; node != nil; node = node.Base().Parent() {
		if node == core.Object(s) {
			return x, nil
		}
		x = x.Add(node.Base().X())
	}
	return units.ZERO, fmt.Errorf("object is not a descendant of the staff")
}

// modifierIndex returns the staff's position-sorted modifier entries of
// one kind, rebuilding the index when stale.
func (s *Staff) modifierIndex(kind ModifierKind) []indexEntry {
	if s.index == nil {
		s.buildIndex()
	}
	return s.index[kind]
}

func (s *Staff) buildIndex() {
	s.index = make(map[ModifierKind][]indexEntry)
	s.collectModifiers(s, units.ZERO)
	for _, entries := range s.index {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].x.Lt(entries[j].x)
		})
	}
}

func (s *Staff) collectModifiers(node core.Object, offset units.Unit) {
	for _, child := range node.Base().Children() {
		x := offset.Add(child.Base().X())
		if mod, ok := child.(StaffModifier); ok {
			s.index[mod.Kind()] = append(s.index[mod.Kind()], indexEntry{x, mod})
		}
		s.collectModifiers(child, x)
	}
}

// activeAt returns the last modifier of a kind at or before x, nil when
// none is in force yet.
func (s *Staff) activeAt(kind ModifierKind, x units.Unit) StaffModifier {
	entries := s.modifierIndex(kind)
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].x.Le(x) {
			return entries[i].mod
		}
	}
	return nil
}

// ActiveClefAt returns the clef in force at a staff-timeline position. A
// clef exactly at x is already in force.
func (s *Staff) ActiveClefAt(x units.Unit) *Clef {
	if mod := s.activeAt(KindClef, x); mod != nil {
		return mod.(*Clef)
	}
	return nil
}

// ActiveKeySignatureAt returns the key signature in force at a
// staff-timeline position.
func (s *Staff) ActiveKeySignatureAt(x units.Unit) *KeySignature {
	if mod := s.activeAt(KindKeySignature, x); mod != nil {
		return mod.(*KeySignature)
	}
	return nil
}

// ActiveTimeSignatureAt returns the time signature in force at a
// staff-timeline position.
func (s *Staff) ActiveTimeSignatureAt(x units.Unit) *TimeSignature {
	if mod := s.activeAt(KindTimeSignature, x); mod != nil {
		return mod.(*TimeSignature)
	}
	return nil
}

// TimeSignatureExactlyAt returns the time signature sitting exactly at a
// staff-timeline position, nil otherwise. Fringes restate a meter only
// when a line break falls directly on one.
func (s *Staff) TimeSignatureExactlyAt(x units.Unit) *TimeSignature {
	for _, e := range s.modifierIndex(KindTimeSignature) {
		if e.x.Eq(x) {
			return e.mod.(*TimeSignature)
		}
	}
	return nil
}

// MiddleCAt returns the vertical staff position of middle C at a
// staff-timeline position, per the active clef.
func (s *Staff) MiddleCAt(x units.Unit) (units.Unit, error) {
	clef := s.ActiveClefAt(x)
	if clef == nil {
		return units.ZERO, fmt.Errorf("%w: %v", ErrNoClef, x)
	}
	return clef.MiddleCStaffPosition(), nil
}

// DistanceToNextOfType returns the timeline distance from a modifier to
// the next modifier of the same kind, or to the staff's end when it is the
// last of its kind.
func (s *Staff) DistanceToNextOfType(mod StaffModifier) (units.Unit, error) {
	x, err := s.DescendantPosX(mod)
	if err != nil {
		return units.ZERO, err
	}
	for _, e := range s.modifierIndex(mod.Kind()) {
		if e.x.Gt(x) {
			return e.x.Sub(x), nil
		}
	}
	return s.length.Sub(x), nil
}

// FringeLayoutAt returns the fringe layout for one line of this staff.
// Grouped staves delegate to their group so edges stay aligned across
// members; layouts are cached per line until the next structural change
// or the end of the render pass.
func (s *Staff) FringeLayoutAt(line *core.Line) FringeLayout {
	if s.group != nil {
		return s.group.FringeLayoutAt(s, line)
	}
	if layout, ok := s.fringeCache[line]; ok {
		return layout
	}
	layout := s.isolatedFringeLayout(line)
	if s.fringeCache == nil {
		s.fringeCache = make(map[*core.Line]FringeLayout)
	}
	s.fringeCache[line] = layout
	return layout
}

// isolatedFringeLayout computes the fringe for one line ignoring any
// group, walking the layers right to left from the line's logical zero.
func (s *Staff) isolatedFringeLayout(line *core.Line) FringeLayout {
	posX := units.ZERO
	if line != nil {
		if f := core.AncestorFlowable(s); f != nil {
			if staffX, err := f.DescendantPosX(s); err == nil {
				posX = line.FlowableX.Sub(staffX)
			}
		}
	}
	// Lines beginning before the staff does get the staff-start fringe.
	if posX.Lt(units.ZERO) {
		posX = units.ZERO
	}

	layout := FringeLayout{PosXInStaff: posX}
	current := units.ZERO
	if ts := s.TimeSignatureExactlyAt(posX); ts != nil {
		current = current.Sub(ts.VisualWidth())
		layout.TimeSignature = FringeEdge{X: current, Present: true}
		current = current.Sub(s.unit.New(timeSigFringePadding))
	}
	if key := s.ActiveKeySignatureAt(posX); key != nil {
		current = current.Sub(key.VisualWidth())
		layout.KeySignature = FringeEdge{X: current, Present: true}
		current = current.Sub(s.unit.New(keySigFringePadding))
	}
	if clef := s.ActiveClefAt(posX); clef != nil {
		current = current.Sub(clef.VisualWidth())
		layout.Clef = FringeEdge{X: current, Present: true}
	}
	layout.Staff = current.Sub(s.unit.New(staffFringePadding))
	return layout
}

// DescendantsChanged drops the modifier index and fringe caches when the
// subtree below the staff changes.
func (s *Staff) DescendantsChanged() {
	s.index = nil
	s.fringeCache = nil
	if s.group != nil {
		s.group.invalidate()
	}
}

// PreRender rebuilds the modifier index and registers one margin
// controller per modifier with the staff's flowable, so line breaks never
// start where an active fringe would have no room.
func (s *Staff) PreRender() {
	s.DescendantsChanged()
	flowable := core.AncestorFlowable(s)
	if flowable == nil {
		return
	}
	staffX, err := flowable.DescendantPosX(s)
	if err != nil {
		return
	}
	kinds := []struct {
		kind    ModifierKind
		padding float64
	}{
		{KindClef, staffFringePadding},
		{KindKeySignature, keySigFringePadding},
		{KindTimeSignature, timeSigFringePadding},
	}
	for _, k := range kinds {
		for _, e := range s.modifierIndex(k.kind) {
			flowable.AddMarginController(core.MarginController{
				FlowableX: staffX.Add(e.x),
				Width:     e.mod.VisualWidth().Add(s.unit.New(k.padding)),
				Tag:       k.kind.String(),
			})
		}
	}
}

// PostRender drops all per-pass caches.
func (s *Staff) PostRender() {
	s.DescendantsChanged()
}

// RenderComplete draws the staff when it fits entirely on one line.
func (s *Staff) RenderComplete(rc *core.RenderContext, pos geom.Point, line *core.Line) {
	s.renderSlice(rc, pos, line, s.length)
}

// RenderBeforeBreak draws the staff's first slice up to the line's end.
func (s *Staff) RenderBeforeBreak(rc *core.RenderContext, pos geom.Point, line *core.Line) {
	length := s.length
	if f := core.AncestorFlowable(s); f != nil {
		if staffX, err := f.DescendantPosX(s); err == nil {
			length = line.End().Sub(staffX)
		}
	}
	s.renderSlice(rc, pos, line, length)
}

// RenderSpanningContinuation draws a full intermediate line of the staff.
func (s *Staff) RenderSpanningContinuation(rc *core.RenderContext, pos geom.Point, line *core.Line, _ units.Unit) {
	s.renderSlice(rc, pos, line, line.Length)
}

// RenderAfterBreak draws the staff's final slice.
func (s *Staff) RenderAfterBreak(rc *core.RenderContext, pos geom.Point, line *core.Line, objectX units.Unit) {
	s.renderSlice(rc, pos, line, s.length.Sub(objectX))
}

// renderSlice draws the staff lines for one slice. The lines extend left
// of pos into the fringe, to the staff edge the fringe layout computed.
func (s *Staff) renderSlice(rc *core.RenderContext, pos geom.Point, line *core.Line, length units.Unit) {
	fringe := s.FringeLayoutAt(line)
	left := pos.X.Add(fringe.Staff)
	right := pos.X.Add(length)
	thickness := s.font.EngravingDefault("staffLineThickness")
	for i := 0; i < s.lineCount; i++ {
		y := pos.Y.Add(s.unit.New(float64(i)))
		rc.Renderer.DrawLine(geom.NewPoint(left, y), geom.NewPoint(right, y), thickness)
	}
}
