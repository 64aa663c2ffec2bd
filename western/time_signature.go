package western

import (
	"fmt"
	"strconv"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// Meter is a numeric time signature: beats per measure over beat division.
type Meter struct {
	Upper int
	Lower int
}

// CommonTime is 4/4.
var CommonTime = Meter{4, 4}

// String returns the meter as "4/4".
func (m Meter) String() string {
	return fmt.Sprintf("%d/%d", m.Upper, m.Lower)
}

// digitGlyphs returns the SMuFL digit glyph run spelling n.
func digitGlyphs(n int) []string {
	s := strconv.Itoa(n)
	glyphs := make([]string, len(s))
	for i, d := range s {
		glyphs[i] = "timeSig" + string(d)
	}
	return glyphs
}

// TimeSignature is a staff modifier marking the meter in force from its
// position. Unlike clefs and key signatures, a time signature appears in a
// line fringe only when a line break falls exactly on it; meters do not
// restate on later lines.
type TimeSignature struct {
	core.ObjectBase

	staff *Staff
	meter Meter

	upperGlyphs []string
	lowerGlyphs []string
	upperWidth  units.Unit
	lowerWidth  units.Unit
	width       units.Unit
}

// NewTimeSignature creates a time signature at the given timeline position
// on a staff. Its visual width is the wider of the two stacked digit runs.
func NewTimeSignature(posX units.Unit, staff *Staff, meter Meter) (*TimeSignature, error) {
	ts := &TimeSignature{
		staff:       staff,
		meter:       meter,
		upperGlyphs: digitGlyphs(meter.Upper),
		lowerGlyphs: digitGlyphs(meter.Lower),
	}
	var err error
	if ts.upperWidth, err = runWidth(staff, ts.upperGlyphs); err != nil {
		return nil, fmt.Errorf("creating %v time signature: %w", meter, err)
	}
	if ts.lowerWidth, err = runWidth(staff, ts.lowerGlyphs); err != nil {
		return nil, fmt.Errorf("creating %v time signature: %w", meter, err)
	}
	ts.width = units.Max(ts.upperWidth, ts.lowerWidth)
	ts.Init(ts, geom.NewPoint(posX, units.ZERO), staff)
	return ts, nil
}

func runWidth(staff *Staff, glyphs []string) (units.Unit, error) {
	total := units.ZERO
	for _, g := range glyphs {
		adv, err := staff.MusicFont().AdvanceWidth(g)
		if err != nil {
			return units.ZERO, err
		}
		total = total.Add(adv)
	}
	return total, nil
}

// Meter returns the meter.
func (ts *TimeSignature) Meter() Meter { return ts.meter }

// Kind identifies the modifier as a time signature.
func (ts *TimeSignature) Kind() ModifierKind { return KindTimeSignature }

// VisualWidth is the width of the wider digit run.
func (ts *TimeSignature) VisualWidth() units.Unit { return ts.width }

// RenderComplete draws the two digit runs stacked and centered on the
// middle staff line, each run centered within the signature's width.
func (ts *TimeSignature) RenderComplete(rc *core.RenderContext, pos geom.Point, _ *core.Line) {
	ts.renderRun(rc, pos, ts.upperGlyphs, ts.upperWidth, 1)
	ts.renderRun(rc, pos, ts.lowerGlyphs, ts.lowerWidth, 3)
}

func (ts *TimeSignature) renderRun(rc *core.RenderContext, pos geom.Point, glyphs []string, width units.Unit, staffY float64) {
	x := pos.X.Add(ts.width.Sub(width).Div(2))
	y := pos.Y.Add(ts.staff.unit.New(staffY))
	for _, g := range glyphs {
		bounds, err := ts.staff.MusicFont().BoundingRect(g)
		if err != nil {
			rc.Logger.Error("time signature glyph missing", "glyph", g, "err", err)
			return
		}
		rc.Renderer.DrawGlyph(g, geom.NewPoint(x, y), bounds)
		adv, err := ts.staff.MusicFont().AdvanceWidth(g)
		if err != nil {
			return
		}
		x = x.Add(adv)
	}
}
