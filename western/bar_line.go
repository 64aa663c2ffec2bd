package western

import (
	"errors"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// BarLine is a vertical line spanning one or more staves at a single
// timeline position. It is parented to the first (topmost) staff and
// reaches the last staff through tree mapping, so the connected staves
// stay joined across line wraps as long as they share a flowable.
type BarLine struct {
	core.ObjectBase

	staves    []*Staff
	thickness units.Unit
}

// NewBarLine creates a bar line at a timeline position on the given
// staves, top to bottom.
func NewBarLine(posX units.Unit, staves ...*Staff) (*BarLine, error) {
	if len(staves) == 0 {
		return nil, errors.New("bar line needs at least one staff")
	}
	top := staves[0]
	b := &BarLine{
		staves:    staves,
		thickness: top.MusicFont().EngravingDefault("thinBarlineThickness"),
	}
	b.Init(b, geom.NewPoint(posX, units.ZERO), top)
	return b, nil
}

// Staves returns the connected staves, top to bottom.
func (b *BarLine) Staves() []*Staff { return b.staves }

// RenderComplete draws the line from the top staff's barline extent to the
// bottom staff's.
func (b *BarLine) RenderComplete(rc *core.RenderContext, pos geom.Point, _ *core.Line) {
	top := b.staves[0]
	bottom := b.staves[len(b.staves)-1]
	topEdge, _ := top.BarlineExtent()
	_, bottomEdge := bottom.BarlineExtent()

	offset, err := core.MapBetween(top, bottom)
	if err != nil {
		rc.Logger.Error("bar line spans disjoint staves", "err", err)
		return
	}
	start := geom.NewPoint(pos.X, pos.Y.Add(topEdge))
	end := geom.NewPoint(pos.X, pos.Y.Add(offset.Y).Add(bottomEdge))
	rc.Renderer.DrawLine(start, end, b.thickness)
}
