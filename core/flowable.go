package core

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// ErrElementTooWide is returned when a line's margin reservation or start
// inset leaves no live width for content. This is a configuration error:
// the caller must shrink the content or enlarge the page and rerun the
// whole layout pass.
var ErrElementTooWide = errors.New("no live width left for flowable content")

// LayoutState tracks a flowable's position in the breaking state machine.
type LayoutState int

const (
	// StateUnbroken means no line layout exists; content, controllers or
	// page geometry changed since the last break.
	StateUnbroken LayoutState = iota
	// StateBreaking means the line breaker is currently walking the
	// timeline.
	StateBreaking
	// StateBroken means the computed line list is valid.
	StateBroken
)

// String returns a readable state name for logging.
func (s LayoutState) String() string {
	switch s {
	case StateUnbroken:
		return "unbroken"
	case StateBreaking:
		return "breaking"
	case StateBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// Flowable represents one continuous horizontal timeline of musical
// content. Its children are positioned in flowable-timeline space; the
// line breaker partitions the timeline into an ordered sequence of
// page-relative [Line] segments.
type Flowable struct {
	ObjectBase

	length  units.Unit
	height  units.Unit
	lineGap units.Unit

	controllers []MarginController
	lines       []*Line
	state       LayoutState
}

// NewFlowable creates a flowable with the given timeline length and
// rendered system height. The flowable's position is page-relative; its
// first line begins exactly there.
func NewFlowable(pos geom.Point, parent Object, length, height units.Unit) *Flowable {
	f := &Flowable{
		length:  length,
		height:  height,
		lineGap: units.Mm.New(10),
	}
	f.Init(f, pos, parent)
	return f
}

// Length returns the declared total timeline length.
func (f *Flowable) Length() units.Unit { return f.length }

// SetLength changes the timeline length and discards any computed lines.
func (f *Flowable) SetLength(length units.Unit) {
	f.length = length
	f.invalidate()
}

// Height returns the rendered height of one line of this flowable.
func (f *Flowable) Height() units.Unit { return f.height }

// SetHeight changes the rendered height and discards any computed lines.
func (f *Flowable) SetHeight(height units.Unit) {
	f.height = height
	f.invalidate()
}

// LineGap returns the vertical gap between consecutive lines.
func (f *Flowable) LineGap() units.Unit { return f.lineGap }

// SetLineGap changes the vertical gap between consecutive lines.
func (f *Flowable) SetLineGap(gap units.Unit) {
	f.lineGap = gap
	f.invalidate()
}

// State returns the flowable's current layout state.
func (f *Flowable) State() LayoutState { return f.state }

// Lines returns the computed line list, or nil while the flowable is not
// in [StateBroken].
func (f *Flowable) Lines() []*Line {
	if f.state != StateBroken {
		return nil
	}
	return f.lines
}

// AddMarginController registers a margin requirement with the line
// breaker, keeping the controller list ordered by timeline position.
// Computed lines are discarded.
func (f *Flowable) AddMarginController(c MarginController) {
	i := sort.Search(len(f.controllers), func(i int) bool {
		return f.controllers[i].FlowableX.Gt(c.FlowableX)
	})
	f.controllers = append(f.controllers, MarginController{})
	copy(f.controllers[i+1:], f.controllers[i:])
	f.controllers[i] = c
	f.invalidate()
}

// MarginControllers returns the registered controllers in timeline order.
func (f *Flowable) MarginControllers() []MarginController {
	return f.controllers
}

// ResetMarginControllers drops all registered controllers. The document
// calls this at the start of each render pass before objects re-register
// their requirements.
func (f *Flowable) ResetMarginControllers() {
	f.controllers = nil
	f.invalidate()
}

// MarginAt returns the total leading margin required for a line starting
// at timeline position x: the sum, over controller tags, of the latest
// controller of that tag at or before x.
func (f *Flowable) MarginAt(x units.Unit) units.Unit {
	active := make(map[string]units.Unit)
	for _, c := range f.controllers {
		if c.FlowableX.Gt(x) {
			break
		}
		active[c.Tag] = c.Width
	}
	total := units.ZERO
	for _, w := range active {
		total = total.Add(w)
	}
	return total
}

// DescendantPosX returns an object's offset along this flowable's
// timeline: the sum of local x positions from the object up to the
// flowable. This is the key space for margin controllers and fringe
// lookups.
func (f *Flowable) DescendantPosX(obj Object) (units.Unit, error) {
	pos, err := f.DescendantPos(obj)
	return pos.X, err
}

// DescendantPos returns an object's position in flowable-timeline space.
func (f *Flowable) DescendantPos(obj Object) (geom.Point, error) {
	pos := geom.ORIGIN
	for node := obj; node != nil; node = node.Base().Parent() {
		if node == Object(f) {
			return pos, nil
		}
		pos = pos.Add(node.Base().Pos())
	}
	return geom.Point{}, fmt.Errorf("object is not a descendant of the flowable")
}

// LineAt returns the line covering a timeline position. Positions at or
// past the end of the timeline return the last line; positions before the
// first line return the first.
func (f *Flowable) LineAt(x units.Unit) *Line {
	lines := f.Lines()
	if len(lines) == 0 {
		return nil
	}
	for _, line := range lines {
		if line.Covers(x) {
			return line
		}
	}
	if x.Lt(lines[0].FlowableX) {
		return lines[0]
	}
	return lines[len(lines)-1]
}

// invalidate returns the state machine to Unbroken and discards lines.
func (f *Flowable) invalidate() {
	f.state = StateUnbroken
	f.lines = nil
}

// Layout breaks the timeline into lines against the document's page
// geometry. The walk is greedy: each line takes the longest extent that
// fits the current page's live width after reserving the margin required
// by controllers active at the line's start. When vertical live space is
// exhausted, the next page is requested from the document.
func (f *Flowable) Layout(doc *Document) error {
	if f.state == StateBroken {
		return nil
	}
	f.state = StateBreaking
	f.lines = nil

	page := AncestorPage(f)
	if page == nil {
		page = doc.PageAt(0)
	}

	// The first line starts at the flowable's own position on its page.
	start := posRelativeTo(f, page)
	x := units.ZERO
	pos := start
	for {
		capacity := page.Paper().LiveWidth().Sub(pos.X)
		if capacity.Le(units.ZERO) {
			f.invalidate()
			return fmt.Errorf("%w: line at %v on page %d needs %v of margin",
				ErrElementTooWide, x, page.Index(), pos.X)
		}
		length := units.Min(capacity, f.length.Sub(x))
		f.lines = append(f.lines, &Line{
			FlowableX: x,
			Length:    length,
			Pos:       pos,
			Page:      page,
		})
		x = x.Add(length)
		if !x.Lt(f.length) {
			break
		}

		// Advance to the next line, requesting a fresh page when the
		// current one's vertical live space is exhausted.
		nextY := pos.Y.Add(f.height).Add(f.lineGap)
		if nextY.Add(f.height).Gt(page.Paper().LiveHeight()) {
			page = doc.PageAt(page.Index() + 1)
			nextY = units.ZERO
		}
		pos = geom.NewPoint(f.MarginAt(x), nextY)
	}

	f.state = StateBroken
	return nil
}
