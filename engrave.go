// Package engrave provides a fluent API for building and rendering music
// scores on a continuous timeline that flows across lines and pages.
//
// Basic usage:
//
//	sys, err := engrave.NewScore(units.Mm.New(2000)).
//	    Paper(paper.A4).
//	    AddStaff(engrave.StaffSpec{Clef: engrave.Clef(western.TrebleClef), Key: engrave.Key(western.DMajor)}).
//	    AddStaff(engrave.StaffSpec{Clef: engrave.Clef(western.BassClef)}).
//	    Build()
//	if err != nil {
//	    // handle error
//	}
//	err = sys.Render(renderer)
//
// For advanced use cases, the lower-level core and western packages are
// also available.
package engrave

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/paper"
	"github.com/cantus/engrave/units"
	"github.com/cantus/engrave/western"
)

// StaffSpec describes one staff of a score. Optional fields are pointers;
// nil leaves the staff without that modifier.
type StaffSpec struct {
	// Clef placed at the staff's start.
	Clef *western.ClefType

	// Key is the key signature placed at the staff's start.
	Key *western.KeySignatureType

	// Meter is the time signature placed at the staff's start.
	Meter *western.Meter

	// LineCount overrides the default five lines.
	LineCount int

	// LineSpacing overrides the default 1.75mm staff spacing.
	LineSpacing units.Unit
}

// Score is a fluent builder for a single-system score: a set of grouped
// staves sharing one flowable timeline.
type Score struct {
	paper    paper.Paper
	length   units.Unit
	staffGap units.Unit
	lineGap  units.Unit
	logger   *log.Logger
	specs    []StaffSpec
}

// NewScore starts a score of the given timeline length with A4 paper and
// default spacing.
func NewScore(length units.Unit) *Score {
	return &Score{
		paper:    paper.A4,
		length:   length,
		staffGap: units.Mm.New(10),
		lineGap:  units.Mm.New(10),
	}
}

// Paper selects the page geometry.
func (s *Score) Paper(p paper.Paper) *Score {
	s.paper = p
	return s
}

// StaffGap sets the vertical distance between consecutive staves.
func (s *Score) StaffGap(gap units.Unit) *Score {
	s.staffGap = gap
	return s
}

// LineGap sets the vertical distance between wrapped lines.
func (s *Score) LineGap(gap units.Unit) *Score {
	s.lineGap = gap
	return s
}

// Logger installs a logger for layout debug output.
func (s *Score) Logger(logger *log.Logger) *Score {
	s.logger = logger
	return s
}

// AddStaff appends a staff, top to bottom.
func (s *Score) AddStaff(spec StaffSpec) *Score {
	s.specs = append(s.specs, spec)
	return s
}

// System is a built score: the document tree ready to render, with the
// flowable, staff group and staves exposed for further content.
type System struct {
	Document *core.Document
	Flowable *core.Flowable
	Group    *western.StaffGroup
	Staves   []*western.Staff
}

// Build assembles the document tree.
func (s *Score) Build() (*System, error) {
	if len(s.specs) == 0 {
		return nil, fmt.Errorf("score has no staves")
	}

	doc := core.NewDocument(s.paper)
	if s.logger != nil {
		doc.SetLogger(s.logger)
	}

	// System height: staff heights plus the gaps between them.
	height := units.ZERO
	for i, spec := range s.specs {
		if i > 0 {
			height = height.Add(s.staffGap)
		}
		height = height.Add(staffHeight(spec))
	}

	f := core.NewFlowable(geom.ORIGIN, doc.PageAt(0), s.length, height)
	f.SetLineGap(s.lineGap)
	group := western.NewStaffGroup()

	sys := &System{Document: doc, Flowable: f, Group: group}
	y := units.ZERO
	for _, spec := range s.specs {
		staff := western.NewStaff(geom.NewPoint(units.ZERO, y), f, s.length, &western.StaffOptions{
			LineCount:   spec.LineCount,
			LineSpacing: spec.LineSpacing,
			Group:       group,
		})
		if spec.Clef != nil {
			if _, err := western.NewClef(units.ZERO, staff, *spec.Clef); err != nil {
				return nil, fmt.Errorf("building score: %w", err)
			}
		}
		if spec.Key != nil {
			if _, err := western.NewKeySignature(units.ZERO, staff, *spec.Key); err != nil {
				return nil, fmt.Errorf("building score: %w", err)
			}
		}
		if spec.Meter != nil {
			if _, err := western.NewTimeSignature(units.ZERO, staff, *spec.Meter); err != nil {
				return nil, fmt.Errorf("building score: %w", err)
			}
		}
		sys.Staves = append(sys.Staves, staff)
		y = y.Add(staffHeight(spec)).Add(s.staffGap)
	}
	return sys, nil
}

func staffHeight(spec StaffSpec) units.Unit {
	count := spec.LineCount
	if count == 0 {
		count = 5
	}
	spacing := spec.LineSpacing
	if spacing.Eq(units.ZERO) {
		spacing = units.Mm.New(1.75)
	}
	return spacing.Mul(float64(count - 1))
}

// Render runs one layout-and-draw cycle against the backend.
func (sys *System) Render(r core.Renderer) error {
	return sys.Document.Render(r)
}

// Clef wraps a clef type for use in [StaffSpec].
func Clef(t western.ClefType) *western.ClefType { return &t }

// Key wraps a key signature type for use in [StaffSpec].
func Key(t western.KeySignatureType) *western.KeySignatureType { return &t }

// MeterOf wraps a meter for use in [StaffSpec].
func MeterOf(m western.Meter) *western.Meter { return &m }

// Must panics when err is non-nil; for scripts and tests where error
// handling would be cumbersome.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
