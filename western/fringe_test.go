package western

import (
	"testing"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/units"
)

// Bravura staff-space widths used by the expectations below.
const (
	trebleClefWidth     = 2.684
	percussionClefWidth = 1.528
	sharpAdvance        = 0.996
	commonTimeWidth     = 1.72
)

func TestFringeClefAlone(t *testing.T) {
	s := NewStaff(pt(0, 0), nil, gu(100), guStaffOpts())
	mustClef(t, gu(0), s, TrebleClef)

	layout := s.FringeLayoutAt(nil)
	if !layout.Clef.Present {
		t.Fatal("clef layer absent")
	}
	if got := layout.Clef.X.In(units.GraphicUnit); !almostEqual(got, -trebleClefWidth) {
		t.Errorf("clef edge = %v, want %v", got, -trebleClefWidth)
	}
	if got := layout.Staff.In(units.GraphicUnit); !almostEqual(got, -(trebleClefWidth + 0.5)) {
		t.Errorf("staff edge = %v, want %v", got, -(trebleClefWidth + 0.5))
	}
	if layout.KeySignature.Present {
		t.Error("key signature layer present on a staff with none")
	}
	if layout.TimeSignature.Present {
		t.Error("time signature layer present on a staff with none")
	}
}

func TestFringeClefAndKeySignature(t *testing.T) {
	s := NewStaff(pt(0, 0), nil, gu(100), guStaffOpts())
	mustClef(t, gu(0), s, TrebleClef)
	mustKeySignature(t, gu(0), s, DMajor) // two sharps

	layout := s.FringeLayoutAt(nil)
	keyWidth := 2 * sharpAdvance
	if got := layout.KeySignature.X.In(units.GraphicUnit); !almostEqual(got, -keyWidth) {
		t.Errorf("key signature edge = %v, want %v", got, -keyWidth)
	}
	wantClef := -(keyWidth + 0.5 + trebleClefWidth)
	if got := layout.Clef.X.In(units.GraphicUnit); !almostEqual(got, wantClef) {
		t.Errorf("clef edge = %v, want %v", got, wantClef)
	}
	if got := layout.Staff.In(units.GraphicUnit); !almostEqual(got, wantClef-0.5) {
		t.Errorf("staff edge = %v, want %v", got, wantClef-0.5)
	}
}

func TestFringeEmptyStaff(t *testing.T) {
	s := NewStaff(pt(0, 0), nil, gu(100), guStaffOpts())
	layout := s.FringeLayoutAt(nil)
	if layout.Clef.Present || layout.KeySignature.Present || layout.TimeSignature.Present {
		t.Error("bare staff has fringe layers")
	}
	if got := layout.Staff.In(units.GraphicUnit); !almostEqual(got, -0.5) {
		t.Errorf("staff edge = %v, want -0.5", got)
	}
}

// A time signature joins the fringe only when a line break falls exactly
// on it; clefs and key signatures restate on every later line.
func TestFringeTimeSignatureAtExactBreakOnly(t *testing.T) {
	doc := core.NewDocument(testPaper)
	f := core.NewFlowable(pt(0, 0), doc.PageAt(0), gu(250), gu(20))
	s := NewStaff(pt(0, 0), f, gu(250), guStaffOpts())
	mustClef(t, gu(0), s, TrebleClef)
	mustTimeSignature(t, gu(0), s, CommonTime)
	mustTimeSignature(t, gu(100), s, Meter{3, 4})
	if err := f.Layout(doc); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}
	lines := f.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}

	// The break at 100 lands exactly on the 3/4 signature.
	layout := s.FringeLayoutAt(lines[1])
	if !layout.PosXInStaff.Eq(gu(100)) {
		t.Errorf("PosXInStaff = %v, want 100gu", layout.PosXInStaff)
	}
	if !layout.TimeSignature.Present {
		t.Error("time signature absent from the fringe at its exact break")
	}
	if !layout.Clef.Present {
		t.Error("clef absent from a continuation fringe")
	}

	// The break at 200 has an active meter but none exactly there.
	layout = s.FringeLayoutAt(lines[2])
	if layout.TimeSignature.Present {
		t.Error("time signature restated away from its position")
	}
	if !layout.Clef.Present {
		t.Error("clef absent from a continuation fringe")
	}
}

// Lines that begin before the staff does get the staff-start fringe.
func TestFringeLineStartBeforeStaff(t *testing.T) {
	doc := core.NewDocument(testPaper)
	f := core.NewFlowable(pt(0, 0), doc.PageAt(0), gu(100), gu(20))
	s := NewStaff(pt(30, 0), f, gu(70), guStaffOpts())
	mustClef(t, gu(0), s, TrebleClef)
	if err := f.Layout(doc); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	layout := s.FringeLayoutAt(f.Lines()[0])
	if !layout.PosXInStaff.Eq(units.ZERO) {
		t.Errorf("PosXInStaff = %v, want clamped 0", layout.PosXInStaff)
	}
	if !layout.Clef.Present {
		t.Error("clef absent from the staff-start fringe")
	}
}

func TestFringeRecompute(t *testing.T) {
	s := NewStaff(pt(0, 0), nil, gu(100), guStaffOpts())
	mustClef(t, gu(0), s, TrebleClef)

	first := s.FringeLayoutAt(nil)
	if again := s.FringeLayoutAt(nil); again != first {
		t.Error("repeated lookup differs from the cached layout")
	}

	// Structural mutation invalidates; the new layout reflects it.
	key := mustKeySignature(t, gu(0), s, GMajor)
	withKey := s.FringeLayoutAt(nil)
	if withKey == first {
		t.Error("fringe unchanged after adding a key signature")
	}
	if !withKey.KeySignature.Present {
		t.Error("key signature absent after attach")
	}

	// Undoing the mutation reproduces the original layout exactly.
	core.Detach(key)
	if restored := s.FringeLayoutAt(nil); restored != first {
		t.Errorf("restored layout %+v differs from original %+v", restored, first)
	}
}

func TestGroupFringeAlignment(t *testing.T) {
	g := NewStaffGroup()
	a := NewStaff(pt(0, 0), nil, gu(100), &StaffOptions{LineSpacing: gu(1), Group: g})
	b := NewStaff(pt(0, 0), nil, gu(100), &StaffOptions{LineSpacing: gu(1), Group: g})
	mustClef(t, gu(0), a, TrebleClef)
	mustKeySignature(t, gu(0), a, DMajor)
	mustClef(t, gu(0), b, PercussionClef)
	mustTimeSignature(t, gu(0), b, CommonTime)

	la := a.FringeLayoutAt(nil)
	lb := b.FringeLayoutAt(nil)

	// Staff a is the widest member and sets the basis.
	keyWidth := 2 * sharpAdvance
	wantStaff := -(keyWidth + 0.5 + trebleClefWidth + 0.5)
	if got := la.Staff.In(units.GraphicUnit); !almostEqual(got, wantStaff) {
		t.Errorf("widest staff edge = %v, want %v", got, wantStaff)
	}
	if !lb.Staff.Eq(la.Staff) {
		t.Errorf("staff edges not aligned: %v vs %v", lb.Staff, la.Staff)
	}

	// Clef edges sit one staff padding inside the shared staff edge, so
	// aligned members agree on them too.
	if !lb.Clef.X.Eq(la.Clef.X) {
		t.Errorf("clef edges not aligned: %v vs %v", lb.Clef.X, la.Clef.X)
	}

	// b's time signature stays right-aligned at the logical zero even
	// though its other layers were pushed out.
	if got := lb.TimeSignature.X.In(units.GraphicUnit); !almostEqual(got, -commonTimeWidth) {
		t.Errorf("time signature edge = %v, want %v", got, -commonTimeWidth)
	}

	// a's own layers are untouched; it already sat at the basis.
	if got := la.KeySignature.X.In(units.GraphicUnit); !almostEqual(got, -keyWidth) {
		t.Errorf("key signature edge = %v, want %v", got, -keyWidth)
	}
}

func TestGroupCacheInvalidation(t *testing.T) {
	g := NewStaffGroup()
	a := NewStaff(pt(0, 0), nil, gu(100), &StaffOptions{LineSpacing: gu(1), Group: g})
	b := NewStaff(pt(0, 0), nil, gu(100), &StaffOptions{LineSpacing: gu(1), Group: g})
	mustClef(t, gu(0), a, PercussionClef)

	before := b.FringeLayoutAt(nil)

	// Widening one member's fringe moves every member's aligned edges.
	mustKeySignature(t, gu(0), a, EMajor)
	after := b.FringeLayoutAt(nil)
	if after.Staff.Eq(before.Staff) {
		t.Error("group cache not invalidated by a member's mutation")
	}
	if !after.Staff.Eq(a.FringeLayoutAt(nil).Staff) {
		t.Error("members disagree on the aligned staff edge")
	}
}

func TestPreRenderRegistersMarginControllers(t *testing.T) {
	doc := core.NewDocument(testPaper)
	f := core.NewFlowable(pt(0, 0), doc.PageAt(0), gu(250), gu(20))
	s := NewStaff(pt(0, 0), f, gu(250), guStaffOpts())
	mustClef(t, gu(0), s, TrebleClef)
	mustKeySignature(t, gu(0), s, DMajor)
	mustTimeSignature(t, gu(0), s, CommonTime)

	s.PreRender()
	controllers := f.MarginControllers()
	if len(controllers) != 3 {
		t.Fatalf("got %d margin controllers, want 3", len(controllers))
	}
	byTag := make(map[string]core.MarginController)
	for _, c := range controllers {
		byTag[c.Tag] = c
	}
	tests := []struct {
		tag  string
		want float64 // visual width plus the layer's fringe padding
	}{
		{"clef", trebleClefWidth + 0.5},
		{"key_signature", 2*sharpAdvance + 0.5},
		{"time_signature", commonTimeWidth + 0.5},
	}
	for _, tt := range tests {
		c, ok := byTag[tt.tag]
		if !ok {
			t.Errorf("no controller with tag %q", tt.tag)
			continue
		}
		if got := c.Width.In(units.GraphicUnit); !almostEqual(got, tt.want) {
			t.Errorf("%s controller width = %v, want %v", tt.tag, got, tt.want)
		}
	}

	// Later lines start inset by the summed reservation.
	wantMargin := (trebleClefWidth + 0.5) + (2*sharpAdvance + 0.5) + (commonTimeWidth + 0.5)
	if got := f.MarginAt(gu(100)).In(units.GraphicUnit); !almostEqual(got, wantMargin) {
		t.Errorf("MarginAt(100) = %v, want %v", got, wantMargin)
	}
}
