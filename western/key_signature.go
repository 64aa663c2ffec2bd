package western

import (
	"fmt"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// KeySignatureType identifies a traditional key signature by its accidental
// count: positive counts are sharps, negative counts are flats, zero is the
// open key.
type KeySignatureType int

const (
	CMajor     KeySignatureType = 0
	GMajor     KeySignatureType = 1
	DMajor     KeySignatureType = 2
	AMajor     KeySignatureType = 3
	EMajor     KeySignatureType = 4
	BMajor     KeySignatureType = 5
	FMajor     KeySignatureType = -1
	BFlatMajor KeySignatureType = -2
	EFlatMajor KeySignatureType = -3
	AFlatMajor KeySignatureType = -4
	DFlatMajor KeySignatureType = -5
)

// AccidentalCount returns the number of accidentals drawn for this key.
func (t KeySignatureType) AccidentalCount() int {
	if t < 0 {
		return int(-t)
	}
	return int(t)
}

// AccidentalGlyph returns the SMuFL glyph name of the key's accidentals.
func (t KeySignatureType) AccidentalGlyph() string {
	if t < 0 {
		return "accidentalFlat"
	}
	return "accidentalSharp"
}

// Vertical accidental positions in staff units from the top line, in the
// traditional writing order. Treble-clef positions; clef-specific octave
// placement is a pitch-model concern and out of scope here.
var (
	sharpStaffPositions = []float64{0, 1.5, -0.5, 1, 2.5, 0.5, 2}
	flatStaffPositions  = []float64{2, 0.5, 2.5, 1, 3, 1.5, 3.5}
)

// KeySignature is a staff modifier marking the accidentals in force from
// its position until the next key signature. Its visual width is the
// accidental row's width, resolved once at construction.
type KeySignature struct {
	core.ObjectBase

	staff   *Staff
	keyType KeySignatureType

	advance units.Unit
	bounds  geom.Rect
	width   units.Unit
}

// NewKeySignature creates a key signature at the given timeline position
// on a staff.
func NewKeySignature(posX units.Unit, staff *Staff, t KeySignatureType) (*KeySignature, error) {
	k := &KeySignature{staff: staff, keyType: t}
	if n := t.AccidentalCount(); n > 0 {
		glyph := t.AccidentalGlyph()
		adv, err := staff.MusicFont().AdvanceWidth(glyph)
		if err != nil {
			return nil, fmt.Errorf("creating key signature: %w", err)
		}
		bounds, err := staff.MusicFont().BoundingRect(glyph)
		if err != nil {
			return nil, fmt.Errorf("creating key signature: %w", err)
		}
		k.advance = adv
		k.bounds = bounds
		k.width = adv.Mul(float64(n))
	}
	k.Init(k, geom.NewPoint(posX, units.ZERO), staff)
	return k, nil
}

// Type returns the key signature's type.
func (k *KeySignature) Type() KeySignatureType { return k.keyType }

// Kind identifies the modifier as a key signature.
func (k *KeySignature) Kind() ModifierKind { return KindKeySignature }

// VisualWidth is the width of the accidental row; zero for the open key.
func (k *KeySignature) VisualWidth() units.Unit { return k.width }

// RenderComplete draws the accidental row in the traditional order.
func (k *KeySignature) RenderComplete(rc *core.RenderContext, pos geom.Point, _ *core.Line) {
	positions := sharpStaffPositions
	if k.keyType < 0 {
		positions = flatStaffPositions
	}
	for i := 0; i < k.keyType.AccidentalCount() && i < len(positions); i++ {
		at := geom.NewPoint(
			pos.X.Add(k.advance.Mul(float64(i))),
			pos.Y.Add(k.staff.unit.New(positions[i])),
		)
		rc.Renderer.DrawGlyph(k.keyType.AccidentalGlyph(), at, k.bounds)
	}
}
