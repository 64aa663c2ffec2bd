package western

import (
	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/units"
)

// ModifierKind classifies staff modifiers. The kind doubles as the margin
// controller tag the owning staff registers with its flowable, so that
// later modifiers of the same kind supersede earlier ones in line-start
// margin reservations.
type ModifierKind int

const (
	KindClef ModifierKind = iota
	KindKeySignature
	KindTimeSignature
)

// String returns the kind's tag name.
func (k ModifierKind) String() string {
	switch k {
	case KindClef:
		return "clef"
	case KindKeySignature:
		return "key_signature"
	case KindTimeSignature:
		return "time_signature"
	default:
		return "unknown"
	}
}

// StaffModifier is a staff descendant that changes how content after it is
// read: a clef, key signature or time signature. The owning staff indexes
// modifiers by kind and timeline position to answer "what is in force at
// x" queries and to build line fringes.
type StaffModifier interface {
	core.Object

	// Kind classifies the modifier.
	Kind() ModifierKind

	// VisualWidth is the horizontal space the modifier occupies when
	// rendered in a line fringe.
	VisualWidth() units.Unit
}
