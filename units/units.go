// Package units provides the ratio-based length units used by every
// coordinate in the layout engine.
//
// A [Unit] is a scalar length tagged with a conversion ratio to a common
// base unit (the typographic point, 1/72 inch). Arithmetic between units of
// different kinds implicitly converts the right operand into the left
// operand's kind, so geometric code can freely mix millimeters, inches and
// staff-relative units:
//
//	x := units.Mm.New(10).Add(units.Inch.New(1)) // 10mm + 1in, expressed in mm
//
// New unit kinds can be derived at runtime with [MakeKind]; staves use this
// to create a unit sized to their own line spacing.
package units

import (
	"fmt"
	"math"
)

// ErrTypeConversion is returned when a unit is constructed from an
// unsupported value type.
var ErrTypeConversion = fmt.Errorf("unsupported unit value type")

// Unit is a scalar length tagged with a conversion ratio to the base unit.
// The zero value is a zero length.
type Unit struct {
	value float64
	ratio float64 // base units per 1 of this unit; 0 means 1 (base)
}

// Kind describes a unit kind: a conversion ratio plus a display name.
// Kinds construct Unit values; the predeclared kinds cover the common
// absolute units.
type Kind struct {
	ratio float64
	name  string
}

var (
	// GraphicUnit is the base unit, equal to one typographic point (1/72 inch).
	GraphicUnit = Kind{1, "gu"}
	// Inch is the international inch.
	Inch = Kind{72, "in"}
	// Mm is the millimeter.
	Mm = Kind{72.0 / 25.4, "mm"}
)

// ZERO is a zero length, usable with any unit kind.
var ZERO = Unit{}

// MakeKind derives a new unit kind whose unit length equals size.
// Staves use this to make a unit equal to their line spacing so that staff
// object geometry can be expressed in staff spaces.
func MakeKind(name string, size Unit) Kind {
	return Kind{size.Base(), name}
}

// New constructs a Unit of this kind from a raw scalar. No conversion is
// performed; the scalar is stored directly in the target kind.
func (k Kind) New(v float64) Unit {
	return Unit{v, k.ratio}
}

// Of converts an existing unit value into this kind.
func (k Kind) Of(u Unit) Unit {
	return Unit{u.Base() / k.effectiveRatio(), k.ratio}
}

// Coerce constructs a Unit of this kind from an arbitrary value. Numbers
// are stored directly (no conversion, matching New); Unit values are
// converted. Any other type fails with [ErrTypeConversion].
func (k Kind) Coerce(v any) (Unit, error) {
	switch n := v.(type) {
	case float64:
		return k.New(n), nil
	case float32:
		return k.New(float64(n)), nil
	case int:
		return k.New(float64(n)), nil
	case int64:
		return k.New(float64(n)), nil
	case Unit:
		return k.Of(n), nil
	default:
		return ZERO, fmt.Errorf("%w: %T", ErrTypeConversion, v)
	}
}

// Name returns the kind's display name.
func (k Kind) Name() string {
	return k.name
}

func (k Kind) effectiveRatio() float64 {
	if k.ratio == 0 {
		return 1
	}
	return k.ratio
}

func (u Unit) effectiveRatio() float64 {
	if u.ratio == 0 {
		return 1
	}
	return u.ratio
}

// Base returns the length expressed in base units.
func (u Unit) Base() float64 {
	return u.value * u.effectiveRatio()
}

// Value returns the raw scalar in the unit's own kind.
func (u Unit) Value() float64 {
	return u.value
}

// In returns the length expressed in the given kind.
func (u Unit) In(k Kind) float64 {
	return u.Base() / k.effectiveRatio()
}

// coerced converts o into u's kind.
func (u Unit) coerced(o Unit) float64 {
	return o.Base() / u.effectiveRatio()
}

// Add returns u + o in u's kind.
func (u Unit) Add(o Unit) Unit {
	return Unit{u.value + u.coerced(o), u.ratio}
}

// Sub returns u - o in u's kind.
func (u Unit) Sub(o Unit) Unit {
	return Unit{u.value - u.coerced(o), u.ratio}
}

// Mul returns u scaled by f.
func (u Unit) Mul(f float64) Unit {
	return Unit{u.value * f, u.ratio}
}

// Div returns u divided by f.
func (u Unit) Div(f float64) Unit {
	return Unit{u.value / f, u.ratio}
}

// Quo returns the dimensionless ratio u / o.
func (u Unit) Quo(o Unit) float64 {
	return u.Base() / o.Base()
}

// Neg returns -u.
func (u Unit) Neg() Unit {
	return Unit{-u.value, u.ratio}
}

// Abs returns the absolute length of u.
func (u Unit) Abs() Unit {
	return Unit{math.Abs(u.value), u.ratio}
}

// Cmp compares two lengths, returning -1, 0 or 1. The right operand is
// converted into u's kind before comparison.
func (u Unit) Cmp(o Unit) int {
	a, b := u.value, u.coerced(o)
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Eq reports whether the two lengths are equal.
func (u Unit) Eq(o Unit) bool { return u.Cmp(o) == 0 }

// Lt reports whether u is shorter than o.
func (u Unit) Lt(o Unit) bool { return u.Cmp(o) < 0 }

// Le reports whether u is no longer than o.
func (u Unit) Le(o Unit) bool { return u.Cmp(o) <= 0 }

// Gt reports whether u is longer than o.
func (u Unit) Gt(o Unit) bool { return u.Cmp(o) > 0 }

// Ge reports whether u is at least as long as o.
func (u Unit) Ge(o Unit) bool { return u.Cmp(o) >= 0 }

// Min returns the shorter of the two lengths, in u's kind.
func Min(u, o Unit) Unit {
	if o.Lt(u) {
		return Unit{u.coerced(o), u.ratio}
	}
	return u
}

// Max returns the longer of the two lengths, in u's kind.
func Max(u, o Unit) Unit {
	if o.Gt(u) {
		return Unit{u.coerced(o), u.ratio}
	}
	return u
}

// String returns the length in base units, e.g. "12.5gu".
func (u Unit) String() string {
	return fmt.Sprintf("%ggu", u.Base())
}
