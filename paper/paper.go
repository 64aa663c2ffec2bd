// Package paper provides page geometry descriptions: physical size,
// margins, and binding gutter, along with the derived live area available
// to layout.
//
// Common sizes are predeclared ([A4], [Letter]); custom paper definitions
// can be loaded from TOML files with [Load].
package paper

import (
	"github.com/cantus/engrave/units"
)

// Paper describes the geometry of a page type. All layout happens inside
// the live area, the region bounded by the margins and gutter.
type Paper struct {
	Width        units.Unit
	Height       units.Unit
	MarginTop    units.Unit
	MarginRight  units.Unit
	MarginBottom units.Unit
	MarginLeft   units.Unit
	Gutter       units.Unit
}

var mm = units.Mm.New

// Predefined paper types with 2cm margins and no gutter.
var (
	A4 = Paper{
		Width: mm(210), Height: mm(297),
		MarginTop: mm(20), MarginRight: mm(20),
		MarginBottom: mm(20), MarginLeft: mm(20),
	}
	Letter = Paper{
		Width: mm(215.9), Height: mm(279.4),
		MarginTop: mm(20), MarginRight: mm(20),
		MarginBottom: mm(20), MarginLeft: mm(20),
	}
)

// LiveWidth returns the usable page width: the full width minus margins
// and gutter.
func (p Paper) LiveWidth() units.Unit {
	return p.Width.Sub(p.MarginLeft).Sub(p.MarginRight).Sub(p.Gutter)
}

// LiveHeight returns the usable page height: the full height minus the
// vertical margins.
func (p Paper) LiveHeight() units.Unit {
	return p.Height.Sub(p.MarginTop).Sub(p.MarginBottom)
}

// Rotated returns a copy with width and height swapped, for landscape
// orientation. Margins are rotated clockwise along with the page.
func (p Paper) Rotated() Paper {
	return Paper{
		Width:        p.Height,
		Height:       p.Width,
		MarginTop:    p.MarginLeft,
		MarginRight:  p.MarginTop,
		MarginBottom: p.MarginRight,
		MarginLeft:   p.MarginBottom,
		Gutter:       p.Gutter,
	}
}
