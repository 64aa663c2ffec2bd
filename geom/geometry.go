// Package geom provides unit-typed geometric primitives for layout
// calculations: [Point] and [Rect] expressed in [units.Unit] lengths.
package geom

import (
	"github.com/cantus/engrave/units"
)

// Point represents a 2D point in some coordinate space. Which space (page,
// document canvas, or flowable timeline) depends on context; conversion
// between spaces is handled by the object tree, not by Point itself.
type Point struct {
	X, Y units.Unit
}

// ORIGIN is the zero point.
var ORIGIN = Point{}

// NewPoint creates a point from two lengths.
func NewPoint(x, y units.Unit) Point {
	return Point{X: x, Y: y}
}

// Add returns the vector sum p + other.
func (p Point) Add(other Point) Point {
	return Point{p.X.Add(other.X), p.Y.Add(other.Y)}
}

// Sub returns the vector difference p - other.
func (p Point) Sub(other Point) Point {
	return Point{p.X.Sub(other.X), p.Y.Sub(other.Y)}
}

// Neg returns the point negated in both axes.
func (p Point) Neg() Point {
	return Point{p.X.Neg(), p.Y.Neg()}
}

// Eq reports whether two points are equal, converting units as needed.
func (p Point) Eq(other Point) bool {
	return p.X.Eq(other.X) && p.Y.Eq(other.Y)
}

// Rect represents a rectangle anchored at its top-left corner.
type Rect struct {
	X      units.Unit // Left
	Y      units.Unit // Top
	Width  units.Unit
	Height units.Unit
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(x, y, width, height units.Unit) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate.
func (r Rect) Left() units.Unit {
	return r.X
}

// Right returns the right edge X coordinate.
func (r Rect) Right() units.Unit {
	return r.X.Add(r.Width)
}

// Top returns the top edge Y coordinate.
func (r Rect) Top() units.Unit {
	return r.Y
}

// Bottom returns the bottom edge Y coordinate.
func (r Rect) Bottom() units.Unit {
	return r.Y.Add(r.Height)
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{r.X.Add(r.Width.Div(2)), r.Y.Add(r.Height.Div(2))}
}

// Contains checks if a point lies inside the rectangle, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X.Ge(r.Left()) && p.X.Le(r.Right()) &&
		p.Y.Ge(r.Top()) && p.Y.Le(r.Bottom())
}

// Translate returns the rectangle moved by the given offset.
func (r Rect) Translate(offset Point) Rect {
	return Rect{r.X.Add(offset.X), r.Y.Add(offset.Y), r.Width, r.Height}
}

// Union returns the smallest rectangle covering both rectangles.
func (r Rect) Union(other Rect) Rect {
	left := units.Min(r.Left(), other.Left())
	top := units.Min(r.Top(), other.Top())
	right := units.Max(r.Right(), other.Right())
	bottom := units.Max(r.Bottom(), other.Bottom())
	return Rect{left, top, right.Sub(left), bottom.Sub(top)}
}

// Intersects checks if two rectangles overlap, edge contact included.
func (r Rect) Intersects(other Rect) bool {
	return !(r.Right().Lt(other.Left()) ||
		r.Left().Gt(other.Right()) ||
		r.Bottom().Lt(other.Top()) ||
		r.Top().Gt(other.Bottom()))
}
