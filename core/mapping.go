package core

import (
	"errors"
	"fmt"

	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// ErrDisjointTree is returned when mapping between two objects that share
// no common ancestor. This is always a programming error.
var ErrDisjointTree = errors.New("objects share no common ancestor")

// DocumentPos returns the object's position in document space: the vector
// sum of local positions up the parent chain to the root.
//
// For objects inside a flowable this is the position the object would have
// if the timeline were never broken; it is not a valid canvas position once
// line breaking has occurred. Rendering of flowable contents goes through
// line slices instead.
func DocumentPos(obj Object) geom.Point {
	pos := obj.Base().Pos()
	for node := obj.Base().Parent(); node != nil; node = node.Base().Parent() {
		pos = pos.Add(node.Base().Pos())
	}
	return pos
}

// MapBetween returns the offset from src to dst, routed through their
// closest common ancestor. When both objects live inside the same flowable
// the result is an offset in flowable-timeline space; naive subtraction of
// document positions would be invalid there once wrapping occurs, since
// two objects close together in timeline order may render on different
// pages.
func MapBetween(src, dst Object) (geom.Point, error) {
	ancestor, err := commonAncestor(src, dst)
	if err != nil {
		return geom.Point{}, err
	}
	return posRelativeTo(dst, ancestor).Sub(posRelativeTo(src, ancestor)), nil
}

// MapXBetween returns the x component of [MapBetween].
func MapXBetween(src, dst Object) (units.Unit, error) {
	offset, err := MapBetween(src, dst)
	if err != nil {
		return units.ZERO, err
	}
	return offset.X, nil
}

// posRelativeTo sums local positions from obj up to (but excluding)
// ancestor. obj == ancestor yields the zero point.
func posRelativeTo(obj, ancestor Object) geom.Point {
	pos := geom.ORIGIN
	for node := obj; node != nil && node != ancestor; node = node.Base().Parent() {
		pos = pos.Add(node.Base().Pos())
	}
	return pos
}

// commonAncestor returns the closest node on both parent chains. An object
// counts as its own ancestor, so mapping between an object and one of its
// descendants routes through the object itself.
func commonAncestor(a, b Object) (Object, error) {
	seen := make(map[*ObjectBase]Object)
	for node := a; node != nil; node = node.Base().Parent() {
		seen[node.Base()] = node
	}
	for node := b; node != nil; node = node.Base().Parent() {
		if found, ok := seen[node.Base()]; ok {
			return found, nil
		}
	}
	return nil, fmt.Errorf("%w: mapping is undefined", ErrDisjointTree)
}

// AncestorFlowable returns the flowable an object lives in, or nil when
// the object is outside any flowable. An object is not its own flowable.
func AncestorFlowable(obj Object) *Flowable {
	for node := obj.Base().Parent(); node != nil; node = node.Base().Parent() {
		if f, ok := node.(*Flowable); ok {
			return f
		}
	}
	return nil
}

// AncestorPage returns the page an object renders on before line breaking,
// or nil for objects not parented under a page.
func AncestorPage(obj Object) *Page {
	for node := obj.Base().Parent(); node != nil; node = node.Base().Parent() {
		if p, ok := node.(*Page); ok {
			return p
		}
	}
	return nil
}
