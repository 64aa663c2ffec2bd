package core

import (
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// Object is a node in the positioned-object tree. Concrete element types
// embed [ObjectBase], which supplies the tree mechanics and no-op defaults
// for the hooks; types override only what they need.
type Object interface {
	// Base exposes the embedded tree node.
	Base() *ObjectBase

	// BreakableLength is the object's extent along its flowable's
	// timeline. Objects with zero breakable length render entirely on
	// whichever line contains their position.
	BreakableLength() units.Unit

	// PreRender is called on every object at the start of a render pass,
	// before flowables are broken into lines.
	PreRender()

	// PostRender is called on every object after rendering; it must drop
	// any transient caches built during the pass.
	PostRender()

	// RenderComplete renders the whole object. pos is the document-space
	// position of the object's origin; line is the flowable line carrying
	// it, or nil when the object is outside any flowable.
	RenderComplete(rc *RenderContext, pos geom.Point, line *Line)

	// RenderBeforeBreak renders the portion [0, end of line) of an object
	// that starts on this line but continues past its end.
	RenderBeforeBreak(rc *RenderContext, pos geom.Point, line *Line)

	// RenderSpanningContinuation renders the portion of an object covered
	// by an intermediate line: the object started on an earlier line and
	// continues past this one. objectX is the offset into the object's own
	// extent at which this line begins; pos is the document-space position
	// of that offset.
	RenderSpanningContinuation(rc *RenderContext, pos geom.Point, line *Line, objectX units.Unit)

	// RenderAfterBreak renders the final portion of an object that started
	// on an earlier line and ends within this one.
	RenderAfterBreak(rc *RenderContext, pos geom.Point, line *Line, objectX units.Unit)
}

// StructureObserver is implemented by objects that cache information about
// their descendants. Observers are notified when any node in their subtree
// is attached, detached or moved.
type StructureObserver interface {
	DescendantsChanged()
}

// ObjectBase holds the tree mechanics shared by all positioned objects.
type ObjectBase struct {
	self     Object
	pos      geom.Point
	parent   Object
	children []Object
}

// Init wires the embedding object into the tree. self must be the object
// embedding this base; parent may be nil for roots.
func (b *ObjectBase) Init(self Object, pos geom.Point, parent Object) {
	b.self = self
	b.pos = pos
	if parent != nil {
		Attach(parent, self)
	}
}

// Base returns the node itself, satisfying [Object].
func (b *ObjectBase) Base() *ObjectBase { return b }

// Pos returns the object's position relative to its parent.
func (b *ObjectBase) Pos() geom.Point { return b.pos }

// X returns the object's x position relative to its parent.
func (b *ObjectBase) X() units.Unit { return b.pos.X }

// Y returns the object's y position relative to its parent.
func (b *ObjectBase) Y() units.Unit { return b.pos.Y }

// SetPos moves the object relative to its parent and notifies ancestor
// caches of the structural change.
func (b *ObjectBase) SetPos(pos geom.Point) {
	b.pos = pos
	notifyStructureChanged(b.self)
}

// Parent returns the owning object, nil for roots.
func (b *ObjectBase) Parent() Object { return b.parent }

// Children returns the object's direct children in attachment order. The
// returned slice must not be modified.
func (b *ObjectBase) Children() []Object { return b.children }

// BreakableLength returns zero; breakable types override it.
func (b *ObjectBase) BreakableLength() units.Unit { return units.ZERO }

// PreRender is a no-op by default.
func (b *ObjectBase) PreRender() {}

// PostRender is a no-op by default.
func (b *ObjectBase) PostRender() {}

// RenderComplete is a no-op by default; invisible grouping objects rely on it.
func (b *ObjectBase) RenderComplete(*RenderContext, geom.Point, *Line) {}

// RenderBeforeBreak is a no-op by default.
func (b *ObjectBase) RenderBeforeBreak(*RenderContext, geom.Point, *Line) {}

// RenderSpanningContinuation is a no-op by default.
func (b *ObjectBase) RenderSpanningContinuation(*RenderContext, geom.Point, *Line, units.Unit) {}

// RenderAfterBreak is a no-op by default.
func (b *ObjectBase) RenderAfterBreak(*RenderContext, geom.Point, *Line, units.Unit) {}

// Element is a plain positioned object with no visual representation of
// its own, used for grouping and as an anchor point for children.
type Element struct {
	ObjectBase
}

// NewElement creates an invisible positioned object.
func NewElement(pos geom.Point, parent Object) *Element {
	e := &Element{}
	e.Init(e, pos, parent)
	return e
}

// Attach adds child to parent's children and notifies ancestor caches.
// A child already attached elsewhere is moved.
func Attach(parent, child Object) {
	cb := child.Base()
	if cb.parent != nil {
		Detach(child)
	}
	cb.parent = parent
	pb := parent.Base()
	pb.children = append(pb.children, child)
	notifyStructureChanged(child)
}

// Detach removes the object and its whole subtree from the tree. Ancestor
// caches are notified so the subtree disappears from all layout indices.
func Detach(child Object) {
	cb := child.Base()
	parent := cb.parent
	if parent == nil {
		return
	}
	pb := parent.Base()
	for i, c := range pb.children {
		if c == child {
			pb.children = append(pb.children[:i], pb.children[i+1:]...)
			break
		}
	}
	cb.parent = nil
	notifyStructureChanged(parent.Base().self)
}

// notifyStructureChanged informs obj and each of its ancestors that the
// subtree below them changed.
func notifyStructureChanged(obj Object) {
	for node := obj; node != nil; node = node.Base().parent {
		if observer, ok := node.(StructureObserver); ok {
			observer.DescendantsChanged()
		}
	}
}

// Walk visits obj and its descendants in depth-first pre-order. Returning
// false from visit stops the walk.
func Walk(obj Object, visit func(Object) bool) bool {
	if !visit(obj) {
		return false
	}
	for _, child := range obj.Base().children {
		if !Walk(child, visit) {
			return false
		}
	}
	return true
}

// Ancestors returns the chain of owners from obj's parent up to the root.
func Ancestors(obj Object) []Object {
	var chain []Object
	for node := obj.Base().parent; node != nil; node = node.Base().parent {
		chain = append(chain, node)
	}
	return chain
}
