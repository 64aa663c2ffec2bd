package core

import (
	"errors"
	"testing"

	"github.com/cantus/engrave/paper"
	"github.com/cantus/engrave/units"
)

func TestDocumentPos(t *testing.T) {
	doc := NewDocument(paper.A4)
	page := doc.PageAt(0)
	parent := NewElement(pt(10, 20), page)
	child := NewElement(pt(1, 2), parent)

	got := DocumentPos(child)
	want := DocumentPos(page).Add(pt(11, 22))
	if !got.Eq(want) {
		t.Errorf("DocumentPos() = %+v, want %+v", got, want)
	}
}

func TestMapBetweenSiblings(t *testing.T) {
	root := NewElement(pt(0, 0), nil)
	a := NewElement(pt(10, 10), root)
	b := NewElement(pt(25, 5), root)

	offset, err := MapBetween(a, b)
	if err != nil {
		t.Fatalf("MapBetween() error: %v", err)
	}
	if !offset.Eq(pt(15, -5)) {
		t.Errorf("MapBetween() = %+v, want (15, -5)", offset)
	}
}

func TestMapBetweenAncestorDescendant(t *testing.T) {
	root := NewElement(pt(0, 0), nil)
	mid := NewElement(pt(10, 0), root)
	leaf := NewElement(pt(5, 3), mid)

	down, err := MapBetween(root, leaf)
	if err != nil {
		t.Fatalf("MapBetween() error: %v", err)
	}
	if !down.Eq(pt(15, 3)) {
		t.Errorf("MapBetween(root, leaf) = %+v, want (15, 3)", down)
	}

	up, err := MapBetween(leaf, root)
	if err != nil {
		t.Fatalf("MapBetween() error: %v", err)
	}
	if !up.Eq(pt(-15, -3)) {
		t.Errorf("MapBetween(leaf, root) = %+v, want (-15, -3)", up)
	}
}

// Mapping between objects in the same flowable works in timeline space:
// the offset reflects timeline positions even when line breaking would
// place the objects on different pages.
func TestMapBetweenInsideFlowableUsesTimelineSpace(t *testing.T) {
	doc := NewDocument(paper.A4)
	page := doc.PageAt(0)
	f := NewFlowable(pt(0, 0), page, units.Mm.New(2000), units.Mm.New(20))
	a := NewElement(pt(10, 0), f)
	b := NewElement(pt(1500, 0), f)

	if err := f.Layout(doc); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	offset, err := MapBetween(a, b)
	if err != nil {
		t.Fatalf("MapBetween() error: %v", err)
	}
	if !offset.X.Eq(gu(1490)) {
		t.Errorf("timeline offset = %v, want 1490", offset.X)
	}
}

func TestMapBetweenDisjoint(t *testing.T) {
	a := NewElement(pt(0, 0), nil)
	b := NewElement(pt(0, 0), nil)

	_, err := MapBetween(a, b)
	if !errors.Is(err, ErrDisjointTree) {
		t.Errorf("MapBetween() error = %v, want ErrDisjointTree", err)
	}

	_, err = MapXBetween(a, b)
	if !errors.Is(err, ErrDisjointTree) {
		t.Errorf("MapXBetween() error = %v, want ErrDisjointTree", err)
	}
}

func TestAncestorFlowableAndPage(t *testing.T) {
	doc := NewDocument(paper.A4)
	page := doc.PageAt(0)
	f := NewFlowable(pt(0, 0), page, gu(100), gu(10))
	inner := NewElement(pt(1, 1), f)
	outer := NewElement(pt(1, 1), page)

	if AncestorFlowable(inner) != f {
		t.Error("inner should report its flowable")
	}
	if AncestorFlowable(outer) != nil {
		t.Error("outer should not report a flowable")
	}
	// An object is not its own flowable.
	if AncestorFlowable(f) != nil {
		t.Error("flowable should not be its own ancestor flowable")
	}
	if AncestorPage(inner) != page {
		t.Error("inner should report its page")
	}
	if AncestorPage(doc) != nil {
		t.Error("document has no ancestor page")
	}
}

func TestDescendantPosX(t *testing.T) {
	doc := NewDocument(paper.A4)
	f := NewFlowable(pt(0, 0), doc.PageAt(0), gu(100), gu(10))
	parent := NewElement(pt(10, 4), f)
	child := NewElement(pt(7, 1), parent)

	x, err := f.DescendantPosX(child)
	if err != nil {
		t.Fatalf("DescendantPosX() error: %v", err)
	}
	if !x.Eq(gu(17)) {
		t.Errorf("DescendantPosX() = %v, want 17", x)
	}

	stranger := NewElement(pt(0, 0), nil)
	if _, err := f.DescendantPosX(stranger); err == nil {
		t.Error("DescendantPosX() should fail for non-descendants")
	}
}
