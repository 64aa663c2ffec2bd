package core

import (
	"testing"

	"github.com/cantus/engrave/paper"
	"github.com/cantus/engrave/units"
)

func TestPageMarginsWithGutter(t *testing.T) {
	p := testPaper
	p.Gutter = gu(8)
	doc := NewDocument(p)

	recto := doc.PageAt(0)
	verso := doc.PageAt(1)

	if !recto.FullMarginLeft().Eq(gu(18)) {
		t.Errorf("recto full left margin = %v, want 18", recto.FullMarginLeft())
	}
	if !recto.FullMarginRight().Eq(gu(10)) {
		t.Errorf("recto full right margin = %v, want 10", recto.FullMarginRight())
	}
	if !verso.FullMarginLeft().Eq(gu(10)) {
		t.Errorf("verso full left margin = %v, want 10", verso.FullMarginLeft())
	}
	if !verso.FullMarginRight().Eq(gu(18)) {
		t.Errorf("verso full right margin = %v, want 18", verso.FullMarginRight())
	}
}

func TestPageBoundingRect(t *testing.T) {
	p := testPaper
	p.Gutter = gu(8)
	doc := NewDocument(p)

	rect := doc.PageAt(0).BoundingRect()
	if !rect.X.Eq(gu(-18)) {
		t.Errorf("recto rect x = %v, want -18", rect.X)
	}
	if !rect.Y.Eq(gu(-10)) {
		t.Errorf("rect y = %v, want -10", rect.Y)
	}
	if !rect.Width.Eq(p.Width) || !rect.Height.Eq(p.Height) {
		t.Errorf("rect size = %v x %v, want paper size", rect.Width, rect.Height)
	}

	versoRect := doc.PageAt(1).BoundingRect()
	if !versoRect.X.Eq(gu(-10)) {
		t.Errorf("verso rect x = %v, want -10", versoRect.X)
	}
}

func TestPageLiveAreaSynonyms(t *testing.T) {
	doc := NewDocument(paper.A4)
	page := doc.PageAt(0)

	if !page.LeftMarginX().Eq(units.ZERO) {
		t.Errorf("LeftMarginX() = %v, want 0", page.LeftMarginX())
	}
	if !page.RightMarginX().Eq(paper.A4.LiveWidth()) {
		t.Errorf("RightMarginX() = %v, want live width", page.RightMarginX())
	}
	if !page.CenterX().Eq(paper.A4.LiveWidth().Div(2)) {
		t.Errorf("CenterX() = %v, want half live width", page.CenterX())
	}
}
