package core

import (
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/paper"
	"github.com/cantus/engrave/units"
)

// PageSide is the left/right side a page lies on when printed. It
// determines which side the binding gutter is placed on.
type PageSide int

const (
	// LeftPage is a verso page; the gutter sits on its right.
	LeftPage PageSide = iota
	// RightPage is a recto page; the gutter sits on its left.
	RightPage
)

// String returns "left" or "right".
func (s PageSide) String() string {
	if s == LeftPage {
		return "left"
	}
	return "right"
}

// Page is a document page. Every positioned object has a Page as an
// ancestor. Pages are created and managed by [Document]; user code should
// not construct them directly.
//
// A page's position is the document-space location of the top-left corner
// of its live area, the region bounded by the margins where layout occurs.
type Page struct {
	ObjectBase

	document *Document
	index    int
	side     PageSide
	paper    paper.Paper
}

func newPage(pos geom.Point, document *Document, index int, side PageSide, p paper.Paper) *Page {
	page := &Page{
		document: document,
		index:    index,
		side:     side,
		paper:    p,
	}
	page.Init(page, pos, document)
	return page
}

// Index returns the page's index in the document.
func (p *Page) Index() int { return p.index }

// Side returns which side the page lies on when printed.
func (p *Page) Side() PageSide { return p.side }

// Paper returns the page's paper geometry.
func (p *Page) Paper() paper.Paper { return p.paper }

// BoundingRect returns the full paper rectangle relative to the page's
// position (the live-area origin), accounting for the gutter side.
func (p *Page) BoundingRect() geom.Rect {
	var x units.Unit
	if p.side == RightPage {
		x = p.paper.Gutter.Add(p.paper.MarginLeft).Neg()
	} else {
		x = p.paper.MarginLeft.Neg()
	}
	return geom.NewRect(x, p.paper.MarginTop.Neg(), p.paper.Width, p.paper.Height)
}

// FullMarginLeft returns the left margin including the gutter when the
// gutter falls on the left.
func (p *Page) FullMarginLeft() units.Unit {
	if p.side == RightPage {
		return p.paper.MarginLeft.Add(p.paper.Gutter)
	}
	return p.paper.MarginLeft
}

// FullMarginRight returns the right margin including the gutter when the
// gutter falls on the right.
func (p *Page) FullMarginRight() units.Unit {
	if p.side == RightPage {
		return p.paper.MarginRight
	}
	return p.paper.MarginRight.Add(p.paper.Gutter)
}

// LeftMarginX returns the x position of the live area's left edge,
// relative to the page. Always zero; provided as a readable synonym.
func (p *Page) LeftMarginX() units.Unit { return units.ZERO }

// RightMarginX returns the x position of the live area's right edge,
// relative to the page.
func (p *Page) RightMarginX() units.Unit { return p.paper.LiveWidth() }

// CenterX returns the x position of the live area's horizontal center.
func (p *Page) CenterX() units.Unit { return p.paper.LiveWidth().Div(2) }
