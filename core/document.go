package core

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/paper"
	"github.com/cantus/engrave/units"
)

// canvasPageGap is the horizontal gap between page papers on the document
// canvas. Purely cosmetic; it keeps pages visually separate in previews.
var canvasPageGap = units.Mm.New(25)

// Document is the root of the positioned-object tree. It owns the page
// list, supplies new pages to the line breaker on demand, and drives the
// three-phase render cycle.
type Document struct {
	ObjectBase

	paper  paper.Paper
	pages  []*Page
	logger *log.Logger
}

// NewDocument creates an empty document using the given paper geometry
// for all pages.
func NewDocument(p paper.Paper) *Document {
	d := &Document{
		paper:  p,
		logger: log.New(io.Discard),
	}
	d.Init(d, geom.ORIGIN, nil)
	return d
}

// SetLogger installs a logger for layout-pass debug output. The default
// logger discards everything.
func (d *Document) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	d.logger = logger
}

// Paper returns the paper geometry used for new pages.
func (d *Document) Paper() paper.Paper { return d.paper }

// SetPaper changes the page geometry. Existing pages are discarded and
// all flowables return to the unbroken state, since computed line breaks
// are no longer valid.
func (d *Document) SetPaper(p paper.Paper) {
	d.paper = p
	for _, page := range d.pages {
		Detach(page)
	}
	d.pages = nil
	for _, f := range d.flowables() {
		f.invalidate()
	}
}

// Pages returns the pages created so far.
func (d *Document) Pages() []*Page { return d.pages }

// PageAt returns the page at the given index, creating it and any pages
// before it on demand. The first page is a recto (right) page and sides
// alternate from there.
func (d *Document) PageAt(index int) *Page {
	for len(d.pages) <= index {
		i := len(d.pages)
		side := RightPage
		if i%2 == 1 {
			side = LeftPage
		}
		fullLeft := d.paper.MarginLeft
		if side == RightPage {
			fullLeft = fullLeft.Add(d.paper.Gutter)
		}
		pos := geom.NewPoint(
			d.paper.Width.Add(canvasPageGap).Mul(float64(i)).Add(fullLeft),
			d.paper.MarginTop,
		)
		d.pages = append(d.pages, newPage(pos, d, i, side, d.paper))
		d.logger.Debug("created page", "index", i, "side", side)
	}
	return d.pages[index]
}

// flowables collects every flowable in the tree in walk order.
func (d *Document) flowables() []*Flowable {
	var fs []*Flowable
	Walk(d, func(obj Object) bool {
		if f, ok := obj.(*Flowable); ok {
			fs = append(fs, f)
		}
		return true
	})
	return fs
}

// Render runs one full layout-and-draw cycle against the given backend.
//
// The pass is synchronous and single-threaded: pre-render rebuilds caches
// and breaks every flowable into lines, the render phase walks the stable
// line list issuing slice draw calls, and post-render clears all transient
// caches. Any failure aborts the whole pass; no partial layout state is
// retained.
func (d *Document) Render(r Renderer) error {
	rc := &RenderContext{Renderer: r, Logger: d.logger}

	// Pre-render: margin controllers are re-registered from scratch, then
	// object hooks rebuild their indices, then every flowable is broken.
	d.logger.Debug("render pass: pre-render")
	flowables := d.flowables()
	for _, f := range flowables {
		f.ResetMarginControllers()
	}
	Walk(d, func(obj Object) bool {
		obj.PreRender()
		return true
	})
	for _, f := range flowables {
		if err := f.Layout(d); err != nil {
			d.postRender()
			return fmt.Errorf("breaking flowable: %w", err)
		}
		d.logger.Debug("broke flowable",
			"length", f.Length(), "lines", len(f.Lines()), "pages", len(d.pages))
	}

	// Render: walk the tree issuing draw calls against the stable lines.
	d.logger.Debug("render pass: render")
	var renderErr error
	for _, child := range d.Children() {
		if err := d.renderTree(rc, child); err != nil {
			renderErr = err
			break
		}
	}

	// Post-render runs even on failure so no stale caches survive.
	d.postRender()
	if renderErr != nil {
		return renderErr
	}
	d.logger.Debug("render pass: complete")
	return nil
}

func (d *Document) postRender() {
	Walk(d, func(obj Object) bool {
		obj.PostRender()
		return true
	})
}

// renderTree renders obj and recurses into its children. Objects inside a
// flowable are dispatched per line slice; everything else renders complete
// at its document position.
func (d *Document) renderTree(rc *RenderContext, obj Object) error {
	if _, isFlowable := obj.(*Flowable); !isFlowable {
		if f := AncestorFlowable(obj); f != nil {
			if err := d.renderFlowableObject(rc, f, obj); err != nil {
				return err
			}
		} else {
			obj.RenderComplete(rc, DocumentPos(obj), nil)
		}
	}
	for _, child := range obj.Base().Children() {
		if err := d.renderTree(rc, child); err != nil {
			return err
		}
	}
	return nil
}

// renderFlowableObject issues one of the four mutually exclusive slice
// calls per line intersecting the object's timeline extent.
func (d *Document) renderFlowableObject(rc *RenderContext, f *Flowable, obj Object) error {
	objPos, err := f.DescendantPos(obj)
	if err != nil {
		return err
	}
	lines := f.Lines()
	if len(lines) == 0 {
		return fmt.Errorf("flowable is %v during render phase", f.State())
	}

	idx := lineIndexAt(lines, objPos.X)
	line := lines[idx]
	start := line.CanvasPos().Add(geom.NewPoint(objPos.X.Sub(line.FlowableX), objPos.Y))
	end := objPos.X.Add(obj.BreakableLength())

	if end.Le(line.End()) || idx == len(lines)-1 {
		obj.RenderComplete(rc, start, line)
		return nil
	}
	obj.RenderBeforeBreak(rc, start, line)
	for i := idx + 1; i < len(lines); i++ {
		line = lines[i]
		contPos := line.CanvasPos().Add(geom.NewPoint(units.ZERO, objPos.Y))
		objectX := line.FlowableX.Sub(objPos.X)
		if end.Gt(line.End()) && i < len(lines)-1 {
			obj.RenderSpanningContinuation(rc, contPos, line, objectX)
		} else {
			obj.RenderAfterBreak(rc, contPos, line, objectX)
			break
		}
	}
	return nil
}

// lineIndexAt returns the index of the line covering a timeline position,
// clamping to the first and last lines.
func lineIndexAt(lines []*Line, x units.Unit) int {
	for i, line := range lines {
		if line.Covers(x) {
			return i
		}
	}
	if x.Lt(lines[0].FlowableX) {
		return 0
	}
	return len(lines) - 1
}
