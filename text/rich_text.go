package text

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/cantus/engrave/core"
	"github.com/cantus/engrave/geom"
	"github.com/cantus/engrave/units"
)

// Style is the character style of one rich text run.
type Style struct {
	Bold   bool
	Italic bool
}

// Run is a stretch of uniformly styled text.
type Run struct {
	Text  string
	Style Style
}

// RichText is a multi-line text block built from a small HTML subset:
// <b>/<strong>, <i>/<em>, <br> for line breaks, and <p> for blocks.
// Unknown elements contribute their text content unchanged.
type RichText struct {
	core.ObjectBase

	lines  [][]Run
	sizePt float64
}

// NewRichText parses markup into a text block.
func NewRichText(pos geom.Point, parent core.Object, markup string, sizePt float64) (*RichText, error) {
	if sizePt <= 0 {
		sizePt = DefaultSizePt
	}
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing rich text markup: %w", err)
	}

	r := &RichText{sizePt: sizePt}
	var current []Run
	var walk func(n *html.Node, style Style)
	walk = func(n *html.Node, style Style) {
		switch n.Type {
		case html.TextNode:
			if n.Data != "" {
				current = append(current, Run{Text: n.Data, Style: style})
			}
			return
		case html.ElementNode:
			switch n.Data {
			case "b", "strong":
				style.Bold = true
			case "i", "em":
				style.Italic = true
			case "br":
				r.lines = append(r.lines, current)
				current = nil
				return
			case "p":
				if len(current) > 0 {
					r.lines = append(r.lines, current)
					current = nil
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, style)
		}
		if n.Type == html.ElementNode && n.Data == "p" && len(current) > 0 {
			r.lines = append(r.lines, current)
			current = nil
		}
	}
	walk(doc, Style{})
	if len(current) > 0 {
		r.lines = append(r.lines, current)
	}

	r.Init(r, pos, parent)
	return r, nil
}

// SizePt returns the point size.
func (r *RichText) SizePt() float64 { return r.sizePt }

// Lines returns the parsed lines of styled runs.
func (r *RichText) Lines() [][]Run { return r.lines }

// PlainText returns the text content with lines joined by newlines.
func (r *RichText) PlainText() string {
	var b strings.Builder
	for i, line := range r.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, run := range line {
			b.WriteString(run.Text)
		}
	}
	return b.String()
}

// leading returns the baseline-to-baseline distance.
func (r *RichText) leading() units.Unit {
	return units.GraphicUnit.New(r.sizePt * 1.2)
}

// RenderComplete draws each line at increasing baselines. The basic
// renderer contract carries no style, so runs of one line are joined.
func (r *RichText) RenderComplete(rc *core.RenderContext, pos geom.Point, _ *core.Line) {
	y := pos.Y
	for _, line := range r.lines {
		var b strings.Builder
		for _, run := range line {
			b.WriteString(run.Text)
		}
		rc.Renderer.DrawText(b.String(), geom.NewPoint(pos.X, y), r.sizePt)
		y = y.Add(r.leading())
	}
}
