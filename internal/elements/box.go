package elements

import (
	"math"

	"github.com/buffos/go-roadmap/internal/drawing"
	"github.com/buffos/go-roadmap/internal/fit"
	"github.com/buffos/go-roadmap/internal/textmetrics"
)

// BoxSpec is the content and colors of one info box. Sub and SubFill are
// optional.
type BoxSpec struct {
	Heading string
	Formula string
	Result  string
	Sub     string

	Fill        string
	Stroke      string
	FormulaFill string
	ResultFill  string
	SubFill     string
}

const (
	boxPadX       = 8.0  // per side
	headingBase   = 16.0 // heading baseline below the box top
	headingBottom = 22.0 // body area starts here
	boxLeading    = 4.0
	subGap        = 2.0
)

type boxLine struct {
	text   string
	size   float64
	weight textmetrics.Weight
	fill   string
}

// InfoBox draws a box at (x, y) with a small heading and a body of formula,
// result and optional sub-line. Each body line is fitted to the inner width on
// its own; the body is centered in the space under the heading. A body taller
// than that space starts right under the heading and runs down.
func InfoBox(c drawing.Canvas, m textmetrics.Measurer, x, y, w, h float64, spec BoxSpec) {
	c.Rect(x, y, w, h, drawing.Sketch(spec.Stroke, 2, 2).WithFill(spec.Fill))

	cx := x + w/2
	inner := w - 2*boxPadX

	hs := fit.FontSize(m, spec.Heading, inner, 11, 8, textmetrics.Normal)
	c.Text(spec.Heading, cx, y+headingBase, drawing.TextOpts{Size: float64(hs), Fill: "#888", Weight: textmetrics.Normal})

	var body []boxLine
	add := func(b fit.Block, weight textmetrics.Weight, fill string) {
		for _, l := range b.Lines {
			body = append(body, boxLine{text: l, size: float64(b.Size), weight: weight, fill: fill})
		}
	}
	add(fit.TextWithGap(m, spec.Formula, inner, 13, 8, textmetrics.Bold, boxLeading), textmetrics.Bold, spec.FormulaFill)
	add(fit.TextWithGap(m, spec.Result, inner, 19, 8, textmetrics.Bold, boxLeading), textmetrics.Bold, spec.ResultFill)
	nMain := len(body)
	if spec.Sub != "" && spec.SubFill != "" {
		add(fit.TextWithGap(m, spec.Sub, inner, 10, 7, textmetrics.Normal, boxLeading), textmetrics.Normal, spec.SubFill)
	}

	// Each line owns [baseline-size, baseline+leading], so lines of
	// different sizes never overlap.
	used := 0.0
	for i, l := range body {
		used += l.size + boxLeading
		if i == nMain {
			used += subGap
		}
	}
	top := y + headingBottom + math.Max(0, (h-headingBottom-used)/2)

	cur := top
	for i, l := range body {
		if i == nMain {
			cur += subGap
		}
		base := cur + l.size
		c.Text(l.text, cx, base, drawing.TextOpts{Size: l.size, Fill: l.fill, Weight: l.weight})
		cur = base + boxLeading
	}
}
