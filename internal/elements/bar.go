// Package elements draws the composite pieces of a roadmap (phase bars, info
// boxes, speech bubbles, the graduation milestone and doodles) from canvas
// primitives and fitted text.
package elements

import (
	"math"

	"github.com/buffos/go-roadmap/internal/drawing"
	"github.com/buffos/go-roadmap/internal/fit"
	"github.com/buffos/go-roadmap/internal/layout"
	"github.com/buffos/go-roadmap/internal/textmetrics"
)

// Tier is how a bar label was placed.
type Tier int

const (
	TierNone Tier = iota
	TierRotated
	TierHorizontal
)

func (t Tier) String() string {
	switch t {
	case TierHorizontal:
		return "horizontal"
	case TierRotated:
		return "rotated"
	default:
		return "none"
	}
}

// Bar widths, in px, at which a label switches tier.
const (
	HorizontalLabelMin = 80.0
	RotatedLabelMin    = 22.0
)

// LabelTier picks the label placement for a bar of width w.
func LabelTier(w float64) Tier {
	switch {
	case w >= HorizontalLabelMin:
		return TierHorizontal
	case w >= RotatedLabelMin:
		return TierRotated
	default:
		return TierNone
	}
}

// BarText is the two-part label of a phase bar and the colors of each part.
type BarText struct {
	Name     string
	Duration string
	NameFill string
	DurFill  string
}

// PhaseBar draws the rectangle of one phase over span.
func PhaseBar(c drawing.Canvas, span layout.Span, s drawing.Style) {
	c.Rect(span.X, layout.BarTop, span.W, layout.BarHeight, s)
}

// BarLabel writes the label of the bar over span and reports the tier used.
// Wide bars get two horizontal lines, narrow ones a single line turned
// counter-clockwise, and slivers nothing.
func BarLabel(c drawing.Canvas, m textmetrics.Measurer, span layout.Span, t BarText) Tier {
	cx := span.Center()
	cy := layout.BarTop + layout.BarHeight/2
	tier := LabelTier(span.W)

	switch tier {
	case TierHorizontal:
		inner := span.W - 8
		fitted(c, m, t.Name, cx, cy-12, inner, 14, 8, textmetrics.Bold, t.NameFill)
		fitted(c, m, t.Duration, cx, cy+14, inner, 22, 8, textmetrics.Bold, t.DurFill)
	case TierRotated:
		label := t.Name + " " + t.Duration
		start := int(math.Min(12, math.Floor(span.W*0.72)))
		size := fit.FontSize(m, label, layout.BarHeight-8, start, 8, textmetrics.Bold)
		c.Text(label, cx, cy, drawing.TextOpts{
			Size:   float64(size),
			Fill:   t.NameFill,
			Weight: textmetrics.Bold,
			Rotate: drawing.Rotation(-90),
		})
	}
	return tier
}

// FreelanceLabel writes the three centered lines of the open-ended phase.
func FreelanceLabel(c drawing.Canvas, m textmetrics.Measurer, span layout.Span, name, duration, target string) {
	cx := span.Center()
	cy := layout.BarTop + layout.BarHeight/2
	inner := span.W - 24
	fitted(c, m, name, cx, cy-26, inner, 18, 8, textmetrics.Bold, "#006064")
	fitted(c, m, duration, cx, cy, inner, 15, 8, textmetrics.Bold, "#00838F")
	fitted(c, m, target, cx, cy+26, inner, 14, 8, textmetrics.Bold, "#00838F")
}

// fitted draws text shrunk and wrapped into maxWidth, centered on (cx, cy),
// and returns the height it used.
func fitted(c drawing.Canvas, m textmetrics.Measurer, text string, cx, cy, maxWidth float64, start, minSize int, w textmetrics.Weight, fill string) float64 {
	b := fit.Text(m, text, maxWidth, start, minSize, w)
	for i, y := range b.Baselines(cy) {
		c.Text(b.Lines[i], cx, y, drawing.TextOpts{Size: float64(b.Size), Fill: fill, Weight: w})
	}
	return b.Height()
}
