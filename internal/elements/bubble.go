package elements

import (
	"math"

	"github.com/buffos/go-roadmap/internal/drawing"
	"github.com/buffos/go-roadmap/internal/layout"
	"github.com/buffos/go-roadmap/internal/textmetrics"
)

// Direction is where a bubble's pointer aims.
type Direction string

const (
	// Down puts the bubble above its tip.
	Down Direction = "down"
	// Up puts the bubble below its tip.
	Up Direction = "up"
)

const (
	bubbleTextSize = 13.0
	bubblePadX     = 28.0
	bubbleMinW     = 80.0
	bubbleH        = 32.0
	bubbleTipGap   = 14.0
	pointerLen     = 12.0
	pointerHalf    = 7.0
	pointerInset   = 10.0
	bubbleStroke   = "#FF6B00"
)

// Bubble is where a speech bubble ended up.
type Bubble struct {
	X, Y, W, H float64
	PointerX   float64
}

// SpeechBubble draws label in a rounded box pointing at (tipX, tipY). The box
// is kept between minX and the right chart padding, and the pointer inside
// the box.
func SpeechBubble(c drawing.Canvas, m textmetrics.Measurer, label string, tipX, tipY, minX float64, dir Direction, fill string) Bubble {
	bw := math.Max(m.MeasureWidth(label, bubbleTextSize, textmetrics.Bold)+bubblePadX, bubbleMinW)
	by := tipY + bubbleTipGap
	if dir == Down {
		by = tipY - bubbleH - bubbleTipGap
	}
	bx := math.Max(minX, math.Min(layout.SVGWidth-layout.PadRight-bw, tipX-bw/2))
	px := math.Min(bx+bw-pointerInset, math.Max(bx+pointerInset, tipX))

	c.RoundedRect(bx, by, bw, bubbleH, 8, drawing.Sketch(bubbleStroke, 1.8, 2).WithFill(fill))

	py, end := by, by-pointerLen
	if dir == Down {
		py, end = by+bubbleH, by+bubbleH+pointerLen
	}
	c.Polygon([]drawing.Point{{X: px - pointerHalf, Y: py}, {X: px + pointerHalf, Y: py}, {X: px, Y: end}},
		drawing.Style{Fill: fill, FillStyle: drawing.FillSolid, Stroke: bubbleStroke, StrokeWidth: 1.5, Plain: true})

	c.Text(label, bx+bw/2, by+bubbleH/2+5, drawing.TextOpts{Size: bubbleTextSize, Fill: "#E65100", Weight: textmetrics.Bold})
	return Bubble{X: bx, Y: by, W: bw, H: bubbleH, PointerX: px}
}
