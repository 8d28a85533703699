package elements

import "github.com/buffos/go-roadmap/internal/drawing"

// StickFigure draws a person whose hips are at (cx, cy+10).
func StickFigure(c drawing.Canvas, cx, cy float64, color string) {
	s := drawing.Sketch(color, 2, 2).WithBowing(0)
	c.Circle(cx, cy-22, 8, s)
	c.Line(cx, cy-14, cx, cy+10, s)
	c.Line(cx-12, cy-4, cx+12, cy-4, s)
	c.Line(cx, cy+10, cx-10, cy+26, s)
	c.Line(cx, cy+10, cx+10, cy+26, s)
}

var sparkleRays = [4][4]float64{
	{0, -8, 0, 8},
	{8, 0, -8, 0},
	{6, -6, -6, 6},
	{-6, -6, 6, 6},
}

// Sparkle draws a small four-ray star centred on (x, y).
func Sparkle(c drawing.Canvas, x, y float64, color string) {
	s := drawing.PlainStroke(color, 2)
	s.LineCap = "round"
	for _, r := range sparkleRays {
		c.Line(x+r[0], y+r[1], x+r[2], y+r[3], s)
	}
}
