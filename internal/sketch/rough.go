package sketch

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/buffos/go-roadmap/internal/drawing"
)

// maxRandomnessOffset bounds endpoint jitter, in px, before roughness scaling.
const maxRandomnessOffset = 2.0

// generator produces hand-drawn path data. All randomness comes from rng so a
// given seed always yields the same strokes.
type generator struct {
	rng *rand.Rand
}

func newGenerator(seed uint64) *generator {
	return &generator{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

func (g *generator) offset(lo, hi, roughness float64) float64 {
	return roughness * (g.rng.Float64()*(hi-lo) + lo)
}

func (g *generator) offsetOpt(x, roughness float64) float64 {
	return g.offset(-x, x, roughness)
}

// roughnessGain damps jitter on long strokes so they do not look scribbled.
func roughnessGain(length float64) float64 {
	switch {
	case length < 200:
		return 1
	case length > 500:
		return 0.4
	default:
		return -0.0016668*length + 1.233334
	}
}

// line writes one wobbly cubic from p1 to p2. The overlay pass uses half the
// jitter so the two strokes of a double line stay close together.
func (g *generator) line(sb *strings.Builder, p1, p2 drawing.Point, s drawing.Style, move, overlay bool) {
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	lengthSq := dx*dx + dy*dy
	length := math.Sqrt(lengthSq)
	r := s.Roughness * roughnessGain(length)

	off := maxRandomnessOffset
	if off*off*100 > lengthSq {
		off = length / 10
	}
	half := off / 2
	diverge := 0.2 + g.rng.Float64()*0.2

	midX := s.Bowing * maxRandomnessOffset * (p2.Y - p1.Y) / 200
	midY := s.Bowing * maxRandomnessOffset * (p1.X - p2.X) / 200
	midX = g.offsetOpt(midX, r)
	midY = g.offsetOpt(midY, r)

	jitter := func() float64 {
		if overlay {
			return g.offsetOpt(half, r)
		}
		return g.offsetOpt(off, r)
	}

	if move {
		fmt.Fprintf(sb, "M%s %s ", num(p1.X+jitter()), num(p1.Y+jitter()))
	}
	fmt.Fprintf(sb, "C%s %s, %s %s, %s %s ",
		num(midX+p1.X+dx*diverge+jitter()), num(midY+p1.Y+dy*diverge+jitter()),
		num(midX+p1.X+2*dx*diverge+jitter()), num(midY+p1.Y+2*dy*diverge+jitter()),
		num(p2.X+jitter()), num(p2.Y+jitter()))
}

// doubleLine is the signature sketched stroke: two passes over the same segment.
func (g *generator) doubleLine(sb *strings.Builder, p1, p2 drawing.Point, s drawing.Style) {
	g.line(sb, p1, p2, s, true, false)
	g.line(sb, p1, p2, s, true, true)
}

// outline strokes consecutive points, closing the loop when closed is set.
func (g *generator) outline(points []drawing.Point, closed bool, s drawing.Style) string {
	var sb strings.Builder
	if len(points) < 2 {
		return ""
	}
	for i := 0; i+1 < len(points); i++ {
		g.doubleLine(&sb, points[i], points[i+1], s)
	}
	if closed {
		g.doubleLine(&sb, points[len(points)-1], points[0], s)
	}
	return strings.TrimSpace(sb.String())
}

// solidFill is a slightly shaken copy of the polygon used as its fill.
func (g *generator) solidFill(points []drawing.Point, s drawing.Style) string {
	var sb strings.Builder
	off := maxRandomnessOffset / 2
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&sb, "%s%s %s ", cmd, num(p.X+g.offsetOpt(off, s.Roughness)), num(p.Y+g.offsetOpt(off, s.Roughness)))
	}
	sb.WriteString("Z")
	return sb.String()
}

// ellipse draws a closed curve around (cx, cy) through jittered points. The
// overlay pass starts at a different angle so the two loops never coincide.
func (g *generator) ellipse(cx, cy, r float64, s drawing.Style) string {
	var sb strings.Builder
	steps := int(math.Max(9, math.Ceil(2*math.Pi*r/10)))
	for pass := 0; pass < 2; pass++ {
		jitter := r * 0.08 * s.Roughness
		if pass == 1 {
			jitter /= 2
		}
		start := g.rng.Float64() * 2 * math.Pi
		points := make([]drawing.Point, steps)
		for i := range points {
			a := start + float64(i)*2*math.Pi/float64(steps)
			rr := r + g.offsetOpt(jitter, 1)
			points[i] = drawing.Point{X: cx + rr*math.Cos(a), Y: cy + rr*math.Sin(a)}
		}
		curveThrough(&sb, points)
	}
	return strings.TrimSpace(sb.String())
}

// curveThrough writes a closed Catmull-Rom spline through points as cubics.
func curveThrough(sb *strings.Builder, points []drawing.Point) {
	n := len(points)
	fmt.Fprintf(sb, "M%s %s ", num(points[0].X), num(points[0].Y))
	for i := 0; i < n; i++ {
		p0 := points[(i-1+n)%n]
		p1 := points[i]
		p2 := points[(i+1)%n]
		p3 := points[(i+2)%n]
		c1 := drawing.Point{X: p1.X + (p2.X-p0.X)/6, Y: p1.Y + (p2.Y-p0.Y)/6}
		c2 := drawing.Point{X: p2.X - (p3.X-p1.X)/6, Y: p2.Y - (p3.Y-p1.Y)/6}
		fmt.Fprintf(sb, "C%s %s, %s %s, %s %s ", num(c1.X), num(c1.Y), num(c2.X), num(c2.Y), num(p2.X), num(p2.Y))
	}
}

// rectPoints returns the corners of a rectangle, or a sampled outline when the
// corners are rounded.
func rectPoints(x, y, w, h, r float64) []drawing.Point {
	if r <= 0 {
		return []drawing.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}
	}
	r = math.Min(r, math.Min(w, h)/2)
	const cornerSteps = 4
	corners := []struct{ cx, cy, from float64 }{
		{x + w - r, y + r, -math.Pi / 2},
		{x + w - r, y + h - r, 0},
		{x + r, y + h - r, math.Pi / 2},
		{x + r, y + r, math.Pi},
	}
	var pts []drawing.Point
	for _, c := range corners {
		for i := 0; i <= cornerSteps; i++ {
			a := c.from + float64(i)*(math.Pi/2)/cornerSteps
			pts = append(pts, drawing.Point{X: c.cx + r*math.Cos(a), Y: c.cy + r*math.Sin(a)})
		}
	}
	return pts
}
