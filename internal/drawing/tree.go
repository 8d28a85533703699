package drawing

import "math"

// Walk visits every node depth-first in drawing order. Returning false from
// fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node) bool) {
	var visit func(nodes []*Node)
	visit = func(nodes []*Node) {
		for _, n := range nodes {
			if fn(n) {
				visit(n.Children)
			}
		}
	}
	visit(t.Nodes)
}

// Find returns the first group with the given ID, or nil.
func (t *Tree) Find(id string) *Node {
	var found *Node
	t.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// Texts returns every text node under nodes, in drawing order.
func Texts(nodes []*Node) []*Node {
	var out []*Node
	for _, n := range nodes {
		if n.Kind == KindText {
			out = append(out, n)
		}
		out = append(out, Texts(n.Children)...)
	}
	return out
}

// Bounds is an axis-aligned box that grows to include geometry.
type Bounds struct {
	MinX, MaxX, MinY, MaxY float64
	IsSet                  bool
}

// UpdatePoint grows b to include (x, y).
func (b *Bounds) UpdatePoint(x, y float64) {
	if !b.IsSet {
		b.MinX, b.MaxX = x, x
		b.MinY, b.MaxY = y, y
		b.IsSet = true
		return
	}
	b.MinX = math.Min(b.MinX, x)
	b.MaxX = math.Max(b.MaxX, x)
	b.MinY = math.Min(b.MinY, y)
	b.MaxY = math.Max(b.MaxY, y)
}

// UpdateRect grows b to include a rectangle with positive size.
func (b *Bounds) UpdateRect(x, y, width, height float64) {
	if width > 0 && height > 0 {
		b.UpdatePoint(x, y)
		b.UpdatePoint(x+width, y+height)
	}
}

// Overlaps reports whether two set boxes share interior area.
func (b Bounds) Overlaps(o Bounds) bool {
	if !b.IsSet || !o.IsSet {
		return false
	}
	return b.MinX < o.MaxX && o.MinX < b.MaxX && b.MinY < o.MaxY && o.MinY < b.MaxY
}

// ShapeBounds returns the geometric extent of the non-text primitives under
// n, including n itself. Text is excluded because its extent depends on the
// font.
func ShapeBounds(n *Node) Bounds {
	var b Bounds
	var visit func(n *Node)
	visit = func(n *Node) {
		switch n.Kind {
		case KindRect:
			b.UpdateRect(n.X, n.Y, n.W, n.H)
		case KindLine:
			b.UpdatePoint(n.X, n.Y)
			b.UpdatePoint(n.X2, n.Y2)
		case KindCircle:
			b.UpdatePoint(n.X-n.R, n.Y-n.R)
			b.UpdatePoint(n.X+n.R, n.Y+n.R)
		case KindPath, KindPolygon:
			for _, p := range n.Points {
				b.UpdatePoint(p.X, p.Y)
			}
		}
		for _, c := range n.Children {
			visit(c)
		}
	}
	visit(n)
	return b
}
