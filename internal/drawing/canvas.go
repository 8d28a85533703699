package drawing

import "github.com/buffos/go-roadmap/internal/textmetrics"

// Canvas is what composite elements draw on. Implementations decide how the
// primitives are realized; Builder records them into a Tree.
type Canvas interface {
	Rect(x, y, w, h float64, s Style)
	RoundedRect(x, y, w, h, r float64, s Style)
	Line(x1, y1, x2, y2 float64, s Style)
	Path(points []Point, s Style)
	Polygon(points []Point, s Style)
	Circle(cx, cy, r float64, s Style)
	Text(content string, x, y float64, opts TextOpts)
	Group(id string, draw func(Canvas))
}

// Builder records primitives into a Tree.
type Builder struct {
	tree  *Tree
	stack []*Node
}

// NewBuilder starts an empty tree of the given size.
func NewBuilder(width, height float64) *Builder {
	return &Builder{tree: &Tree{Width: width, Height: height}}
}

// Tree returns the tree built so far.
func (b *Builder) Tree() *Tree { return b.tree }

// SetGrid registers a grid pattern for url(#id) fills.
func (b *Builder) SetGrid(g GridPattern) { b.tree.Grid = &g }

// SetFont records the display font the tree expects at render time.
func (b *Builder) SetFont(family, importURL string) {
	b.tree.FontFamily = family
	b.tree.FontImport = importURL
}

func (b *Builder) add(n *Node) {
	if len(b.stack) == 0 {
		b.tree.Nodes = append(b.tree.Nodes, n)
		return
	}
	parent := b.stack[len(b.stack)-1]
	parent.Children = append(parent.Children, n)
}

func (b *Builder) Rect(x, y, w, h float64, s Style) {
	b.add(&Node{Kind: KindRect, X: x, Y: y, W: w, H: h, Style: s})
}

func (b *Builder) RoundedRect(x, y, w, h, r float64, s Style) {
	b.add(&Node{Kind: KindRect, X: x, Y: y, W: w, H: h, Rx: r, Style: s})
}

func (b *Builder) Line(x1, y1, x2, y2 float64, s Style) {
	b.add(&Node{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2, Style: s})
}

func (b *Builder) Path(points []Point, s Style) {
	b.add(&Node{Kind: KindPath, Points: append([]Point(nil), points...), Style: s})
}

func (b *Builder) Polygon(points []Point, s Style) {
	b.add(&Node{Kind: KindPolygon, Points: append([]Point(nil), points...), Style: s})
}

func (b *Builder) Circle(cx, cy, r float64, s Style) {
	b.add(&Node{Kind: KindCircle, X: cx, Y: cy, R: r, Style: s})
}

func (b *Builder) Text(content string, x, y float64, opts TextOpts) {
	t := &Text{
		Content: content,
		Size:    opts.Size,
		Weight:  opts.Weight,
		Align:   opts.Align,
		Fill:    opts.Fill,
		Opacity: 1,
		Rotate:  opts.Rotate,
	}
	if t.Size == 0 {
		t.Size = 14
	}
	if t.Weight == "" {
		t.Weight = textmetrics.Normal
	}
	if t.Align == "" {
		t.Align = AlignMiddle
	}
	if t.Fill == "" {
		t.Fill = "#333"
	}
	if opts.Opacity != nil {
		t.Opacity = *opts.Opacity
	}
	b.add(&Node{Kind: KindText, X: x, Y: y, Text: t})
}

func (b *Builder) Group(id string, draw func(Canvas)) {
	g := &Node{Kind: KindGroup, ID: id}
	b.add(g)
	b.stack = append(b.stack, g)
	draw(b)
	b.stack = b.stack[:len(b.stack)-1]
}
