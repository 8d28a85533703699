package elements

import (
	"fmt"
	"strings"
	"testing"

	"github.com/buffos/go-roadmap/internal/drawing"
	"github.com/buffos/go-roadmap/internal/layout"
	"github.com/buffos/go-roadmap/internal/textmetrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mono = textmetrics.Monospace{}

func texts(b *drawing.Builder) []*drawing.Node {
	return drawing.Texts(b.Tree().Nodes)
}

func TestLabelTier(t *testing.T) {
	cases := []struct {
		w    float64
		want Tier
	}{
		{0, TierNone},
		{21.9, TierNone},
		{22, TierRotated},
		{79.9, TierRotated},
		{80, TierHorizontal},
		{500, TierHorizontal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, LabelTier(tc.w), "width %v", tc.w)
	}
	assert.Equal(t, "rotated", TierRotated.String())
}

func TestBarLabel_Tiers(t *testing.T) {
	label := BarText{Name: "案件獲得期間", Duration: "1ヶ月", NameFill: "#B8860B", DurFill: "#A0522D"}

	t.Run("horizontal", func(t *testing.T) {
		b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
		tier := BarLabel(b, mono, layout.SpanMonths(0, 12), label)
		assert.Equal(t, TierHorizontal, tier)
		nodes := texts(b)
		require.Len(t, nodes, 2)
		for _, n := range nodes {
			assert.Nil(t, n.Text.Rotate)
		}
	})

	t.Run("rotated", func(t *testing.T) {
		b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
		span := layout.SpanMonths(2, 3) // 17.5px
		span.W = 40
		tier := BarLabel(b, mono, span, label)
		assert.Equal(t, TierRotated, tier)
		nodes := texts(b)
		require.Len(t, nodes, 1)
		n := nodes[0]
		assert.Equal(t, "案件獲得期間 1ヶ月", n.Text.Content)
		require.NotNil(t, n.Text.Rotate)
		assert.Equal(t, -90.0, *n.Text.Rotate)
		assert.LessOrEqual(t, n.Text.Size, 12.0)
		assert.GreaterOrEqual(t, n.Text.Size, 8.0)
	})

	t.Run("none", func(t *testing.T) {
		b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
		tier := BarLabel(b, mono, layout.SpanMonths(2, 3), label)
		assert.Equal(t, TierNone, tier)
		assert.Empty(t, texts(b))
	})
}

// Horizontal text must fit inside the bar; rotated text occupies its font
// size horizontally.
func TestBarLabel_StaysInsideBar(t *testing.T) {
	label := BarText{Name: "学習期間", Duration: "54ヶ月", NameFill: "#E65100", DurFill: "#BF360C"}
	for w := 0.0; w <= 400; w += 0.5 {
		b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
		span := layout.Span{X: 300, W: w}
		BarLabel(b, mono, span, label)
		for _, n := range texts(b) {
			half := mono.MeasureWidth(n.Text.Content, n.Text.Size, n.Text.Weight) / 2
			if n.Text.Rotate != nil {
				half = n.Text.Size / 2
			}
			assert.GreaterOrEqual(t, n.X-half, span.X, "w=%v %q", w, n.Text.Content)
			assert.LessOrEqual(t, n.X+half, span.End(), "w=%v %q", w, n.Text.Content)
		}
	}
}

func TestFreelanceLabel(t *testing.T) {
	b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
	span := layout.SpanMonths(6, 60)
	FreelanceLabel(b, mono, span, "フリーランス期間", "54ヶ月（4年6ヶ月）", "目標: 月 40万円")
	nodes := texts(b)
	require.Len(t, nodes, 3)
	cy := layout.BarTop + layout.BarHeight/2
	assert.Equal(t, cy-26, nodes[0].Y)
	assert.Equal(t, cy, nodes[1].Y)
	assert.Equal(t, cy+26, nodes[2].Y)
	assert.Equal(t, 18.0, nodes[0].Text.Size)
}

func boxTexts(t *testing.T, spec BoxSpec, w, h float64) (*drawing.Node, []*drawing.Node) {
	t.Helper()
	b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
	InfoBox(b, mono, 100, 300, w, h, spec)
	nodes := b.Tree().Nodes
	require.Equal(t, drawing.KindRect, nodes[0].Kind)
	return nodes[0], texts(b)
}

func assertStacked(t *testing.T, box *drawing.Node, nodes []*drawing.Node) {
	t.Helper()
	heading := nodes[0]
	assert.Equal(t, box.Y+16, heading.Y)
	body := nodes[1:]
	require.NotEmpty(t, body)
	assert.GreaterOrEqual(t, body[0].Y-body[0].Text.Size, box.Y+22, "body runs into heading")
	for i := 1; i < len(body); i++ {
		prev, cur := body[i-1], body[i]
		assert.GreaterOrEqual(t, cur.Y-cur.Text.Size, prev.Y, "%q collides with %q", cur.Text.Content, prev.Text.Content)
	}
}

func TestInfoBox_Layout(t *testing.T) {
	spec := BoxSpec{
		Heading: "5年間の貯金合計",
		Formula: "月25万円 × 54ヶ月",
		Result:  "＝ 1,350万円",
		Sub:     "フリーランス期間の積み立て",
		Fill:    "#EDE7F6", Stroke: "#7B1FA2",
		FormulaFill: "#6A1B9A", ResultFill: "#4A148C", SubFill: "#9C27B0",
	}
	box, nodes := boxTexts(t, spec, layout.BoxWidth, layout.BoxHeight)
	require.Len(t, nodes, 4)
	assertStacked(t, box, nodes)

	assert.Equal(t, 11.0, nodes[0].Text.Size)
	assert.Equal(t, textmetrics.Normal, nodes[0].Text.Weight)
	assert.Equal(t, textmetrics.Bold, nodes[2].Text.Weight)
	assert.Equal(t, "#9C27B0", nodes[3].Text.Fill)

	for _, n := range nodes {
		wd := mono.MeasureWidth(n.Text.Content, n.Text.Size, n.Text.Weight)
		assert.LessOrEqual(t, wd, layout.BoxWidth-16, n.Text.Content)
		assert.LessOrEqual(t, n.Y, box.Y+box.H, "%q below box", n.Text.Content)
	}

	// The block is centered under the heading.
	last := nodes[len(nodes)-1]
	above := nodes[1].Y - nodes[1].Text.Size - (box.Y + 22)
	below := box.Y + box.H - (last.Y + 4)
	assert.InDelta(t, above, below, 1e-9)
}

func TestInfoBox_NoSubWithoutColor(t *testing.T) {
	spec := BoxSpec{Heading: "卒業後の月収目標", Formula: "月 40万円", Result: "フリーランス達成！", Sub: "x", Fill: "#E8F5E9", Stroke: "#388E3C"}
	_, nodes := boxTexts(t, spec, layout.BoxWidth, layout.BoxHeight)
	assert.Len(t, nodes, 3)
}

func TestInfoBox_OverflowGrowsDown(t *testing.T) {
	long := strings.Repeat("長い計算式", 12)
	spec := BoxSpec{
		Heading: "案件獲得期間の収入見込み",
		Formula: long,
		Result:  long,
		Sub:     long,
		SubFill: "#000",
	}
	box, nodes := boxTexts(t, spec, 120, layout.BoxHeight)
	require.Greater(t, len(nodes), 6)
	assertStacked(t, box, nodes)
	for _, n := range nodes[1:] {
		assert.LessOrEqual(t, mono.MeasureWidth(n.Text.Content, n.Text.Size, n.Text.Weight), 120.0-16, n.Text.Content)
	}
}

func TestSpeechBubble(t *testing.T) {
	t.Run("down sits above tip", func(t *testing.T) {
		b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
		tipX, tipY := 500.0, layout.BarTop-2
		bb := SpeechBubble(b, mono, "学習終わり！🎉", tipX, tipY, layout.PadLeft, Down, "#FFF8F0")
		assert.Equal(t, tipY-46, bb.Y)
		assert.Equal(t, tipX, bb.PointerX)
		assert.InDelta(t, tipX, bb.X+bb.W/2, 1e-9)

		poly := b.Tree().Nodes[1]
		require.Equal(t, drawing.KindPolygon, poly.Kind)
		assert.True(t, poly.Style.Plain)
		assert.Equal(t, tipY-2, poly.Points[2].Y)
	})

	t.Run("up sits below tip", func(t *testing.T) {
		b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
		bb := SpeechBubble(b, mono, "仕事やめる？", 600, layout.BarBottom, layout.PadLeft, Up, "#FFFDE7")
		assert.Equal(t, layout.BarBottom+14, bb.Y)
		assert.Equal(t, 32.0, bb.H)
	})

	t.Run("minimum width", func(t *testing.T) {
		b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
		bb := SpeechBubble(b, mono, "a", 600, 300, layout.PadLeft, Up, "#fff")
		assert.Equal(t, 80.0, bb.W)
	})

	for _, tipX := range []float64{0, layout.PadLeft, 95, 1100, layout.SVGWidth} {
		t.Run(fmt.Sprintf("clamped at %v", tipX), func(t *testing.T) {
			b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
			bb := SpeechBubble(b, mono, "仕事やめる？", tipX, 300, layout.PadLeft, Up, "#fff")
			assert.GreaterOrEqual(t, bb.X, layout.PadLeft)
			assert.LessOrEqual(t, bb.X+bb.W, layout.SVGWidth-layout.PadRight)
			assert.GreaterOrEqual(t, bb.PointerX, bb.X+10)
			assert.LessOrEqual(t, bb.PointerX, bb.X+bb.W-10)
		})
	}
}

func TestSpeechBubble_RespectsMinX(t *testing.T) {
	b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
	tipX := layout.MonthToX(3)
	bb := SpeechBubble(b, mono, "仕事やめる？", tipX, layout.BarBottom, 120, Up, "#fff")
	assert.Equal(t, 120.0, bb.X)
	assert.Equal(t, tipX, bb.PointerX)
}

func TestMilestone(t *testing.T) {
	b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
	x := layout.MonthToX(6)
	Milestone(b, x)
	nodes := b.Tree().Nodes
	require.Len(t, nodes, 3)

	line := nodes[0]
	assert.Equal(t, drawing.KindLine, line.Kind)
	assert.Equal(t, x, line.X)
	assert.Equal(t, layout.BarTop-6, line.Y)
	assert.Equal(t, layout.BarBottom+6, line.Y2)
	assert.Equal(t, 1.6, line.Style.Roughness)

	banner := nodes[1]
	assert.Equal(t, x+4, banner.X)
	assert.Equal(t, layout.BarBottom+54, banner.Y)
	assert.Equal(t, 108.0, banner.W)
	assert.Equal(t, "#E8F5E9", banner.Style.Fill)
	assert.Equal(t, GraduationLabel, nodes[2].Text.Content)
}

func TestIcons(t *testing.T) {
	b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
	StickFigure(b, 102, 318, "#FF6B00")
	nodes := b.Tree().Nodes
	require.Len(t, nodes, 5)
	assert.Equal(t, drawing.KindCircle, nodes[0].Kind)
	assert.Equal(t, 8.0, nodes[0].R)
	for _, n := range nodes {
		assert.Equal(t, 0.0, n.Style.Bowing)
		assert.Equal(t, 2.0, n.Style.Roughness)
	}

	b = drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
	Sparkle(b, 50, 50, "#00ACC1")
	nodes = b.Tree().Nodes
	require.Len(t, nodes, 4)
	for _, n := range nodes {
		assert.True(t, n.Style.Plain)
		assert.Equal(t, "round", n.Style.LineCap)
	}
}
