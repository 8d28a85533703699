// Package composer lays a whole roadmap out onto a drawing tree.
package composer

import (
	"fmt"

	"github.com/buffos/go-roadmap/internal/drawing"
	"github.com/buffos/go-roadmap/internal/elements"
	"github.com/buffos/go-roadmap/internal/fit"
	"github.com/buffos/go-roadmap/internal/layout"
	"github.com/buffos/go-roadmap/internal/roadmap"
	"github.com/buffos/go-roadmap/internal/textmetrics"
)

// Display font the tree is meant to be rendered with.
const (
	FontFamily    = "'Yomogi', cursive"
	FontImportURL = "https://fonts.googleapis.com/css2?family=Yomogi&display=swap"
)

// Group IDs of the layers of a composed tree.
const (
	GroupBackground = "background"
	GroupTitle      = "title"
	GroupAxis       = "axis"
	GroupBars       = "bars"
	GroupBubbles    = "bubbles"
	GroupMilestone  = "milestone"
	GroupIcons      = "icons"
	GroupMemo       = "memo"
)

// InfoBoxID is the group ID of info box i.
func InfoBoxID(i int) string { return fmt.Sprintf("info-box-%d", i) }

// Title is the heading of every roadmap.
const Title = "フリーランス 5年ロードマップ"

// minBubbleBar is the narrowest learning bar that still gets its bubble.
const minBubbleBar = 58.0

// Phase palette.
var (
	learningBar    = drawing.Sketch("#FF6B00", 2.2, 2.2).WithFill("#FFE0B2").WithBowing(1)
	acquisitionBar = drawing.Sketch("#F59E0B", 2, 2.2).WithFill("#FFF9C4").WithBowing(1)
	freelanceBar   = drawing.Sketch("#00ACC1", 2.2, 2).WithFill("#E0F7FA").WithBowing(0.5)
)

// Compose draws data in a single top-to-bottom pass. Vertical positions come
// from layout anchors only; the icon toggle is the one input that moves
// anything vertically.
func Compose(m textmetrics.Measurer, data roadmap.Data) *drawing.Tree {
	b := drawing.NewBuilder(layout.SVGWidth, layout.SVGHeight)
	b.SetFont(FontFamily, FontImportURL)
	b.SetGrid(drawing.GridPattern{ID: "grid", Size: 20, Stroke: "#C5D8F1", StrokeWidth: 0.6})

	phases := layout.PhasesFor(data.LearningMonths, data.TotalMonths)

	b.Group(GroupBackground, func(c drawing.Canvas) {
		c.Rect(0, 0, layout.SVGWidth, layout.SVGHeight, drawing.Style{Fill: "#FFFDF8", Plain: true})
		if data.ShowGrid {
			c.Rect(0, 0, layout.SVGWidth, layout.SVGHeight, drawing.Style{Fill: "url(#grid)", Plain: true})
		}
	})
	b.Group(GroupTitle, func(c drawing.Canvas) { title(c, data) })
	b.Group(GroupAxis, func(c drawing.Canvas) { axis(c, data) })
	b.Group(GroupBars, func(c drawing.Canvas) { bars(c, m, data, phases) })
	b.Group(GroupBubbles, func(c drawing.Canvas) {
		if phases.Learning.W >= minBubbleBar {
			elements.SpeechBubble(c, m, "学習終わり！🎉", phases.Learning.End(), layout.BarTop-2, layout.PadLeft, elements.Down, "#FFF8F0")
		}
		elements.SpeechBubble(c, m, "仕事やめる？", phases.Acquisition.End(), layout.BarBottom,
			layout.BubbleMinX(data.ShowIcons), elements.Up, "#FFFDE7")
	})
	b.Group(GroupMilestone, func(c drawing.Canvas) {
		elements.Milestone(c, phases.Freelance.X)
	})
	if data.ShowIcons {
		b.Group(GroupIcons, func(c drawing.Canvas) { icons(c, phases.Freelance) })
	}

	top := layout.CalcTop(data.ShowIcons)
	for i, spec := range boxSpecs(data) {
		b.Group(InfoBoxID(i), func(c drawing.Canvas) {
			elements.InfoBox(c, m, layout.BoxX(i), top, layout.BoxWidth, layout.BoxHeight, spec)
		})
	}

	b.Group(GroupMemo, func(c drawing.Canvas) { memo(c, m, data) })
	return b.Tree()
}

func title(c drawing.Canvas, data roadmap.Data) {
	c.Text(Title, layout.SVGWidth/2, layout.TitleY, drawing.TextOpts{Size: 26, Fill: "#2D1B00", Weight: textmetrics.Bold})
	c.Line(layout.TitleRuleX1, layout.UnderlineY, layout.TitleRuleX2, layout.UnderlineY, drawing.Sketch("#FF6B00", 2.5, 2.5))
	c.Text("開始日: "+roadmap.DateLabel(data.StartDate), layout.SVGWidth-layout.PadRight, layout.TitleY-14,
		drawing.TextOpts{Size: 11, Fill: "#888", Align: drawing.AlignEnd})
}

func axis(c drawing.Canvas, data roadmap.Data) {
	right := layout.SVGWidth - layout.PadRight
	c.Line(layout.PadLeft-12, layout.AxisY, right+12, layout.AxisY, drawing.Sketch("#555", 2, 1.2).WithBowing(0.5))
	c.Path([]drawing.Point{
		{X: right + 2, Y: layout.AxisY - 6},
		{X: right + 14, Y: layout.AxisY},
		{X: right + 2, Y: layout.AxisY + 6},
	}, drawing.Sketch("#555", 2, 1))

	for yr := 0; yr <= 5; yr++ {
		x := layout.MonthToX(float64(yr * 12))
		c.Line(x, layout.AxisY-7, x, layout.AxisY+7, drawing.PlainStroke("#555", 2))
		label := "現在"
		if yr > 0 {
			label = fmt.Sprintf("%d年", yr)
		}
		c.Text(label, x, layout.AxisY-13, drawing.TextOpts{Size: 12, Fill: "#444", Weight: textmetrics.Bold})
	}

	for _, t := range []struct {
		month int
		color string
	}{
		{data.LearningMonths, "#FF6B00"},
		{data.TotalMonths, "#388E3C"},
	} {
		x := layout.MonthToX(float64(t.month))
		c.Line(x, layout.AxisY-4, x, layout.AxisY+4, drawing.PlainStroke(t.color, 2))
	}
}

func bars(c drawing.Canvas, m textmetrics.Measurer, data roadmap.Data, p layout.Phases) {
	elements.PhaseBar(c, p.Learning, learningBar)
	elements.PhaseBar(c, p.Acquisition, acquisitionBar)
	elements.PhaseBar(c, p.Freelance, freelanceBar)

	elements.BarLabel(c, m, p.Learning, elements.BarText{
		Name: "学習期間", Duration: fmt.Sprintf("%dヶ月", data.LearningMonths),
		NameFill: "#E65100", DurFill: "#BF360C",
	})
	elements.BarLabel(c, m, p.Acquisition, elements.BarText{
		Name: "案件獲得期間", Duration: fmt.Sprintf("%dヶ月", data.AcquisitionMonths),
		NameFill: "#B8860B", DurFill: "#A0522D",
	})
	elements.FreelanceLabel(c, m, p.Freelance,
		"フリーランス期間",
		fmt.Sprintf("%dヶ月（%s）", data.FreelanceMonths, roadmap.YearsLabel(data.FreelanceMonths)),
		fmt.Sprintf("目標: 月 %d万円", data.TargetMonthlyIncome))
}

// icons hang off fixed anchors and the freelance bar only.
func icons(c drawing.Canvas, freelance layout.Span) {
	elements.StickFigure(c, layout.FigureX, layout.BarBottom+layout.IconOffset, "#FF6B00")
	elements.Sparkle(c, freelance.X+freelance.W*0.15, layout.BarTop-16, "#00ACC1")
	elements.Sparkle(c, freelance.X+freelance.W*0.40, layout.BarTop-20, "#0097A7")
	elements.Sparkle(c, freelance.X+freelance.W*0.72, layout.BarTop-16, "#00BCD4")
}

func boxSpecs(data roadmap.Data) [layout.BoxCount]elements.BoxSpec {
	return [layout.BoxCount]elements.BoxSpec{
		{
			Heading:     "案件獲得期間の収入見込み",
			Formula:     fmt.Sprintf("平均 %s万円 × %dヶ月", roadmap.FormatNumber(data.AcquisitionIncomePerMonth), data.AcquisitionMonths),
			Result:      "＝ " + roadmap.FormatMan(data.AcquisitionTotalIncome),
			Fill:        "#FFF8E1",
			Stroke:      "#F59E0B",
			FormulaFill: "#B8860B",
			ResultFill:  "#E65100",
		},
		{
			Heading:     "卒業後の月収目標",
			Formula:     "月 " + roadmap.FormatMan(float64(data.TargetMonthlyIncome)),
			Result:      "フリーランス達成！",
			Fill:        "#E8F5E9",
			Stroke:      "#388E3C",
			FormulaFill: "#2E7D32",
			ResultFill:  "#4CAF50",
		},
		{
			Heading:     "月貯金目標",
			Formula:     "月 " + roadmap.FormatMan(float64(data.MonthlySavings)),
			Result:      "将来への投資💪",
			Fill:        "#FFF3E0",
			Stroke:      "#FF6B00",
			FormulaFill: "#FF6B00",
			ResultFill:  "#FF9500",
		},
		{
			Heading:     "5年間の貯金合計",
			Formula:     fmt.Sprintf("月%d万円 × %dヶ月", data.MonthlySavings, data.FreelanceMonths),
			Result:      "＝ " + roadmap.FormatMan(float64(data.TotalSavings)),
			Sub:         "フリーランス期間の積み立て",
			Fill:        "#EDE7F6",
			Stroke:      "#7B1FA2",
			FormulaFill: "#6A1B9A",
			ResultFill:  "#4A148C",
			SubFill:     "#9C27B0",
		},
	}
}

// MemoText is the one-line plan summary in the footnote.
func MemoText(data roadmap.Data) string {
	return fmt.Sprintf("%dヶ月プラン（学習%dm + 案件%dm + フリーランス%dm）= 5年計画",
		data.TotalMonths, data.LearningMonths, data.AcquisitionMonths, data.FreelanceMonths)
}

func memo(c drawing.Canvas, m textmetrics.Measurer, data roadmap.Data) {
	c.Rect(layout.PadLeft, layout.MemoTop, layout.MemoWidth, layout.MemoHeight, drawing.Sketch("#FF6B00", 1.5, 2).WithFill("#FFF3E0"))
	text := MemoText(data)
	size := fit.FontSize(m, text, layout.MemoWidth-14, 10, 7, textmetrics.Normal)
	c.Text(text, layout.PadLeft+layout.MemoWidth/2, layout.MemoTop+layout.MemoHeight-7,
		drawing.TextOpts{Size: float64(size), Fill: "#E65100", Weight: textmetrics.Normal})
}
