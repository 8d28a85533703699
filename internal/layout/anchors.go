// Package layout holds the fixed coordinate skeleton of the roadmap and the
// month-to-pixel scale every time-dependent element is placed with.
package layout

// Canvas.
const (
	SVGWidth  = 1200.0
	SVGHeight = 620.0
)

// Horizontal padding and the chart area between it.
const (
	PadLeft    = 80.0
	PadRight   = 70.0
	ChartWidth = SVGWidth - PadLeft - PadRight // 1050
)

// Vertical bands, top to bottom.
const (
	TitleY     = 40.0
	UnderlineY = 50.0
	AxisY      = 108.0
	BarTop     = 132.0
	BarHeight  = 130.0
	BarBottom  = BarTop + BarHeight // 262

	// Banner sits below the "quit your job?" bubble that hangs off BarBottom.
	GradBannerOffset = 54.0
	GradBannerHeight = 32.0
	GradBannerWidth  = 108.0

	IconOffset   = 56.0 // stick figure centre below BarBottom
	FigureX      = PadLeft + 22
	FigureReach  = 12.0 // half the arm span, the figure's widest part
	FigureMargin = 6.0  // between the figure and the bubble beside it

	CalcOffsetNoIcon = 100.0
	CalcOffsetIcon   = 120.0

	BoxGap    = 14.0
	BoxHeight = 90.0
	BoxCount  = 4

	MemoHeight  = 24.0
	MemoPadBot  = 12.0
	MemoWidth   = 520.0
	MemoTop     = SVGHeight - MemoPadBot - MemoHeight
	TitleRuleX1 = 160.0
	TitleRuleX2 = 1040.0
)

// BoxWidth is the width of each of the BoxCount info boxes, floored to a
// whole pixel.
const BoxWidth = float64(int((ChartWidth - BoxGap*(BoxCount-1)) / BoxCount)) // 252

// CalcTop is the top of the info-box row.
func CalcTop(showIcons bool) float64 {
	if showIcons {
		return BarBottom + CalcOffsetIcon
	}
	return BarBottom + CalcOffsetNoIcon
}

// BubbleMinX is the left limit for the bubble under the bars. With icons on
// it starts right of the stick figure, which shares that band.
func BubbleMinX(showIcons bool) float64 {
	if showIcons {
		return FigureX + FigureReach + FigureMargin
	}
	return PadLeft
}

// BoxX is the left edge of info box i.
func BoxX(i int) float64 {
	return PadLeft + float64(i)*(BoxWidth+BoxGap)
}
