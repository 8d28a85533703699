package elements

import (
	"github.com/buffos/go-roadmap/internal/drawing"
	"github.com/buffos/go-roadmap/internal/layout"
	"github.com/buffos/go-roadmap/internal/textmetrics"
)

// GraduationLabel is the text of the milestone banner.
const GraduationLabel = "🎓 卒業！"

// Milestone draws the divider between the structured plan and freelancing at
// x, with the graduation banner hanging to its right below the bars.
func Milestone(c drawing.Canvas, x float64) {
	c.Line(x, layout.BarTop-6, x, layout.BarBottom+6, drawing.Sketch("#388E3C", 2.8, 1.6))

	bx := x + 4
	by := layout.BarBottom + layout.GradBannerOffset
	c.Rect(bx, by, layout.GradBannerWidth, layout.GradBannerHeight, drawing.Sketch("#388E3C", 2, 2.2).WithFill("#E8F5E9"))
	c.Text(GraduationLabel, bx+layout.GradBannerWidth/2, by+layout.GradBannerHeight-8,
		drawing.TextOpts{Size: 13, Fill: "#1B5E20", Weight: textmetrics.Bold})
}
