package layout

// HorizonMonths is the span of the time axis.
const HorizonMonths = 60.0

// MonthToX maps months elapsed onto the chart: 0 lands on PadLeft and
// HorizonMonths on SVGWidth-PadRight.
func MonthToX(month float64) float64 {
	return PadLeft + (month/HorizonMonths)*ChartWidth
}

// Span is a horizontal extent on the chart.
type Span struct {
	X float64
	W float64
}

// End is the right edge of the span.
func (s Span) End() float64 { return s.X + s.W }

// Center is the horizontal midpoint of the span.
func (s Span) Center() float64 { return s.X + s.W/2 }

// SpanMonths returns the span between two month marks.
func SpanMonths(from, to float64) Span {
	x := MonthToX(from)
	return Span{X: x, W: MonthToX(to) - x}
}

// Phases are the three consecutive bars of a plan.
type Phases struct {
	Learning    Span
	Acquisition Span
	Freelance   Span
}

// PhasesFor lays out the bars for a plan whose learning phase ends at
// learningMonths and whose structured programme ends at totalMonths.
func PhasesFor(learningMonths, totalMonths int) Phases {
	return Phases{
		Learning:    SpanMonths(0, float64(learningMonths)),
		Acquisition: SpanMonths(float64(learningMonths), float64(totalMonths)),
		Freelance:   SpanMonths(float64(totalMonths), HorizonMonths),
	}
}
