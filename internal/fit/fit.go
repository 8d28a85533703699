// Package fit shrinks and wraps text so it fits a width.
package fit

import (
	"strings"

	"github.com/buffos/go-roadmap/internal/textmetrics"
)

// LineGap is added to the font size to get the line height of a fitted block.
const LineGap = 5

// FontSize returns the largest size in [minSize, start], stepping by one, at
// which text is no wider than maxWidth. When nothing fits it returns minSize and
// the caller is expected to wrap at that size.
func FontSize(m textmetrics.Measurer, text string, maxWidth float64, start, minSize int, weight textmetrics.Weight) int {
	for s := start; s >= minSize; s-- {
		if m.MeasureWidth(text, float64(s), weight) <= maxWidth {
			return s
		}
	}
	return minSize
}

// Wrap splits text into lines no wider than maxWidth at size. Breaks may fall
// between any two runes; the target script has no reliable word boundaries.
// A rune wider than maxWidth on its own is kept alone on its line.
func Wrap(m textmetrics.Measurer, text string, maxWidth float64, size int, weight textmetrics.Weight) []string {
	fs := float64(size)
	if m.MeasureWidth(text, fs, weight) <= maxWidth {
		return []string{text}
	}

	var lines []string
	var line strings.Builder
	for _, r := range text {
		test := line.String() + string(r)
		if line.Len() > 0 && m.MeasureWidth(test, fs, weight) > maxWidth {
			lines = append(lines, line.String())
			line.Reset()
		}
		line.WriteRune(r)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// Block is text that has been fitted and wrapped.
type Block struct {
	Lines      []string
	Size       int
	LineHeight float64
}

// Text fits text into maxWidth starting at start and shrinking no lower than
// minSize, wrapping at minSize if needed. Lines are spaced by LineGap.
func Text(m textmetrics.Measurer, text string, maxWidth float64, start, minSize int, weight textmetrics.Weight) Block {
	return TextWithGap(m, text, maxWidth, start, minSize, weight, LineGap)
}

// TextWithGap is Text with a caller-chosen gap between lines.
func TextWithGap(m textmetrics.Measurer, text string, maxWidth float64, start, minSize int, weight textmetrics.Weight, gap float64) Block {
	size := FontSize(m, text, maxWidth, start, minSize, weight)
	return Block{
		Lines:      Wrap(m, text, maxWidth, size, weight),
		Size:       size,
		LineHeight: float64(size) + gap,
	}
}

// Height is the vertical extent the block consumes.
func (b Block) Height() float64 {
	return float64(len(b.Lines)) * b.LineHeight
}

// Baselines returns one baseline per line with the block centered on y: a
// single line sits exactly on y.
func (b Block) Baselines(y float64) []float64 {
	out := make([]float64, len(b.Lines))
	first := y - float64(len(b.Lines)-1)*b.LineHeight/2
	for i := range out {
		out[i] = first + float64(i)*b.LineHeight
	}
	return out
}

// From returns baselines starting at y and advancing one line height each.
func (b Block) From(y float64) []float64 {
	out := make([]float64, len(b.Lines))
	for i := range out {
		out[i] = y + float64(i)*b.LineHeight
	}
	return out
}
