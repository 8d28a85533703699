package cli

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Palette of the drawing itself, so terminal output matches the roadmap.
var (
	colorLearning    = lipgloss.Color("#FF9800")
	colorAcquisition = lipgloss.Color("#7B1FA2")
	colorFreelance   = lipgloss.Color("#00838F")
	colorDim         = lipgloss.Color("#888888")
	colorError       = lipgloss.Color("#D32F2F")
)

var (
	styleHeader      = lipgloss.NewStyle().Foreground(colorLearning).Bold(true)
	styleDim         = lipgloss.NewStyle().Foreground(colorDim)
	styleLearning    = lipgloss.NewStyle().Foreground(colorLearning)
	styleAcquisition = lipgloss.NewStyle().Foreground(colorAcquisition)
	styleFreelance   = lipgloss.NewStyle().Foreground(colorFreelance).Bold(true)
	styleError       = lipgloss.NewStyle().Foreground(colorError)
)

// renderTable renders an aligned table with a header separator line.
// Widths are measured on visible text so styled cells line up.
func renderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	const colGap = 2

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return styleHeader.Render(s) })
	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	writeRow(sep, func(s string) string { return styleDim.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}

func formTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorLearning).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorLearning)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorFreelance)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorLearning)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorLearning)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(colorLearning).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(colorDim)

	return t
}
