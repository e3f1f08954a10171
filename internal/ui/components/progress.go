package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/lectiz/internal/ui/theme"
)

const (
	barFilled = "━"
	barEmpty  = "─"
	minBar    = 4
)

// ProgressBar draws "label  ━━━━────  NN%" within Width cells.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width}
}

func (p ProgressBar) fraction() float64 {
	return min(max(p.Percent, 0), 1)
}

func (p ProgressBar) View() string {
	var parts []string
	if p.Label != "" {
		parts = append(parts, lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
	}

	suffix := ""
	if p.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("%3d%%", int(p.fraction()*100+0.5)))
	}

	used := lipgloss.Width(strings.Join(parts, "")) + lipgloss.Width(suffix) + 2*len(parts)
	if suffix != "" {
		used += 2
	}
	cells := max(p.Width-used, minBar)
	filled := int(float64(cells)*p.fraction() + 0.5)

	parts = append(parts,
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat(barFilled, filled))+
			lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat(barEmpty, cells-filled)))
	if suffix != "" {
		parts = append(parts, suffix)
	}
	return strings.Join(parts, "  ")
}
