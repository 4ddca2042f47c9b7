package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	leader  lipgloss.Style
	follow  lipgloss.Style
	group   lipgloss.Style
	accent  lipgloss.Style
	help    lipgloss.Style
	warning lipgloss.Style
	panel   lipgloss.Style
	graph   lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		header:  lipgloss.NewStyle().Bold(true).Foreground(t.Text).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		leader:  lipgloss.NewStyle().Foreground(t.Leader).Bold(true),
		follow:  lipgloss.NewStyle().Foreground(t.Follower),
		group:   lipgloss.NewStyle().Foreground(t.Group),
		accent:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		help:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		warning: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		graph: lipgloss.NewStyle().Foreground(t.Follower),
	}
}

// ProgressBar renders percent in [0,1] as a bar of width cells.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// Sparkline renders the last width values with block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / rng * float64(len(chars)-1))
		b.WriteRune(chars[min(max(idx, 0), len(chars)-1)])
	}
	return b.String()
}
