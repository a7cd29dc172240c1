package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// formatDuration renders a run time as 0.05s, 1.2s, 2m03s.
func formatDuration(d time.Duration) string {
	secs := d.Seconds()
	switch {
	case secs < 0.1:
		return fmt.Sprintf("%.2fs", secs)
	case secs < 60:
		return fmt.Sprintf("%.1fs", secs)
	default:
		m := int(secs) / 60
		return fmt.Sprintf("%dm%02ds", m, int(secs)-m*60)
	}
}

// formatStatus returns "<symbol> <name>" with an optional muted timing.
func formatStatus(symbol string, symbolStyle, mutedStyle lipgloss.Style, name, timing string) string {
	if timing == "" {
		return fmt.Sprintf("%s %s", symbolStyle.Render(symbol), name)
	}
	return fmt.Sprintf("%s %s %s", symbolStyle.Render(symbol), name, mutedStyle.Render(timing))
}
