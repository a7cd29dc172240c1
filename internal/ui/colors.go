package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication, as ANSI codes so they follow the
// user's terminal theme.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Styles are the lipgloss styles used on one output stream. They are bound
// to a renderer so color support is detected per stream.
type Styles struct {
	Label   lipgloss.Style
	Prefix  lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles builds the style set for r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Label:   r.NewStyle().Bold(true).Foreground(ColorInfo),
		Prefix:  r.NewStyle().Foreground(ColorSecondary),
		Success: r.NewStyle().Foreground(ColorSuccess),
		Error:   r.NewStyle().Foreground(ColorError).Bold(true),
		Muted:   r.NewStyle().Foreground(ColorMuted),
	}
}

// disableColors forces r to render plain text (for NO_COLOR).
func disableColors(r *lipgloss.Renderer) {
	r.SetColorProfile(termenv.Ascii)
}
