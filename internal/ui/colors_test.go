package ui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestColorConstants(t *testing.T) {
	colors := []lipgloss.Color{
		ColorSuccess,
		ColorError,
		ColorWarning,
		ColorInfo,
		ColorPrimary,
		ColorSecondary,
		ColorMuted,
	}

	seen := map[lipgloss.Color]bool{}
	for _, c := range colors {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "color %q reused", c)
		seen[c] = true
	}
}

func TestNewStyles_PlainOnNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewStyles(lipgloss.NewRenderer(&buf))

	assert.Equal(t, "build", s.Label.Render("build"))
	assert.Equal(t, "✗ failed", s.Error.Render("✗ failed"))
}

func TestNewStyles_ColorProfile(t *testing.T) {
	var buf bytes.Buffer
	r := lipgloss.NewRenderer(&buf)
	r.SetColorProfile(termenv.ANSI)
	s := NewStyles(r)

	out := s.Success.Render(SymbolSuccess)
	assert.Contains(t, out, SymbolSuccess)
	assert.Contains(t, out, "\x1b[")

	disableColors(r)
	assert.Equal(t, SymbolSuccess, NewStyles(r).Success.Render(SymbolSuccess))
}
