// Package ui renders liveline's single status line.
//
// Terminal is the only writer to the terminal. It queries the width on every
// redraw, falls back to a configured width when the output is not a
// terminal, and honors NO_COLOR.
//
// Truncate fits one line of command output into a column budget without
// splitting escape sequences or runes, and closes any style left open.
//
// Live drives the display through its lifecycle:
//
//	l := ui.NewLive(term, ui.LiveOptions{Label: "make"})
//	l.Start()
//	l.Draw("Compiling...")
//	l.Succeed() // or l.Fail(code, output, hint)
//
// # Color Scheme
//
// Colors are ANSI codes so they follow the user's terminal theme:
//
//	ColorSuccess   (green)  - success summary
//	ColorError     (red)    - failure header
//	ColorInfo      (cyan)   - label before output arrives
//	ColorSecondary (blue)   - "[label]" prefix
//	ColorMuted     (gray)   - timing and hints
package ui
