package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/rileyhilliard/liveline/internal/ansi"
)

// Truncate fits line into budget terminal columns.
//
// A line that already fits is returned unchanged. Otherwise printable text is
// cut at a rune boundary so that at most budget columns remain, every escape
// sequence before the cut is kept, and a reset is appended when a style is
// still active at the cut so color can't bleed into whatever is printed next.
//
// When tail is non-empty and fits the budget it replaces the last columns of
// a truncated line (for example "…"). A budget of zero or less keeps no
// printable text.
func Truncate(line string, budget int, tail string) string {
	if budget < 0 {
		budget = 0
	}
	if ansi.Width(line) <= budget {
		return line
	}

	tailWidth := ansi.Width(tail)
	if tailWidth > budget {
		tail, tailWidth = "", 0
	}
	limit := budget - tailWidth

	var (
		b     strings.Builder
		style ansi.Style
		used  int
	)
	b.Grow(len(line) + len(tail) + len(ansi.Reset))

	for seg := range ansi.Tokens(line) {
		if seg.Kind == ansi.KindEscape {
			b.WriteString(seg.Text)
			style.Apply(seg.Text)
			continue
		}
		if used+seg.Width <= limit {
			b.WriteString(seg.Text)
			used += seg.Width
			continue
		}
		for i := 0; i < len(seg.Text); {
			r, size := utf8.DecodeRuneInString(seg.Text[i:])
			w := ansi.RuneWidth(r)
			if used+w > limit {
				break
			}
			b.WriteString(seg.Text[i : i+size])
			used += w
			i += size
		}
		break
	}

	b.WriteString(tail)
	if style.Active() {
		b.WriteString(ansi.Reset)
	}
	return b.String()
}
