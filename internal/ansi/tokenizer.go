package ansi

import (
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const (
	esc = 0x1b
	bel = 0x07
)

// Reset is the SGR sequence that clears all attributes.
const Reset = "\x1b[0m"

// Kind tags a Segment as printable text or an escape sequence.
type Kind int

const (
	// KindText is a run of printable characters.
	KindText Kind = iota
	// KindEscape is a zero-width escape sequence.
	KindEscape
)

func (k Kind) String() string {
	if k == KindEscape {
		return "escape"
	}
	return "text"
}

// Segment is one token of a line. A text segment is a whole run of
// printable runes; the renderer cuts inside a run at rune boundaries.
type Segment struct {
	Kind Kind
	Text string
	// Width is the display width in columns. Always 0 for escapes.
	Width int
	// Complete is false for an escape sequence that was cut off or malformed.
	Complete bool
}

// IsEscape reports whether the segment is an escape sequence.
func (s Segment) IsEscape() bool { return s.Kind == KindEscape }

// widths ignores the locale so column counts are the same on every machine.
var widths = &runewidth.Condition{StrictEmojiNeutral: true}

// RuneWidth returns the number of terminal columns r occupies.
func RuneWidth(r rune) int {
	return widths.RuneWidth(r)
}

// Tokens returns a lazy sequence of the segments in s.
func Tokens(s string) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for i := 0; i < len(s); {
			if s[i] == esc {
				n, ok := scanEscape(s[i:])
				if !yield(Segment{Kind: KindEscape, Text: s[i : i+n], Complete: ok}) {
					return
				}
				i += n
				continue
			}

			start, width := i, 0
			for i < len(s) && s[i] != esc {
				r, size := utf8.DecodeRuneInString(s[i:])
				width += RuneWidth(r)
				i += size
			}
			if !yield(Segment{Kind: KindText, Text: s[start:i], Width: width, Complete: true}) {
				return
			}
		}
	}
}

// segments collects Tokens(s) into a slice.
func segments(s string) []Segment {
	var out []Segment
	for seg := range Tokens(s) {
		out = append(out, seg)
	}
	return out
}

// scanEscape returns the length of the escape sequence at the start of s
// (s[0] is ESC) and whether it was properly terminated.
func scanEscape(s string) (int, bool) {
	if len(s) < 2 {
		return len(s), false
	}

	switch s[1] {
	case '[':
		i := 2
		for i < len(s) && s[i] >= 0x30 && s[i] <= 0x3f {
			i++
		}
		for i < len(s) && s[i] >= 0x20 && s[i] <= 0x2f {
			i++
		}
		if i < len(s) && s[i] >= 0x40 && s[i] <= 0x7e {
			return i + 1, true
		}
		return i, false

	case ']':
		for i := 2; i < len(s); i++ {
			switch s[i] {
			case bel:
				return i + 1, true
			case esc:
				if i+1 < len(s) && s[i+1] == '\\' {
					return i + 2, true
				}
				return i, false
			}
		}
		return len(s), false

	default:
		i := 1
		for i < len(s) && s[i] >= 0x20 && s[i] <= 0x2f {
			i++
		}
		if i < len(s) && s[i] >= 0x30 && s[i] <= 0x7e {
			return i + 1, true
		}
		return i, false
	}
}

// Strip returns s with every escape sequence removed.
func Strip(s string) string {
	var b strings.Builder
	for seg := range Tokens(s) {
		if seg.Kind == KindText {
			b.WriteString(seg.Text)
		}
	}
	return b.String()
}

// Width returns the display width of s, ignoring escape sequences.
func Width(s string) int {
	w := 0
	for seg := range Tokens(s) {
		w += seg.Width
	}
	return w
}

// Escapes returns the escape sequences in s, in order.
func Escapes(s string) []string {
	var out []string
	for seg := range Tokens(s) {
		if seg.Kind == KindEscape {
			out = append(out, seg.Text)
		}
	}
	return out
}
