package ansi

import "strings"

// Sanitize prepares a raw output line for single-line display.
//
// Carriage returns overwrite: only the text after the last one is kept, as a
// terminal would show it. Cursor movement, erase and mode sequences are
// dropped since they would move the status line around. SGR and OSC
// sequences (colors, hyperlinks) and malformed fragments are kept. Tabs
// become a single space; other control bytes are removed.
func Sanitize(line string) string {
	line = strings.TrimRight(line, "\r")
	if i := strings.LastIndexByte(line, '\r'); i >= 0 {
		line = line[i+1:]
	}

	var b strings.Builder
	b.Grow(len(line))
	for seg := range Tokens(line) {
		if seg.Kind == KindEscape {
			if keepEscape(seg) {
				b.WriteString(seg.Text)
			}
			continue
		}
		for i := 0; i < len(seg.Text); i++ {
			c := seg.Text[i]
			switch {
			case c == '\t':
				b.WriteByte(' ')
			case c < 0x20 || c == 0x7f:
			default:
				b.WriteByte(c)
			}
		}
	}
	return b.String()
}

func keepEscape(seg Segment) bool {
	if !seg.Complete {
		return true
	}
	if len(seg.Text) >= 2 && seg.Text[1] == ']' {
		return true
	}
	return IsSGR(seg.Text)
}
