package ansi

import "strings"

// Style accumulates the SGR sequences in effect at a point in a stream.
// The zero value is an unstyled stream.
type Style struct {
	seqs []string
}

// Apply feeds one escape sequence into the style state. Sequences other than
// SGR leave the state alone.
func (s *Style) Apply(seq string) {
	params, ok := sgrParams(seq)
	if !ok {
		return
	}
	switch {
	case isReset(params):
		s.seqs = s.seqs[:0]
	case leadingReset(params):
		s.seqs = append(s.seqs[:0], seq)
	default:
		s.seqs = append(s.seqs, seq)
	}
}

// Active reports whether any attribute is currently set.
func (s Style) Active() bool {
	return len(s.seqs) > 0
}

// Prefix returns the sequences that reproduce the current style when written
// before resumed text.
func (s Style) Prefix() string {
	return strings.Join(s.seqs, "")
}

// StyleOf returns the style in effect at the end of line.
func StyleOf(line string) Style {
	var st Style
	for seg := range Tokens(line) {
		if seg.Kind == KindEscape {
			st.Apply(seg.Text)
		}
	}
	return st
}

// IsSGR reports whether seq is a complete Select Graphic Rendition sequence.
func IsSGR(seq string) bool {
	_, ok := sgrParams(seq)
	return ok
}

// sgrParams returns the parameter string of an SGR sequence (ESC [ ... m).
func sgrParams(seq string) (string, bool) {
	if len(seq) < 3 || seq[0] != esc || seq[1] != '[' || seq[len(seq)-1] != 'm' {
		return "", false
	}
	params := seq[2 : len(seq)-1]
	for i := 0; i < len(params); i++ {
		c := params[i]
		if (c < '0' || c > '9') && c != ';' && c != ':' {
			return "", false
		}
	}
	return params, true
}

func isReset(params string) bool {
	for _, p := range strings.Split(params, ";") {
		if strings.Trim(p, "0") != "" {
			return false
		}
	}
	return true
}

func leadingReset(params string) bool {
	first, _, _ := strings.Cut(params, ";")
	return strings.Trim(first, "0") == ""
}
