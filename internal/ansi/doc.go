// Package ansi splits terminal output into printable runs and escape
// sequences.
//
// Tokens yields a lazy sequence of Segments. Concatenating the Text of every
// segment reproduces the input byte for byte, so callers can rebuild a line
// after deciding which segments to keep. Escape segments are zero width.
// Printable segments carry their display width in terminal columns, measured
// with go-runewidth (wide east-asian runes are 2 columns, combining marks 0).
//
// Recognized escapes:
//
//	CSI  ESC [ <params 0x30-0x3F> <intermediates 0x20-0x2F> <final 0x40-0x7E>
//	OSC  ESC ] ... BEL | ESC \
//	ESC  ESC <intermediates 0x20-0x2F> <final 0x30-0x7E>
//
// A sequence that is cut off by the end of the buffer, or that hits a byte
// outside the legal ranges, is still returned as a single escape segment with
// Complete set to false. Partial chunks therefore never corrupt rendering.
//
// Style tracks the SGR state of a stream so a truncated line can be closed
// with a reset only when a color or attribute is actually in effect.
package ansi
