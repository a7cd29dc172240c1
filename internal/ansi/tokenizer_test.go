package ansi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func join(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Segment
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "plain text is one run",
			input: "hello world",
			want:  []Segment{{Kind: KindText, Text: "hello world", Width: 11, Complete: true}},
		},
		{
			name:  "color around text",
			input: "\x1b[31mred\x1b[0m done",
			want: []Segment{
				{Kind: KindEscape, Text: "\x1b[31m", Complete: true},
				{Kind: KindText, Text: "red", Width: 3, Complete: true},
				{Kind: KindEscape, Text: "\x1b[0m", Complete: true},
				{Kind: KindText, Text: " done", Width: 5, Complete: true},
			},
		},
		{
			name:  "adjacent escapes stay separate",
			input: "\x1b[1m\x1b[32mok",
			want: []Segment{
				{Kind: KindEscape, Text: "\x1b[1m", Complete: true},
				{Kind: KindEscape, Text: "\x1b[32m", Complete: true},
				{Kind: KindText, Text: "ok", Width: 2, Complete: true},
			},
		},
		{
			name:  "csi with private marker and intermediate",
			input: "\x1b[?25l\x1b[1 q",
			want: []Segment{
				{Kind: KindEscape, Text: "\x1b[?25l", Complete: true},
				{Kind: KindEscape, Text: "\x1b[1 q", Complete: true},
			},
		},
		{
			name:  "osc hyperlink terminated by ST",
			input: "\x1b]8;;https://example.com\x1b\\link\x1b]8;;\x1b\\",
			want: []Segment{
				{Kind: KindEscape, Text: "\x1b]8;;https://example.com\x1b\\", Complete: true},
				{Kind: KindText, Text: "link", Width: 4, Complete: true},
				{Kind: KindEscape, Text: "\x1b]8;;\x1b\\", Complete: true},
			},
		},
		{
			name:  "osc title terminated by BEL",
			input: "\x1b]0;title\x07x",
			want: []Segment{
				{Kind: KindEscape, Text: "\x1b]0;title\x07", Complete: true},
				{Kind: KindText, Text: "x", Width: 1, Complete: true},
			},
		},
		{
			name:  "two byte escape",
			input: "\x1b(Babc",
			want: []Segment{
				{Kind: KindEscape, Text: "\x1b(B", Complete: true},
				{Kind: KindText, Text: "abc", Width: 3, Complete: true},
			},
		},
		{
			name:  "unterminated csi at end of buffer",
			input: "abc\x1b[38;5",
			want: []Segment{
				{Kind: KindText, Text: "abc", Width: 3, Complete: true},
				{Kind: KindEscape, Text: "\x1b[38;5", Complete: false},
			},
		},
		{
			name:  "lone escape at end",
			input: "abc\x1b",
			want: []Segment{
				{Kind: KindText, Text: "abc", Width: 3, Complete: true},
				{Kind: KindEscape, Text: "\x1b", Complete: false},
			},
		},
		{
			name:  "csi broken by illegal byte",
			input: "\x1b[31\x01x",
			want: []Segment{
				{Kind: KindEscape, Text: "\x1b[31", Complete: false},
				{Kind: KindText, Text: "\x01x", Width: 1, Complete: true},
			},
		},
		{
			name:  "unterminated osc",
			input: "\x1b]8;;http",
			want: []Segment{
				{Kind: KindEscape, Text: "\x1b]8;;http", Complete: false},
			},
		},
		{
			name:  "wide runes count two columns",
			input: "日本",
			want:  []Segment{{Kind: KindText, Text: "日本", Width: 4, Complete: true}},
		},
		{
			name:  "combining mark is zero width",
			input: "é",
			want:  []Segment{{Kind: KindText, Text: "é", Width: 1, Complete: true}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := segments(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.input, join(got), "segments must reconstruct the input")
		})
	}
}

func TestTokensStopsEarly(t *testing.T) {
	count := 0
	for range Tokens("\x1b[1ma\x1b[2mb\x1b[3mc") {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}

func TestTokensRestartable(t *testing.T) {
	seq := Tokens("\x1b[1mbold\x1b[0m")
	var first, second []Segment
	for s := range seq {
		first = append(first, s)
	}
	for s := range seq {
		second = append(second, s)
	}
	require.Len(t, first, 3)
	assert.Equal(t, first, second)
}

func TestTokensReconstructArbitraryInput(t *testing.T) {
	inputs := []string{
		"\x1b\x1b\x1b",
		"\x1b[",
		"\x1b]",
		"\xff\xfe plain \x1b[1;31mX",
		"a\x1b[0;1;4;38;2;255;0;0mb\x1b[K\x1b[2Gc",
	}
	for _, in := range inputs {
		assert.Equal(t, in, join(segments(in)))
	}
}

func TestStripAndWidth(t *testing.T) {
	line := "\x1b[1m\x1b[34mBuilding\x1b[0m 日本 \x1b]8;;u\x07x\x1b]8;;\x07"

	assert.Equal(t, "Building 日本 x", Strip(line))
	assert.Equal(t, 15, Width(line))
	assert.Equal(t, []string{"\x1b[1m", "\x1b[34m", "\x1b[0m", "\x1b]8;;u\x07", "\x1b]8;;\x07"}, Escapes(line))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "text", KindText.String())
	assert.Equal(t, "escape", KindEscape.String())
}
