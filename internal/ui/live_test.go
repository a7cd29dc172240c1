package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/liveline/internal/ansi"
)

func newTestLive(buf *bytes.Buffer, width int, opts LiveOptions) *Live {
	term := NewTerminal(buf, buf, fixedWidth(width), WithNoColor(false))
	l := NewLive(term, opts)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	ticks := 0
	l.now = func() time.Time {
		ticks++
		return start.Add(time.Duration(ticks-1) * 1200 * time.Millisecond)
	}
	return l
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "succeeded", StateSucceeded.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "State(9)", State(9).String())
}

func TestLive_SuccessClearsLine(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{Label: "make"})

	require.NoError(t, l.Start())
	require.NoError(t, l.Draw("Compiling..."))
	require.NoError(t, l.Draw("Linking..."))
	require.NoError(t, l.Succeed())

	want := clearSeq + "make" +
		clearSeq + "[make] Compiling..." +
		clearSeq + "[make] Linking..." +
		clearSeq
	assert.Equal(t, want, buf.String())
	assert.Equal(t, StateSucceeded, l.State())
	assert.Equal(t, 3, l.Redraws())
	assert.False(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestLive_FailureDumpsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{Label: "build"})

	require.NoError(t, l.Start())
	require.NoError(t, l.Draw("step1"))
	require.NoError(t, l.Draw("error: bad"))
	require.NoError(t, l.Fail(1, []byte("step1\nerror: bad\n"), ""))

	out := buf.String()
	assert.Equal(t, StateFailed, l.State())
	assert.Contains(t, out, "✗ build failed with exit code 1")
	assert.True(t, strings.HasSuffix(out, "step1\nerror: bad\n"), "dump must come last: %q", out)
}

func TestLive_FailureAddsMissingNewline(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{})

	require.NoError(t, l.Start())
	require.NoError(t, l.Fail(2, []byte("partial"), "try again"))

	out := buf.String()
	assert.Contains(t, out, "✗ Command failed with exit code 2")
	assert.Contains(t, out, "  try again\n")
	assert.True(t, strings.HasSuffix(out, "partial\n"))
}

func TestLive_FailureWithoutOutput(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{Label: "lint"})

	require.NoError(t, l.Start())
	require.NoError(t, l.Fail(3, nil, ""))

	assert.True(t, strings.HasSuffix(buf.String(), "lint failed with exit code 3 1.2s\n"))
}

func TestLive_LabelOnlyRun(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{Label: "Build"})

	require.NoError(t, l.Start())
	assert.Equal(t, clearSeq+"Build", buf.String())

	require.NoError(t, l.Succeed())
	assert.Equal(t, clearSeq+"Build"+clearSeq, buf.String())
}

func TestLive_TruncatesToWidth(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 30, LiveOptions{Label: "npm"})
	require.NoError(t, l.Start())
	buf.Reset()

	require.NoError(t, l.Draw("\x1b[32m"+strings.Repeat("z", 100)))

	line := strings.TrimPrefix(buf.String(), clearSeq)
	assert.Equal(t, 30, ansi.Width(line))
	assert.Equal(t, "[npm] \x1b[32m"+strings.Repeat("z", 24)+ansi.Reset, line)
}

func TestLive_Margin(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 20, LiveOptions{Margin: 5})
	require.NoError(t, l.Start())
	buf.Reset()

	require.NoError(t, l.Draw(strings.Repeat("m", 40)))

	assert.Equal(t, clearSeq+strings.Repeat("m", 15), buf.String())
}

func TestLive_Ellipsis(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 10, LiveOptions{Ellipsis: "…"})
	require.NoError(t, l.Start())
	buf.Reset()

	require.NoError(t, l.Draw("0123456789abc"))

	assert.Equal(t, clearSeq+"012345678…", buf.String())
}

func TestLive_SanitizesLine(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{})
	require.NoError(t, l.Start())
	buf.Reset()

	require.NoError(t, l.Draw(" 10%\r 55%\x1b[K\r"))

	assert.Equal(t, clearSeq+" 55%", buf.String())
}

func TestLive_BlankLineShowsLabel(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{Label: "test"})
	require.NoError(t, l.Start())
	buf.Reset()

	require.NoError(t, l.Draw("\r\x1b[2K"))

	assert.Equal(t, clearSeq+"test", buf.String())
}

func TestLive_NarrowTerminalCutsPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 4, LiveOptions{Label: "verylong"})
	require.NoError(t, l.Start())
	buf.Reset()

	require.NoError(t, l.Draw("output"))

	assert.Equal(t, clearSeq+"[ver", buf.String())
}

func TestLive_NoColorStripsStatusOnly(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf, &buf, fixedWidth(80), WithNoColor(true))
	l := NewLive(term, LiveOptions{})

	require.NoError(t, l.Start())
	buf.Reset()
	require.NoError(t, l.Draw("\x1b[31mred\x1b[0m"))
	assert.Equal(t, clearSeq+"red", buf.String())

	buf.Reset()
	require.NoError(t, l.Fail(1, []byte("\x1b[31mred\x1b[0m\n"), ""))
	assert.True(t, strings.HasSuffix(buf.String(), "\x1b[31mred\x1b[0m\n"), "dump stays verbatim")
}

func TestLive_Summary(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{Label: "go test", Summary: true})

	require.NoError(t, l.Start())
	require.NoError(t, l.Succeed())

	assert.True(t, strings.HasSuffix(buf.String(), clearSeq+"✓ go test 1.2s\n"), "%q", buf.String())
}

func TestLive_HideCursor(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{Label: "x", HideCursor: true})

	require.NoError(t, l.Start())
	require.NoError(t, l.Succeed())

	assert.Equal(t, "\x1b[?25l"+clearSeq+"x"+clearSeq+"\x1b[?25h", buf.String())
}

func TestLive_InvalidTransitions(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{})

	assert.Error(t, l.Draw("too early"))
	assert.Error(t, l.Succeed())
	assert.Error(t, l.Fail(1, nil, ""))

	require.NoError(t, l.Start())
	assert.Error(t, l.Start())
	require.NoError(t, l.Succeed())

	err := l.Draw("too late")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "succeeded")
}

func TestLive_ResizeBetweenRedraws(t *testing.T) {
	var buf bytes.Buffer
	widths := []int{80, 80, 10}
	i := 0
	term := NewTerminal(&buf, &buf, WithNoColor(false), WithSizeFunc(func() (int, error) {
		w := widths[i]
		i++
		return w, nil
	}))
	l := NewLive(term, LiveOptions{})

	require.NoError(t, l.Start())
	require.NoError(t, l.Draw(strings.Repeat("w", 50)))
	buf.Reset()
	require.NoError(t, l.Draw(strings.Repeat("w", 50)))

	assert.Equal(t, clearSeq+strings.Repeat("w", 10), buf.String())
}

func TestLive_FittingStyledLineIsClosed(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{Label: "make"})

	require.NoError(t, l.Start())
	buf.Reset()
	require.NoError(t, l.Draw("\x1b[31mred line with no reset"))
	assert.Equal(t, clearSeq+"[make] \x1b[31mred line with no reset"+ansi.Reset, buf.String())

	require.NoError(t, l.Draw("plain"))
	require.NoError(t, l.Succeed())

	var st ansi.Style
	for _, e := range ansi.Escapes(buf.String()) {
		st.Apply(e)
	}
	assert.False(t, st.Active(), "terminal left styled: %q", buf.String())
}

func TestLive_ClosedStyleIsNotRepeated(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLive(&buf, 80, LiveOptions{})
	require.NoError(t, l.Start())
	buf.Reset()

	require.NoError(t, l.Draw("\x1b[1mbold\x1b[0m done"))

	assert.Equal(t, clearSeq+"\x1b[1mbold\x1b[0m done", buf.String())
}
