package ui

import (
	"bufio"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rileyhilliard/liveline/internal/logger"
)

// DefaultWidth is used when the terminal size can't be queried.
const DefaultWidth = 80

// Terminal is the single handle liveline writes through. Status redraws go
// to the output stream; failure reports go to the error stream.
type Terminal struct {
	out      io.Writer
	err      io.Writer
	buf      *bufio.Writer
	ctl      *termenv.Output
	size     func() (int, error)
	fallback int
	noColor  bool
	styles   Styles
	errStyle Styles
	log      logger.Logger
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithFallbackWidth sets the width used when the size query fails.
func WithFallbackWidth(w int) TerminalOption {
	return func(t *Terminal) {
		if w > 0 {
			t.fallback = w
		}
	}
}

// WithSizeFunc replaces the terminal size query.
func WithSizeFunc(fn func() (int, error)) TerminalOption {
	return func(t *Terminal) { t.size = fn }
}

// WithNoColor strips colors from the status line and styled messages.
func WithNoColor(v bool) TerminalOption {
	return func(t *Terminal) { t.noColor = v }
}

// WithTerminalLogger sets the logger for size query failures.
func WithTerminalLogger(l logger.Logger) TerminalOption {
	return func(t *Terminal) { t.log = l }
}

// NewTerminal wraps out and errOut. If out is a file descriptor its width is
// queried on every Width call. NO_COLOR is honored unless overridden with
// WithNoColor.
func NewTerminal(out, errOut io.Writer, opts ...TerminalOption) *Terminal {
	t := &Terminal{
		out:      out,
		err:      errOut,
		buf:      bufio.NewWriter(out),
		fallback: DefaultWidth,
		log:      logger.Default(),
	}
	t.ctl = termenv.NewOutput(t.buf)
	t.noColor = t.ctl.EnvNoColor()
	t.size = sizeOf(out)

	for _, opt := range opts {
		opt(t)
	}

	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)
	if t.noColor {
		disableColors(outRenderer)
		disableColors(errRenderer)
	}
	t.styles = NewStyles(outRenderer)
	t.errStyle = NewStyles(errRenderer)
	return t
}

type fder interface {
	Fd() uintptr
}

func sizeOf(w io.Writer) func() (int, error) {
	f, ok := w.(fder)
	if !ok {
		return nil
	}
	fd := int(f.Fd())
	return func() (int, error) {
		width, _, err := term.GetSize(fd)
		return width, err
	}
}

// IsTerminal reports whether the output stream is a terminal.
func (t *Terminal) IsTerminal() bool {
	f, ok := t.out.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the current width in columns. It is read fresh on every
// call since the window may be resized mid-run.
func (t *Terminal) Width() int {
	if t.size == nil {
		return t.fallback
	}
	w, err := t.size()
	if err != nil || w <= 0 {
		t.log.Debug("terminal size unavailable (%v), using %d columns", err, t.fallback)
		return t.fallback
	}
	return w
}

// NoColor reports whether colors are disabled.
func (t *Terminal) NoColor() bool {
	return t.noColor
}

// Styles returns the styles for the output stream.
func (t *Terminal) Styles() Styles {
	return t.styles
}

// ErrStyles returns the styles for the error stream.
func (t *Terminal) ErrStyles() Styles {
	return t.errStyle
}

// Redraw replaces the current line with line, without a trailing newline,
// and flushes so the whole redraw lands at once.
func (t *Terminal) Redraw(line string) error {
	_, _ = t.buf.WriteString("\r")
	t.ctl.ClearLine()
	_, _ = t.buf.WriteString(line)
	return t.buf.Flush()
}

// ClearLine erases the current line and leaves the cursor in column 0.
func (t *Terminal) ClearLine() error {
	_, _ = t.buf.WriteString("\r")
	t.ctl.ClearLine()
	return t.buf.Flush()
}

// HideCursor hides the cursor until ShowCursor.
func (t *Terminal) HideCursor() error {
	t.ctl.HideCursor()
	return t.buf.Flush()
}

// ShowCursor makes the cursor visible again.
func (t *Terminal) ShowCursor() error {
	t.ctl.ShowCursor()
	return t.buf.Flush()
}

// Println writes s and a newline to the output stream.
func (t *Terminal) Println(s string) error {
	_, _ = t.buf.WriteString(s)
	_ = t.buf.WriteByte('\n')
	return t.buf.Flush()
}

// Errorln writes s and a newline to the error stream.
func (t *Terminal) Errorln(s string) error {
	_, err := io.WriteString(t.err, s+"\n")
	return err
}

// WriteErr copies p to the error stream unchanged.
func (t *Terminal) WriteErr(p []byte) error {
	_, err := t.err.Write(p)
	return err
}
