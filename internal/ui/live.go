package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rileyhilliard/liveline/internal/ansi"
)

// State is where a Live display is in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}

// LiveOptions configures a Live display.
type LiveOptions struct {
	// Label is shown before any output arrives and as a "[label] " prefix
	// on output lines.
	Label string
	// Margin is the number of columns left free at the right edge.
	Margin int
	// Ellipsis marks truncated lines when non-empty.
	Ellipsis string
	// Summary prints "✓ label 1.2s" when the command succeeds.
	Summary bool
	// HideCursor hides the cursor while the command runs.
	HideCursor bool
}

// Live owns the one dynamic status line of a run.
//
//	Idle -> Running -> Succeeded | Failed
//
// Every Draw call produces exactly one redraw. Live is not safe for
// concurrent use; the run loop drives it from a single goroutine.
type Live struct {
	term    *Terminal
	opts    LiveOptions
	state   State
	started time.Time
	redraws int
	now     func() time.Time
}

// NewLive creates an idle display writing through t.
func NewLive(t *Terminal, opts LiveOptions) *Live {
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	return &Live{term: t, opts: opts, now: time.Now}
}

// State returns the current lifecycle state.
func (l *Live) State() State {
	return l.state
}

// Redraws returns how many times the status line was drawn.
func (l *Live) Redraws() int {
	return l.redraws
}

// Start moves to Running and shows the label.
func (l *Live) Start() error {
	if l.state != StateIdle {
		return l.transitionError("start")
	}
	l.state = StateRunning
	l.started = l.now()

	if l.opts.HideCursor {
		if err := l.term.HideCursor(); err != nil {
			return err
		}
	}
	return l.redraw(l.render(""))
}

// Draw replaces the status line with line, fitted to the current width.
// A line that is blank once sanitized shows the label instead.
func (l *Live) Draw(line string) error {
	if l.state != StateRunning {
		return l.transitionError("draw")
	}
	return l.redraw(l.render(line))
}

// Succeed clears the status line and leaves the terminal clean.
func (l *Live) Succeed() error {
	if l.state != StateRunning {
		return l.transitionError("succeed")
	}
	l.state = StateSucceeded

	if err := l.finish(); err != nil {
		return err
	}
	if !l.opts.Summary {
		return nil
	}

	s := l.term.Styles()
	name := l.opts.Label
	if name == "" {
		name = "done"
	}
	return l.term.Println(formatStatus(SymbolSuccess, s.Success, s.Muted, name, formatDuration(l.Elapsed())))
}

// Fail clears the status line, reports the exit code and replays the full
// output exactly as the command printed it. hint is an optional suggestion
// shown under the header.
func (l *Live) Fail(exitCode int, output []byte, hint string) error {
	if l.state != StateRunning {
		return l.transitionError("fail")
	}
	l.state = StateFailed

	if err := l.finish(); err != nil {
		return err
	}

	s := l.term.ErrStyles()
	name := l.opts.Label
	if name == "" {
		name = "Command"
	}
	header := formatStatus(SymbolFail, s.Error, s.Muted,
		fmt.Sprintf("%s failed with exit code %d", name, exitCode),
		formatDuration(l.Elapsed()))
	if err := l.term.Errorln(header); err != nil {
		return err
	}
	if hint != "" {
		if err := l.term.Errorln("  " + s.Muted.Render(hint)); err != nil {
			return err
		}
	}

	if len(output) == 0 {
		return nil
	}
	if err := l.term.WriteErr(output); err != nil {
		return err
	}
	if output[len(output)-1] != '\n' {
		return l.term.Errorln("")
	}
	return nil
}

// Elapsed returns the time since Start.
func (l *Live) Elapsed() time.Duration {
	if l.started.IsZero() {
		return 0
	}
	return l.now().Sub(l.started)
}

func (l *Live) finish() error {
	if err := l.term.ClearLine(); err != nil {
		return err
	}
	if l.opts.HideCursor {
		return l.term.ShowCursor()
	}
	return nil
}

func (l *Live) redraw(line string) error {
	l.redraws++
	return l.term.Redraw(line)
}

// budget is the number of columns available for the status line.
func (l *Live) budget() int {
	return l.term.Width() - l.opts.Margin
}

// render builds the status line for a raw output line. The result never
// leaves a style open.
func (l *Live) render(raw string) string {
	line := l.layout(raw)
	if ansi.StyleOf(line).Active() {
		line += ansi.Reset
	}
	return line
}

func (l *Live) layout(raw string) string {
	budget := l.budget()
	s := l.term.Styles()

	text := ansi.Sanitize(raw)
	if l.term.NoColor() {
		text = ansi.Strip(text)
	}

	if strings.TrimSpace(ansi.Strip(text)) == "" {
		if l.opts.Label == "" {
			return ""
		}
		return s.Label.Render(Truncate(l.opts.Label, budget, l.opts.Ellipsis))
	}

	if l.opts.Label == "" {
		return Truncate(text, budget, l.opts.Ellipsis)
	}

	prefix := "[" + l.opts.Label + "]"
	prefixWidth := ansi.Width(prefix) + 1
	if prefixWidth >= budget {
		return s.Prefix.Render(Truncate(prefix, budget, ""))
	}
	return s.Prefix.Render(prefix) + " " + Truncate(text, budget-prefixWidth, l.opts.Ellipsis)
}

func (l *Live) transitionError(op string) error {
	return fmt.Errorf("live display: can't %s while %s", op, l.state)
}
