package cli

import (
	"context"
	"io"
	"iter"
	"maps"

	"github.com/rileyhilliard/liveline/internal/config"
	"github.com/rileyhilliard/liveline/internal/errors"
	"github.com/rileyhilliard/liveline/internal/exec"
	"github.com/rileyhilliard/liveline/internal/logger"
	"github.com/rileyhilliard/liveline/internal/output"
	"github.com/rileyhilliard/liveline/internal/ui"
)

// RunOptions holds everything one liveline run needs.
type RunOptions struct {
	Command exec.Command
	Label   string
	Config  *config.Config

	Stdout io.Writer
	Stderr io.Writer
	Logger logger.Logger

	// TerminalOptions are passed to ui.NewTerminal after the defaults.
	TerminalOptions []ui.TerminalOption
}

// Run starts the command and shows its output on one status line until it
// exits. A command that exits non-zero has its full output replayed and
// Run returns an *errors.ExitError carrying its code. A command that can't
// be started returns an ErrSpawn error before anything is drawn.
func Run(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}

	cmd := opts.Command
	if cfg.ForceColor {
		env := maps.Clone(exec.ForceColorEnv)
		maps.Copy(env, cmd.Env)
		cmd.Env = env
	}

	proc, err := exec.Start(ctx, cmd, exec.WithLogger(log))
	if err != nil {
		return err
	}
	log.Debug("started %s as pid %d", cmd, proc.Pid())

	termOpts := append([]ui.TerminalOption{
		ui.WithFallbackWidth(cfg.Width),
		ui.WithTerminalLogger(log),
	}, opts.TerminalOptions...)
	term := ui.NewTerminal(opts.Stdout, opts.Stderr, termOpts...)

	live := ui.NewLive(term, ui.LiveOptions{
		Label:      opts.Label,
		Margin:     cfg.Margin,
		Ellipsis:   cfg.Ellipsis,
		Summary:    cfg.Summary,
		HideCursor: cfg.HideCursor && term.IsTerminal(),
	})

	return stream(live, output.NewBuffer(), proc.Events(), cmd, log)
}

// stream feeds every chunk through buf into live, one redraw per chunk,
// and settles the display once the exit event arrives.
func stream(live *ui.Live, buf *output.Buffer, events iter.Seq[exec.Event], cmd exec.Command, log logger.Logger) error {
	if err := live.Start(); err != nil {
		return errors.Wrap(err, "Couldn't draw the status line")
	}

	exit := exec.Event{Exited: true, ExitCode: 1}
	for ev := range events {
		if ev.Exited {
			exit = ev
			break
		}
		buf.Append(ev.Chunk)
		if err := live.Draw(buf.CurrentLine()); err != nil {
			return errors.Wrap(err, "Couldn't draw the status line")
		}
	}
	if exit.Err != nil {
		log.Debug("%s: %v", cmd, exit.Err)
	}
	log.Debug("%s: exit %d after %d lines, %d bytes (partial line: %t)",
		cmd, exit.ExitCode, buf.Lines(), buf.Len(), buf.Pending())

	if exit.ExitCode == 0 {
		if err := live.Succeed(); err != nil {
			return errors.Wrap(err, "Couldn't clear the status line")
		}
		return nil
	}

	all := buf.FullOutput()
	if err := live.Fail(exit.ExitCode, all, exec.FailureHint(cmd, all, exit.ExitCode)); err != nil {
		return errors.Wrap(err, "Couldn't write the command's output")
	}
	return errors.NewExitError(exit.ExitCode)
}
