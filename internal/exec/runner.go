package exec

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"os/exec"

	"github.com/rileyhilliard/liveline/internal/errors"
	"github.com/rileyhilliard/liveline/internal/logger"
	"github.com/rileyhilliard/liveline/internal/util"
)

// DefaultChunkSize is the read size used for the merged output pipe.
const DefaultChunkSize = 32 * 1024

// Command describes the child process to run.
type Command struct {
	Name string
	Args []string
	Dir  string
	// Env is added on top of the current environment.
	Env   map[string]string
	Stdin io.Reader
}

// String renders the command line for messages, quoted the way a shell
// would need it.
func (c Command) String() string {
	return util.ShellJoin(append([]string{c.Name}, c.Args...))
}

// Event is one item of a process's output stream. Every stream ends with
// exactly one event that has Exited set.
type Event struct {
	Chunk    []byte
	Exited   bool
	ExitCode int
	// Err is set on the exit event when output could not be read or the
	// process could not be waited on. ExitCode is nonzero in that case.
	Err error
}

// Process is a started child whose stdout and stderr share one pipe.
type Process struct {
	cmd       *exec.Cmd
	out       *os.File
	ctx       context.Context
	log       logger.Logger
	chunkSize int
	exit      *Event
}

// Option configures Start.
type Option func(*Process)

// WithLogger sets the logger used for debug messages.
func WithLogger(l logger.Logger) Option {
	return func(p *Process) { p.log = l }
}

// WithChunkSize sets the maximum size of a single output chunk.
func WithChunkSize(n int) Option {
	return func(p *Process) {
		if n > 0 {
			p.chunkSize = n
		}
	}
}

// Start spawns c with stdout and stderr merged into a single pipe so chunks
// arrive in the order the child wrote them. Cancelling ctx kills the child.
//
// A command that can't be found or launched returns an ErrSpawn error and no
// Process.
func Start(ctx context.Context, c Command, opts ...Option) (*Process, error) {
	p := &Process{
		ctx:       ctx,
		log:       logger.Default(),
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(p)
	}

	if c.Name == "" {
		return nil, errors.New(errors.ErrUsage,
			"What should I run?",
			"Usage: liveline [--label TEXT] <command> [args...]")
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = MergeEnv(os.Environ(), c.Env)
	cmd.Stdin = c.Stdin

	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrSpawn,
			"Couldn't create an output pipe",
			"This shouldn't happen - please report this bug!")
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		_ = pr.Close()
		_ = pw.Close()
		return nil, spawnError(c.Name, err)
	}
	// The child holds its own copy; ours must go so reads see EOF on exit.
	_ = pw.Close()

	p.cmd = cmd
	p.out = pr
	p.log.Debug("started %s (pid %d)", c.String(), cmd.Process.Pid)
	return p, nil
}

// Pid returns the child's process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

// Events returns the output stream. Reading the next chunk is the only
// blocking step. Each chunk is a fresh slice the caller may keep.
//
// Stopping the iteration early kills the child and reaps it. Ranging over
// Events a second time yields only the exit event.
func (p *Process) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		if p.exit != nil {
			yield(*p.exit)
			return
		}

		var readErr error
		buf := make([]byte, p.chunkSize)
		for {
			n, err := p.out.Read(buf)
			if n > 0 {
				if !yield(Event{Chunk: bytes.Clone(buf[:n])}) {
					p.abort()
					return
				}
			}
			if err != nil {
				if !stderrors.Is(err, io.EOF) {
					readErr = err
				}
				break
			}
		}

		ev := p.wait(readErr)
		yield(ev)
	}
}

// Wait drains any remaining output and returns the exit event.
func (p *Process) Wait() Event {
	var last Event
	for ev := range p.Events() {
		last = ev
	}
	return last
}

func (p *Process) abort() {
	_ = p.cmd.Process.Kill()
	p.wait(nil)
}

func (p *Process) wait(readErr error) Event {
	_ = p.out.Close()
	err := p.cmd.Wait()

	ev := Event{Exited: true}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case stderrors.As(err, &exitErr):
		ev.ExitCode = exitErr.ExitCode()
		if ev.ExitCode < 0 {
			// Killed by a signal.
			ev.ExitCode = 1
		}
	default:
		ev.ExitCode = 1
		ev.Err = errors.Wrap(err, "Couldn't wait for the command to finish")
	}

	if readErr != nil && ev.Err == nil {
		ev.Err = errors.Wrap(readErr, "Lost the command's output")
		if ev.ExitCode == 0 {
			ev.ExitCode = 1
		}
	}
	if p.ctx.Err() != nil && ev.ExitCode == 0 {
		ev.ExitCode = 1
	}

	p.log.Debug("pid %d exited with code %d", p.cmd.Process.Pid, ev.ExitCode)
	p.exit = &ev
	return ev
}

func spawnError(name string, err error) error {
	switch {
	case stderrors.Is(err, exec.ErrNotFound), stderrors.Is(err, fs.ErrNotExist):
		return errors.WrapWithCode(err, errors.ErrSpawn,
			fmt.Sprintf("Command not found: %s", name),
			"Check the spelling and that it's installed somewhere on your PATH.")
	case stderrors.Is(err, fs.ErrPermission):
		return errors.WrapWithCode(err, errors.ErrSpawn,
			fmt.Sprintf("Permission denied: %s", name),
			"Make sure the file is executable (chmod +x).")
	default:
		return errors.WrapWithCode(err, errors.ErrSpawn,
			fmt.Sprintf("Couldn't start %s", name),
			"Make sure the command exists and is executable.")
	}
}
