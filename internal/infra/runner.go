package infra

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
	"time"

	"github.com/no111u3/automatic/internal/domain"
)

// Output is the result of a blocking Run.
type Output struct {
	Status domain.Status
	Stdout []byte
	Stderr []byte
}

// Runner describes one command and its stdio
// configuration. Arguments go to the OS verbatim; there is no shell.
type Runner struct {
	program string
	args    []string
	stdin   Stdio
	stdout  Stdio
	stderr  Stdio
}

// NewRunner returns a Runner with all three streams piped.
func NewRunner(program string, args ...string) *Runner {
	return &Runner{
		program: program,
		args:    slices.Clone(args),
		stdin:   Piped(),
		stdout:  Piped(),
		stderr:  Piped(),
	}
}

func (r *Runner) Program() string { return r.program }

func (r *Runner) Args() []string { return slices.Clone(r.args) }

func (r *Runner) SetStdin(s Stdio) *Runner {
	r.stdin = s
	return r
}

func (r *Runner) SetStdout(s Stdio) *Runner {
	r.stdout = s
	return r
}

func (r *Runner) SetStderr(s Stdio) *Runner {
	r.stderr = s
	return r
}

func (r *Runner) command(ctx context.Context) *exec.Cmd {
	cmd := exec.CommandContext(ctx, r.program, r.args...)
	// A child reading the terminal must stay in the foreground group.
	if r.stdin.kind != stdioInherit {
		setupProcessGroup(cmd)
	}
	return cmd
}

func (r *Runner) releaseOwned() {
	r.stdin.release()
	r.stdout.release()
	r.stderr.release()
}

// Run spawns the process and blocks until it exits. Piped stdout and
// stderr are captured in memory; a piped stdin reads EOF. A nonzero exit
// is reported in Output.Status, not as an error.
func (r *Runner) Run(ctx context.Context) (*Output, error) {
	cmd := r.command(ctx)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = r.stdin.input()
	cmd.Stdout = r.stdout.output(os.Stdout, &stdout)
	cmd.Stderr = r.stderr.output(os.Stderr, &stderr)

	slog.Debug("spawning", "program", r.program, "args", r.args,
		"stdin", r.stdin, "stdout", r.stdout, "stderr", r.stderr)

	start := time.Now()
	err := cmd.Start()
	r.releaseOwned()
	if err != nil {
		return nil, &domain.SpawnError{Program: r.program, Err: err}
	}

	if err := waitErr(ctx, r.program, cmd.Wait()); err != nil {
		return nil, err
	}

	status := statusFromState(cmd.ProcessState)
	slog.Debug("exited", "program", r.program, "status", status.String(), "duration", time.Since(start))

	return &Output{
		Status: status,
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}, nil
}

// RunAsync spawns the process and returns without waiting. Piped streams
// become pipe endpoints that the caller takes from the returned Runned.
// A spawn failure is returned as a *domain.SpawnError.
func (r *Runner) RunAsync(ctx context.Context) (*Runned, error) {
	cmd := r.command(ctx)
	p := &pipes{}

	var err error
	if cmd.Stdin, p.stdin, err = r.asyncInput(p); err == nil {
		if cmd.Stdout, p.stdout, err = r.asyncOutput(r.stdout, os.Stdout, p); err == nil {
			cmd.Stderr, p.stderr, err = r.asyncOutput(r.stderr, os.Stderr, p)
		}
	}
	if err != nil {
		p.closeAll()
		r.releaseOwned()
		return nil, &domain.SpawnError{Program: r.program, Err: err}
	}

	slog.Debug("spawning async", "program", r.program, "args", r.args,
		"stdin", r.stdin, "stdout", r.stdout, "stderr", r.stderr)

	err = cmd.Start()
	p.closeChildEnds()
	r.releaseOwned()
	if err != nil {
		p.closeAll()
		return nil, &domain.SpawnError{Program: r.program, Err: err}
	}

	return newRunned(ctx, r.program, cmd, p), nil
}

// pipes tracks the OS pipes created for RunAsync. The child ends are
// closed in the parent after spawn; the parent ends go to Runned.
type pipes struct {
	stdin, stdout, stderr *os.File
	child                 []*os.File
}

func (p *pipes) closeChildEnds() {
	for _, f := range p.child {
		_ = f.Close()
	}
	p.child = nil
}

func (p *pipes) closeAll() {
	p.closeChildEnds()
	for _, f := range []*os.File{p.stdin, p.stdout, p.stderr} {
		if f != nil {
			_ = f.Close()
		}
	}
}

func (r *Runner) asyncInput(p *pipes) (in io.Reader, parent *os.File, err error) {
	if r.stdin.kind != stdioPiped {
		return r.stdin.input(), nil, nil
	}
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	p.child = append(p.child, pr)
	return pr, pw, nil
}

func (r *Runner) asyncOutput(s Stdio, inherited *os.File, p *pipes) (out io.Writer, parent *os.File, err error) {
	if s.kind != stdioPiped {
		return s.output(inherited, nil), nil, nil
	}
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, nil, err
	}
	p.child = append(p.child, pw)
	return pw, pr, nil
}

// waitErr maps the result of cmd.Wait. A nonzero exit is not an error
// unless ctx ended first, in which case the child was killed for it. A
// child that exited cleanly keeps its status even if ctx ended since.
func waitErr(ctx context.Context, program string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return &domain.WaitError{Program: program, Err: err}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &domain.WaitError{Program: program, Err: ctxErr}
	}
	return nil
}
