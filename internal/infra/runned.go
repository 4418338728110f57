package infra

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"sync"

	"github.com/no111u3/automatic/internal/domain"
)

// Runned is a handle to one in-flight process started by RunAsync. It
// exclusively owns the process and the parent ends of its piped streams
// until they are taken.
type Runned struct {
	program string
	cmd     *exec.Cmd

	mu     sync.Mutex
	stdin  *os.File
	stdout *os.File
	stderr *os.File

	done   chan struct{}
	status domain.Status
	err    error
}

func newRunned(ctx context.Context, program string, cmd *exec.Cmd, p *pipes) *Runned {
	r := &Runned{
		program: program,
		cmd:     cmd,
		stdin:   p.stdin,
		stdout:  p.stdout,
		stderr:  p.stderr,
		done:    make(chan struct{}),
	}
	go r.reap(ctx)
	return r
}

// reap waits for the process exactly once. The parent pipe ends are plain
// files, so exec.Cmd.Wait never closes them under a reader.
func (r *Runned) reap(ctx context.Context) {
	defer close(r.done)

	if err := waitErr(ctx, r.program, r.cmd.Wait()); err != nil {
		r.err = err
		return
	}
	r.status = statusFromState(r.cmd.ProcessState)
	slog.Debug("async exited", "program", r.program, "pid", r.Pid(), "status", r.status.String())
}

func (r *Runned) Pid() int {
	if r.cmd.Process == nil {
		return -1
	}
	return r.cmd.Process.Pid
}

// TryWait reports the terminal status without blocking. The second
// result is false while the process is still running.
func (r *Runned) TryWait() (domain.Status, bool, error) {
	select {
	case <-r.done:
		return r.status, true, r.err
	default:
		return domain.Status{}, false, nil
	}
}

// Wait returns at once if the process has already exited, otherwise it
// closes an untaken stdin and blocks until exit. Later calls return the
// same result without waiting on the OS again.
func (r *Runned) Wait() (domain.Status, error) {
	if status, exited, err := r.TryWait(); exited {
		return status, err
	}

	r.mu.Lock()
	if r.stdin != nil {
		_ = r.stdin.Close()
		r.stdin = nil
	}
	r.mu.Unlock()

	<-r.done
	return r.status, r.err
}

// Stdin hands over the write end of the child's stdin. It returns nil if
// already taken or if stdin was not piped.
func (r *Runned) Stdin() *os.File {
	return r.take(&r.stdin)
}

// Stdout hands over the read end of the child's stdout. It returns nil if
// already taken or if stdout was not piped.
func (r *Runned) Stdout() *os.File {
	return r.take(&r.stdout)
}

// Stderr hands over the read end of the child's stderr. It returns nil if
// already taken or if stderr was not piped.
func (r *Runned) Stderr() *os.File {
	return r.take(&r.stderr)
}

func (r *Runned) take(slot **os.File) *os.File {
	r.mu.Lock()
	defer r.mu.Unlock()
	f := *slot
	*slot = nil
	return f
}

// Close releases any pipe ends that were never taken. It does not wait
// for or signal the process.
func (r *Runned) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var errs []error
	for _, slot := range []**os.File{&r.stdin, &r.stdout, &r.stderr} {
		if *slot != nil {
			errs = append(errs, (*slot).Close())
			*slot = nil
		}
	}
	return errors.Join(errs...)
}
