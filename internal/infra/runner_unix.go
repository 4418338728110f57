//go:build unix

package infra

import (
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/no111u3/automatic/internal/domain"
)

// setupProcessGroup sets up a process group for Unix systems
// so cancellation can kill the entire process tree.
func setupProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		killProcess(cmd)
		return nil
	}
}

// killProcess kills the process group on Unix systems
func killProcess(cmd *exec.Cmd) {
	if cmd.Process != nil {
		pgid := cmd.Process.Pid
		_ = unix.Kill(-pgid, unix.SIGKILL)
	}
}

// statusFromState decodes a wait status. A signal-terminated child has no
// exit code and is reported as Signaled.
func statusFromState(state *os.ProcessState) domain.Status {
	if state == nil {
		return domain.Unknown()
	}
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok {
		if code := state.ExitCode(); code >= 0 {
			return domain.Exited(code)
		}
		return domain.Unknown()
	}
	switch {
	case ws.Exited():
		return domain.Exited(ws.ExitStatus())
	case ws.Signaled():
		name := unix.SignalName(ws.Signal())
		if name == "" {
			name = ws.Signal().String()
		}
		return domain.Signaled(name)
	default:
		return domain.Unknown()
	}
}
