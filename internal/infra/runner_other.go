//go:build !unix

package infra

import (
	"os"
	"os/exec"

	"github.com/no111u3/automatic/internal/domain"
)

// setupProcessGroup is a no-op where Unix process groups do not exist;
// exec.CommandContext kills the direct child on cancellation.
func setupProcessGroup(cmd *exec.Cmd) {}

func statusFromState(state *os.ProcessState) domain.Status {
	if state == nil {
		return domain.Unknown()
	}
	if code := state.ExitCode(); code >= 0 {
		return domain.Exited(code)
	}
	return domain.Unknown()
}
