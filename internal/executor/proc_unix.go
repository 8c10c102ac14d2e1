//go:build unix

package executor

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configureProcessGroup starts the shell in its own process group so a
// timeout kills everything the command spawned, not only the shell.
func configureProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		if errors.Is(err, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return err
	}
}
