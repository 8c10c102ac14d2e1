//go:build !unix

package executor

import "os/exec"

// configureProcessGroup keeps the default cancel behaviour (kill the direct
// child) on platforms without process groups.
func configureProcessGroup(_ *exec.Cmd) {}
