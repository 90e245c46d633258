package control

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its output. On success the
// output is the command's stdout; on failure it is whatever error text the
// command produced.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// execRunner invokes real commands with the console window suppressed.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	hideWindow(cmd)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := stderr.String()
		// netsh reports failures on stdout
		if strings.TrimSpace(detail) == "" {
			detail = stdout.String()
		}
		return detail, err
	}
	return stdout.String(), nil
}
