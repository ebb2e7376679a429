package applescript

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes one AppleScript program and returns its trimmed stdout
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// OSARunner runs scripts through /usr/bin/osascript
type OSARunner struct {
	Timeout time.Duration
}

// Run executes script with "osascript -e"
func (r OSARunner) Run(ctx context.Context, script string) (string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "osascript", "-e", script)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AppleScript execution failed: %w", ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("AppleScript execution failed: %s", msg)
	}

	return strings.TrimSpace(stdout.String()), nil
}
