// Package git wraps the git binary for the workspace source-control
// panel: porcelain status parsing, staging, commits, and remote sync.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"pkt.systems/pslog"
)

// outputPreviewLen caps the command output carried in log entries.
const outputPreviewLen = 200

// Run executes one git invocation in the workspace directory and
// returns its combined output. On failure the output is still returned
// so callers can classify it (the commit path inspects it for
// "nothing to commit").
func Run(ctx context.Context, dir string, args ...string) (string, error) {
	log := pslog.Ctx(ctx).With("dir", dir, "git", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	out := string(output)
	if err != nil {
		msg := strings.TrimSpace(out)
		log.Warn("git command failed", "err", err, "output", preview(msg))
		return out, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
	}
	log.Debug("git command ok", "output_bytes", len(output))
	return out, nil
}

func preview(s string) string {
	if len(s) > outputPreviewLen {
		return s[:outputPreviewLen] + "..."
	}
	return s
}
