package terminal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	shellwords "github.com/mattn/go-shellwords"
	"pkt.systems/pslog"

	"github.com/RyomenPanda/PandaCode/internal/pathguard"
	"github.com/RyomenPanda/PandaCode/schema"
)

// DefaultCommandTimeout bounds external command execution.
const DefaultCommandTimeout = 30 * time.Second

// clearScreen is the ANSI clear plus cursor-home sequence.
const clearScreen = "\x1b[2J\x1b[H"

// deniedCommands are never spawned, regardless of arguments.
var deniedCommands = map[string]struct{}{
	"rm":     {},
	"rmdir":  {},
	"del":    {},
	"format": {},
	"fdisk":  {},
	"mkfs":   {},
}

// Sandbox executes command lines on behalf of terminal sessions.
type Sandbox struct {
	guard    *pathguard.Guard
	registry *Registry
	timeout  time.Duration
	log      pslog.Logger
}

// NewSandbox constructs a sandbox over the guard's workspace. A zero
// timeout selects DefaultCommandTimeout.
func NewSandbox(guard *pathguard.Guard, registry *Registry, timeout time.Duration, logger pslog.Logger) *Sandbox {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	if logger != nil {
		logger = logger.With("workspace", guard.Root())
	}
	return &Sandbox{guard: guard, registry: registry, timeout: timeout, log: logger}
}

// Registry returns the session registry backing the sandbox.
func (s *Sandbox) Registry() *Registry {
	return s.registry
}

// Execute runs one command line in the named session. Builtins (cd,
// pwd, clear) are handled without spawning a process. Everything else
// is tokenized with shell quoting rules, checked against the deny-list,
// and spawned with the session's cwd and environment under the
// configured timeout.
func (s *Sandbox) Execute(ctx context.Context, sessionID schema.SessionID, command string) schema.CommandResult {
	cwd, env := s.registry.execState(sessionID)
	trimmed := strings.TrimSpace(command)

	switch {
	case trimmed == "cd" || strings.HasPrefix(trimmed, "cd "):
		return s.changeDir(sessionID, cwd, trimmed)
	case trimmed == "pwd":
		return schema.CommandResult{Stdout: cwd + "\n", ExitCode: schema.ExitOK}
	case trimmed == "clear":
		return schema.CommandResult{Stdout: clearScreen, ExitCode: schema.ExitOK}
	}

	args, err := shellwords.Parse(command)
	if err != nil {
		return schema.CommandResult{
			Stderr:   fmt.Sprintf("Error executing command: %v\n", err),
			ExitCode: schema.ExitFailure,
		}
	}
	if len(args) == 0 {
		return schema.CommandResult{ExitCode: schema.ExitOK}
	}
	if _, denied := deniedCommands[args[0]]; denied {
		if s.log != nil {
			s.log.Warn("command denied", "session", sessionID, "command", args[0])
		}
		return schema.CommandResult{
			Stderr:   fmt.Sprintf("Command %q is not allowed for security reasons\n", args[0]),
			ExitCode: schema.ExitFailure,
		}
	}
	return s.spawn(ctx, cwd, env, args)
}

func (s *Sandbox) spawn(ctx context.Context, cwd string, env []string, args []string) schema.CommandResult {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, args[0], args[1:]...)
	cmd.Dir = cwd
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if s.log != nil {
		s.log.Debug("command spawn", "argv0", args[0], "args", len(args)-1, "cwd", cwd)
	}
	err := cmd.Run()
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return schema.CommandResult{
			Stderr:   fmt.Sprintf("Command timed out after %d seconds\n", int(s.timeout.Seconds())),
			ExitCode: schema.ExitTimeout,
		}
	}
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return schema.CommandResult{
				Stderr:   fmt.Sprintf("Command not found: %s\n", args[0]),
				ExitCode: schema.ExitNotFound,
			}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return schema.CommandResult{
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				ExitCode: exitErr.ExitCode(),
			}
		}
		return schema.CommandResult{
			Stderr:   fmt.Sprintf("Error executing command: %v\n", err),
			ExitCode: schema.ExitFailure,
		}
	}
	return schema.CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: schema.ExitOK,
	}
}

// changeDir implements the cd builtin. Absolute and relative targets go
// through the same containment check the path guard uses, then must
// exist and be a directory. The new cwd is written back through the
// registry so concurrent executions on the session stay consistent.
func (s *Sandbox) changeDir(sessionID schema.SessionID, cwd, trimmed string) schema.CommandResult {
	arg := strings.TrimSpace(strings.TrimPrefix(trimmed, "cd"))

	var target, shown string
	if arg == "" {
		target = s.guard.Root()
		shown = "~"
	} else {
		shown = arg
		if filepath.IsAbs(arg) {
			target = filepath.Clean(arg)
		} else {
			target = filepath.Clean(filepath.Join(cwd, arg))
		}
		if err := s.guard.Contains(target); err != nil {
			return schema.CommandResult{
				Stderr:   "Access denied: path outside workspace\n",
				ExitCode: schema.ExitFailure,
			}
		}
	}

	info, err := os.Stat(target)
	if err != nil {
		return schema.CommandResult{
			Stderr:   fmt.Sprintf("No such file or directory: %s\n", shown),
			ExitCode: schema.ExitFailure,
		}
	}
	if !info.IsDir() {
		return schema.CommandResult{
			Stderr:   fmt.Sprintf("Not a directory: %s\n", shown),
			ExitCode: schema.ExitFailure,
		}
	}
	s.registry.setCwd(sessionID, target)
	return schema.CommandResult{ExitCode: schema.ExitOK}
}
