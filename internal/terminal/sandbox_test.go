package terminal

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RyomenPanda/PandaCode/internal/pathguard"
	"github.com/RyomenPanda/PandaCode/schema"
)

func newSandbox(t *testing.T, timeout time.Duration) *Sandbox {
	t.Helper()
	guard, err := pathguard.New(t.TempDir())
	if err != nil {
		t.Fatalf("new guard: %v", err)
	}
	return NewSandbox(guard, NewRegistry(guard.Root()), timeout, nil)
}

func TestPwdOnFreshSession(t *testing.T) {
	sb := newSandbox(t, 0)
	res := sb.Execute(context.Background(), "default", "pwd")
	if res.ExitCode != 0 {
		t.Fatalf("pwd exit = %d, stderr %q", res.ExitCode, res.Stderr)
	}
	if res.Stdout != sb.guard.Root()+"\n" {
		t.Fatalf("pwd = %q, want workspace root", res.Stdout)
	}
}

func TestClearEmitsANSISequence(t *testing.T) {
	sb := newSandbox(t, 0)
	res := sb.Execute(context.Background(), "default", "clear")
	if res.ExitCode != 0 || res.Stdout != "\x1b[2J\x1b[H" {
		t.Fatalf("clear = %+v", res)
	}
}

func TestCdUpdatesPwd(t *testing.T) {
	sb := newSandbox(t, 0)
	if err := os.Mkdir(filepath.Join(sb.guard.Root(), "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	res := sb.Execute(context.Background(), "default", "cd subdir")
	if res.ExitCode != 0 {
		t.Fatalf("cd exit = %d, stderr %q", res.ExitCode, res.Stderr)
	}
	if res.Stdout != "" {
		t.Fatalf("cd stdout = %q, want empty", res.Stdout)
	}
	pwd := sb.Execute(context.Background(), "default", "pwd")
	want := filepath.Join(sb.guard.Root(), "subdir") + "\n"
	if pwd.Stdout != want {
		t.Fatalf("pwd after cd = %q, want %q", pwd.Stdout, want)
	}
}

func TestCdNoArgReturnsToRoot(t *testing.T) {
	sb := newSandbox(t, 0)
	if err := os.Mkdir(filepath.Join(sb.guard.Root(), "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	sb.Execute(context.Background(), "default", "cd subdir")
	res := sb.Execute(context.Background(), "default", "cd")
	if res.ExitCode != 0 {
		t.Fatalf("cd exit = %d, stderr %q", res.ExitCode, res.Stderr)
	}
	pwd := sb.Execute(context.Background(), "default", "pwd")
	if pwd.Stdout != sb.guard.Root()+"\n" {
		t.Fatalf("pwd = %q, want root", pwd.Stdout)
	}
}

func TestCdAboveRootDenied(t *testing.T) {
	sb := newSandbox(t, 0)
	res := sb.Execute(context.Background(), "default", "cd ..")
	if res.ExitCode != 1 {
		t.Fatalf("cd .. exit = %d", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "Access denied") {
		t.Fatalf("cd .. stderr = %q", res.Stderr)
	}
	pwd := sb.Execute(context.Background(), "default", "pwd")
	if pwd.Stdout != sb.guard.Root()+"\n" {
		t.Fatalf("cwd changed after denied cd: %q", pwd.Stdout)
	}
}

func TestCdMissingAndNonDirectory(t *testing.T) {
	sb := newSandbox(t, 0)
	res := sb.Execute(context.Background(), "default", "cd nowhere")
	if res.ExitCode != 1 || !strings.Contains(res.Stderr, "No such file or directory: nowhere") {
		t.Fatalf("cd nowhere = %+v", res)
	}
	if err := os.WriteFile(filepath.Join(sb.guard.Root(), "plain.txt"), nil, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res = sb.Execute(context.Background(), "default", "cd plain.txt")
	if res.ExitCode != 1 || !strings.Contains(res.Stderr, "Not a directory: plain.txt") {
		t.Fatalf("cd plain.txt = %+v", res)
	}
}

func TestDeniedCommandDoesNotSpawn(t *testing.T) {
	sb := newSandbox(t, 0)
	victim := filepath.Join(sb.guard.Root(), "victim.txt")
	if err := os.WriteFile(victim, []byte("keep me"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res := sb.Execute(context.Background(), "default", "rm -rf /")
	if res.ExitCode != 1 {
		t.Fatalf("rm exit = %d", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "not allowed for security reasons") {
		t.Fatalf("rm stderr = %q", res.Stderr)
	}
	if _, err := os.Stat(victim); err != nil {
		t.Fatalf("side effect observed: %v", err)
	}
}

func TestCommandNotFound(t *testing.T) {
	sb := newSandbox(t, 0)
	res := sb.Execute(context.Background(), "default", "definitely-not-a-real-binary-xyz")
	if res.ExitCode != 127 {
		t.Fatalf("exit = %d, want 127", res.ExitCode)
	}
	if !strings.Contains(res.Stderr, "Command not found: definitely-not-a-real-binary-xyz") {
		t.Fatalf("stderr = %q", res.Stderr)
	}
}

func TestCommandTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	sb := newSandbox(t, 100*time.Millisecond)
	res := sb.Execute(context.Background(), "default", "sleep 5")
	if res.ExitCode != 124 {
		t.Fatalf("exit = %d, want 124 (stderr %q)", res.ExitCode, res.Stderr)
	}
	if !strings.Contains(res.Stderr, "timed out") {
		t.Fatalf("stderr = %q", res.Stderr)
	}
}

func TestExternalCommandCapturesOutput(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	sb := newSandbox(t, 0)
	res := sb.Execute(context.Background(), "default", `sh -c "echo out; echo err 1>&2; exit 3"`)
	if res.ExitCode != 3 {
		t.Fatalf("exit = %d, want 3", res.ExitCode)
	}
	if res.Stdout != "out\n" || res.Stderr != "err\n" {
		t.Fatalf("captured = %+v", res)
	}
}

func TestQuotedTokenization(t *testing.T) {
	if _, err := exec.LookPath("echo"); err != nil {
		t.Skip("echo not available")
	}
	sb := newSandbox(t, 0)
	res := sb.Execute(context.Background(), "default", `echo "two words"`)
	if res.ExitCode != 0 || res.Stdout != "two words\n" {
		t.Fatalf("echo = %+v", res)
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	sb := newSandbox(t, 0)
	if err := os.Mkdir(filepath.Join(sb.guard.Root(), "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	sb.Execute(context.Background(), "a", "cd subdir")
	pwdA := sb.Execute(context.Background(), "a", "pwd")
	pwdB := sb.Execute(context.Background(), "b", "pwd")
	if pwdA.Stdout == pwdB.Stdout {
		t.Fatalf("sessions share cwd: %q", pwdA.Stdout)
	}
	if pwdB.Stdout != sb.guard.Root()+"\n" {
		t.Fatalf("fresh session cwd = %q", pwdB.Stdout)
	}
}

func TestConcurrentExecuteOnSharedSession(t *testing.T) {
	sb := newSandbox(t, 0)
	if err := os.Mkdir(filepath.Join(sb.guard.Root(), "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	target := filepath.Join(sb.guard.Root(), "subdir")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if res := sb.Execute(context.Background(), "shared", "cd "+target); res.ExitCode != 0 {
				t.Errorf("cd exit = %d, stderr %q", res.ExitCode, res.Stderr)
			}
		}()
		go func() {
			defer wg.Done()
			if res := sb.Execute(context.Background(), "shared", "pwd"); res.ExitCode != 0 {
				t.Errorf("pwd exit = %d, stderr %q", res.ExitCode, res.Stderr)
			}
		}()
	}
	wg.Wait()
	pwd := sb.Execute(context.Background(), "shared", "pwd")
	want := filepath.Join(sb.guard.Root(), "subdir") + "\n"
	if pwd.Stdout != want {
		t.Fatalf("pwd after concurrent cd = %q, want %q", pwd.Stdout, want)
	}
}

func TestResizeRecordsGeometry(t *testing.T) {
	reg := NewRegistry(t.TempDir())
	reg.Resize("term-1", 40, 120)
	info := reg.SessionInfo("term-1")
	if info.Rows != 40 || info.Cols != 120 {
		t.Fatalf("info = %+v", info)
	}
}

func TestEmptySessionIDUsesDefault(t *testing.T) {
	sb := newSandbox(t, 0)
	if err := os.Mkdir(filepath.Join(sb.guard.Root(), "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	sb.Execute(context.Background(), "", "cd subdir")
	pwd := sb.Execute(context.Background(), schema.DefaultSessionID, "pwd")
	want := filepath.Join(sb.guard.Root(), "subdir") + "\n"
	if pwd.Stdout != want {
		t.Fatalf("pwd = %q, want %q", pwd.Stdout, want)
	}
}
