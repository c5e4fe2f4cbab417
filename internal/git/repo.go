package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/RyomenPanda/PandaCode/schema"
)

// Repo operates on the workspace repository.
type Repo struct {
	dir string
}

// NewRepo binds a repo facade to the workspace directory.
func NewRepo(dir string) *Repo {
	return &Repo{dir: dir}
}

// Dir returns the repository directory.
func (r *Repo) Dir() string {
	return r.dir
}

// IsRepo reports whether the workspace is a git repository.
func (r *Repo) IsRepo(ctx context.Context) bool {
	_, err := Run(ctx, r.dir, "status")
	return err == nil
}

// Init initializes a repository in the workspace.
func (r *Repo) Init(ctx context.Context) error {
	_, err := Run(ctx, r.dir, "init")
	return err
}

// Branch returns the current branch name, defaulting to main when
// detached or unborn.
func (r *Repo) Branch(ctx context.Context) (string, error) {
	out, err := Run(ctx, r.dir, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(out)
	if branch == "" {
		branch = "main"
	}
	return branch, nil
}

// Status returns the parsed repository status. The workspace is
// initialized as a repository first if it is not one already.
func (r *Repo) Status(ctx context.Context) (schema.RepoStatus, error) {
	if !r.IsRepo(ctx) {
		if err := r.Init(ctx); err != nil {
			return schema.RepoStatus{}, err
		}
	}
	branch, err := r.Branch(ctx)
	if err != nil {
		return schema.RepoStatus{}, err
	}
	out, err := Run(ctx, r.dir, "status", "--porcelain")
	if err != nil {
		return schema.RepoStatus{}, err
	}
	status := parsePorcelain(out)
	status.Branch = branch
	return status, nil
}

// parsePorcelain classifies two-character porcelain status lines into
// staged, modified, and untracked sets. The index column wins over the
// worktree column; a line lands in exactly one set.
func parsePorcelain(out string) schema.RepoStatus {
	status := schema.RepoStatus{
		Staged:    []string{},
		Modified:  []string{},
		Untracked: []string{},
	}
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 3 {
			continue
		}
		code := line[:2]
		path := line[3:]
		switch {
		case strings.ContainsRune("MADRC", rune(code[0])):
			status.Staged = append(status.Staged, path)
		case code[1] == 'M' || code[1] == 'D':
			status.Modified = append(status.Modified, path)
		case code == "??":
			status.Untracked = append(status.Untracked, path)
		}
	}
	return status
}

// Add stages the listed files.
func (r *Repo) Add(ctx context.Context, files []string) error {
	for _, file := range files {
		if _, err := Run(ctx, r.dir, "add", file); err != nil {
			return err
		}
	}
	return nil
}

// AddAll stages all changes.
func (r *Repo) AddAll(ctx context.Context) error {
	_, err := Run(ctx, r.dir, "add", "-A")
	return err
}

// Commit stages the listed files (or everything when files is nil) and
// commits with the message.
func (r *Repo) Commit(ctx context.Context, message string, files []string) error {
	if !r.IsRepo(ctx) {
		return schema.ErrNotARepository
	}
	if len(files) > 0 {
		if err := r.Add(ctx, files); err != nil {
			return err
		}
	} else if err := r.AddAll(ctx); err != nil {
		return err
	}
	out, err := Run(ctx, r.dir, "commit", "-m", message)
	if err != nil {
		if strings.Contains(out, "nothing to commit") {
			return schema.ErrNothingToCommit
		}
		return fmt.Errorf("%w: %s", schema.ErrCommitFailed, strings.TrimSpace(out))
	}
	return nil
}

// Push pushes the branch to the remote, retrying once with upstream
// tracking when the first attempt is rejected.
func (r *Repo) Push(ctx context.Context, remote, branch string) error {
	remote, branch, err := r.resolveRemoteBranch(ctx, remote, branch)
	if err != nil {
		return err
	}
	if _, err := Run(ctx, r.dir, "push", remote, branch); err == nil {
		return nil
	}
	out, err := Run(ctx, r.dir, "push", "-u", remote, branch)
	if err != nil {
		return fmt.Errorf("%w: %s", schema.ErrPushFailed, strings.TrimSpace(out))
	}
	return nil
}

// Pull pulls the branch from the remote.
func (r *Repo) Pull(ctx context.Context, remote, branch string) error {
	remote, branch, err := r.resolveRemoteBranch(ctx, remote, branch)
	if err != nil {
		return err
	}
	out, err := Run(ctx, r.dir, "pull", remote, branch)
	if err != nil {
		return fmt.Errorf("%w: %s", schema.ErrPullFailed, strings.TrimSpace(out))
	}
	return nil
}

// Diff returns the diff for one path, or the whole worktree when path
// is empty.
func (r *Repo) Diff(ctx context.Context, path string) (string, error) {
	if !r.IsRepo(ctx) {
		return "", schema.ErrNotARepository
	}
	args := []string{"diff"}
	if path != "" {
		args = append(args, path)
	}
	return Run(ctx, r.dir, args...)
}

func (r *Repo) resolveRemoteBranch(ctx context.Context, remote, branch string) (string, string, error) {
	if !r.IsRepo(ctx) {
		return "", "", schema.ErrNotARepository
	}
	if remote == "" {
		remote = "origin"
	}
	if branch == "" {
		current, err := r.Branch(ctx)
		if err != nil {
			return "", "", err
		}
		branch = current
	}
	return remote, branch, nil
}
