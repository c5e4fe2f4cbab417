package schema

import "errors"

var (
	// ErrPathEscape indicates a path resolved outside the workspace root.
	ErrPathEscape = errors.New("path outside workspace not allowed")
	// ErrNotFound indicates a file or directory does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrIsDirectory indicates a file operation hit a directory.
	ErrIsDirectory = errors.New("path is a directory")
	// ErrAlreadyExists indicates the target path already exists.
	ErrAlreadyExists = errors.New("path already exists")
	// ErrBinaryFile indicates the file cannot be read as text.
	ErrBinaryFile = errors.New("cannot read binary file")
	// ErrNotARepository indicates the workspace is not a git repository.
	ErrNotARepository = errors.New("not a git repository")
	// ErrNothingToCommit indicates the index had no staged changes.
	ErrNothingToCommit = errors.New("nothing to commit")
	// ErrCommitFailed indicates git rejected the commit.
	ErrCommitFailed = errors.New("commit failed")
	// ErrPushFailed indicates the push was rejected after the upstream retry.
	ErrPushFailed = errors.New("push failed")
	// ErrPullFailed indicates the pull was rejected.
	ErrPullFailed = errors.New("pull failed")
)
