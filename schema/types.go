package schema

import "time"

// SessionID identifies a terminal session. Callers pick the key; the
// registry creates sessions lazily on first use.
type SessionID string

// DefaultSessionID is used when a caller does not name a session.
const DefaultSessionID SessionID = "default"

// FileEntry describes a single directory listing entry. Path is always
// relative to the workspace root. Size is nil for directories.
type FileEntry struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	IsDir   bool      `json:"is_directory"`
	Size    *int64    `json:"size,omitempty"`
	ModTime time.Time `json:"modified_time"`
}

// CommandResult is the uniform outcome of a terminal command. Every
// failure mode is folded into it; the sandbox never surfaces a Go error
// for a command that merely failed.
type CommandResult struct {
	Stdout   string `json:"output"`
	Stderr   string `json:"error"`
	ExitCode int    `json:"exit_code"`
}

// Sentinel exit codes used by the command sandbox.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitTimeout  = 124
	ExitNotFound = 127
)

// RepoStatus summarizes the workspace repository. The three path sets
// are disjoint; each path appears in at most one of them.
type RepoStatus struct {
	Branch    string   `json:"branch"`
	Staged    []string `json:"staged_files"`
	Modified  []string `json:"modified_files"`
	Untracked []string `json:"untracked_files"`
}

// AIResponse is the result of an assistant call. When the assistant is
// unavailable or the provider call fails, Success is false and Error
// carries a displayable message.
type AIResponse struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// FileContext describes an open file passed to the assistant as prompt
// context.
type FileContext struct {
	Path     string `json:"path"`
	Content  string `json:"content,omitempty"`
	Language string `json:"language"`
}

// ChatExchange is one prior user/assistant turn in a conversation.
type ChatExchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// ChatContext carries optional editor state into a chat request.
type ChatContext struct {
	CurrentFile *FileContext   `json:"current_file,omitempty"`
	OpenFiles   []FileContext  `json:"open_files,omitempty"`
	History     []ChatExchange `json:"history,omitempty"`
}
