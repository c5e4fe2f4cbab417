package schema

// ListFilesRequest lists one directory inside the workspace.
type ListFilesRequest struct {
	Path string `json:"path"`
}

// ListFilesResponse carries the sorted listing.
type ListFilesResponse struct {
	Entries []FileEntry `json:"entries"`
}

// ReadFileRequest reads a workspace file as text.
type ReadFileRequest struct {
	Path string `json:"path"`
}

// ReadFileResponse carries file content and the detected language.
type ReadFileResponse struct {
	Content  string `json:"content"`
	Language string `json:"language"`
}

// WriteFileRequest overwrites a workspace file, creating parents.
type WriteFileRequest struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// CreateFileRequest creates a new empty file.
type CreateFileRequest struct {
	Path string `json:"path"`
}

// CreateDirectoryRequest creates a new directory.
type CreateDirectoryRequest struct {
	Path string `json:"path"`
}

// DeletePathRequest removes a file or directory tree.
type DeletePathRequest struct {
	Path string `json:"path"`
}

// RenamePathRequest moves a file or directory.
type RenamePathRequest struct {
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

// ProjectFilesRequest walks the workspace for assistant context.
type ProjectFilesRequest struct {
	MaxFiles int `json:"max_files"`
}

// ProjectFilesResponse carries relative paths in walk order.
type ProjectFilesResponse struct {
	Paths []string `json:"paths"`
}

// ExecuteCommandRequest runs one command line in a terminal session.
type ExecuteCommandRequest struct {
	SessionID SessionID `json:"session_id"`
	Command   string    `json:"command"`
}

// ExecuteCommandResponse wraps the uniform command result.
type ExecuteCommandResponse struct {
	Result CommandResult `json:"result"`
}

// ResizeTerminalRequest records terminal geometry for a session.
type ResizeTerminalRequest struct {
	SessionID SessionID `json:"session_id"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
}

// RepoStatusResponse carries the parsed repository status.
type RepoStatusResponse struct {
	Status RepoStatus `json:"status"`
}

// CommitRequest commits staged or listed files.
type CommitRequest struct {
	Message string   `json:"message"`
	Files   []string `json:"files,omitempty"`
}

// PushRequest pushes the current or named branch.
type PushRequest struct {
	Remote string `json:"remote,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// PullRequest pulls the current or named branch.
type PullRequest struct {
	Remote string `json:"remote,omitempty"`
	Branch string `json:"branch,omitempty"`
}

// DiffRequest returns the diff for one path, or everything when empty.
type DiffRequest struct {
	Path string `json:"path,omitempty"`
}

// DiffResponse carries raw diff text.
type DiffResponse struct {
	Diff string `json:"diff"`
}

// ChatRequest sends a message to the assistant with optional context.
type ChatRequest struct {
	Message string      `json:"message"`
	Context ChatContext `json:"context,omitempty"`
}

// RefactorRequest asks the assistant to rewrite code.
type RefactorRequest struct {
	Code        string `json:"code"`
	Language    string `json:"language"`
	Instruction string `json:"instruction"`
}

// GenerateTestsRequest asks the assistant for unit tests.
type GenerateTestsRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}
