package core

import (
	"context"

	"github.com/RyomenPanda/PandaCode/schema"
)

// Service is the transport-agnostic API for the editor workspace: file
// operations, the terminal sandbox, source control, and the assistant.
// The GUI shell consumes it through the HTTP surface.
type Service interface {
	ListFiles(ctx context.Context, req schema.ListFilesRequest) (schema.ListFilesResponse, error)
	ReadFile(ctx context.Context, req schema.ReadFileRequest) (schema.ReadFileResponse, error)
	WriteFile(ctx context.Context, req schema.WriteFileRequest) error
	CreateFile(ctx context.Context, req schema.CreateFileRequest) error
	CreateDirectory(ctx context.Context, req schema.CreateDirectoryRequest) error
	DeletePath(ctx context.Context, req schema.DeletePathRequest) error
	RenamePath(ctx context.Context, req schema.RenamePathRequest) error
	ProjectFiles(ctx context.Context, req schema.ProjectFilesRequest) (schema.ProjectFilesResponse, error)

	ExecuteCommand(ctx context.Context, req schema.ExecuteCommandRequest) (schema.ExecuteCommandResponse, error)
	ResizeTerminal(ctx context.Context, req schema.ResizeTerminalRequest) error

	RepoStatus(ctx context.Context) (schema.RepoStatusResponse, error)
	Commit(ctx context.Context, req schema.CommitRequest) error
	Push(ctx context.Context, req schema.PushRequest) error
	Pull(ctx context.Context, req schema.PullRequest) error
	Diff(ctx context.Context, req schema.DiffRequest) (schema.DiffResponse, error)

	Chat(ctx context.Context, req schema.ChatRequest) (schema.AIResponse, error)
	Refactor(ctx context.Context, req schema.RefactorRequest) (schema.AIResponse, error)
	GenerateTests(ctx context.Context, req schema.GenerateTestsRequest) (schema.AIResponse, error)
}
