// Package core wires the workspace subsystems into one service behind
// a transport-agnostic API.
package core

import (
	"context"
	"errors"
	"os"
	"time"

	"pkt.systems/pslog"

	"github.com/RyomenPanda/PandaCode/internal/ai"
	"github.com/RyomenPanda/PandaCode/internal/filestore"
	"github.com/RyomenPanda/PandaCode/internal/git"
	"github.com/RyomenPanda/PandaCode/internal/logx"
	"github.com/RyomenPanda/PandaCode/internal/pathguard"
	"github.com/RyomenPanda/PandaCode/internal/terminal"
	"github.com/RyomenPanda/PandaCode/schema"
)

// Config controls service construction.
type Config struct {
	WorkspaceRoot  string
	CommandTimeout time.Duration
}

// Deps carries optional collaborators.
type Deps struct {
	Assistant *ai.Assistant
	Logger    pslog.Logger
}

// service implements the core service behavior.
type service struct {
	guard     *pathguard.Guard
	store     *filestore.Store
	sandbox   *terminal.Sandbox
	repo      *git.Repo
	assistant *ai.Assistant
	logger    pslog.Logger
}

// NewService constructs the core service implementation. The workspace
// directory is created when absent.
func NewService(cfg Config, deps Deps) (Service, error) {
	if cfg.WorkspaceRoot == "" {
		return nil, errors.New("workspace root is required")
	}
	if err := os.MkdirAll(cfg.WorkspaceRoot, 0o755); err != nil {
		return nil, err
	}
	guard, err := pathguard.New(cfg.WorkspaceRoot)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	logger = logx.WithWorkspace(logger, guard.Root())
	registry := terminal.NewRegistry(guard.Root())
	return &service{
		guard:     guard,
		store:     filestore.NewWithLogger(guard, deps.Logger),
		sandbox:   terminal.NewSandbox(guard, registry, cfg.CommandTimeout, deps.Logger),
		repo:      git.NewRepo(guard.Root()),
		assistant: deps.Assistant,
		logger:    logger,
	}, nil
}

func (s *service) ListFiles(ctx context.Context, req schema.ListFilesRequest) (schema.ListFilesResponse, error) {
	entries, err := s.store.List(req.Path)
	if err != nil {
		logx.Ctx(ctx).Warn("list files failed", "path", req.Path, "err", err)
		return schema.ListFilesResponse{}, err
	}
	return schema.ListFilesResponse{Entries: entries}, nil
}

func (s *service) ReadFile(ctx context.Context, req schema.ReadFileRequest) (schema.ReadFileResponse, error) {
	content, err := s.store.Read(req.Path)
	if err != nil {
		logx.Ctx(ctx).Warn("read file failed", "path", req.Path, "err", err)
		return schema.ReadFileResponse{}, err
	}
	return schema.ReadFileResponse{
		Content:  content,
		Language: filestore.DetectLanguage(req.Path),
	}, nil
}

func (s *service) WriteFile(ctx context.Context, req schema.WriteFileRequest) error {
	return s.store.Write(req.Path, req.Content)
}

func (s *service) CreateFile(ctx context.Context, req schema.CreateFileRequest) error {
	return s.store.Create(req.Path)
}

func (s *service) CreateDirectory(ctx context.Context, req schema.CreateDirectoryRequest) error {
	return s.store.Mkdir(req.Path)
}

func (s *service) DeletePath(ctx context.Context, req schema.DeletePathRequest) error {
	return s.store.Delete(req.Path)
}

func (s *service) RenamePath(ctx context.Context, req schema.RenamePathRequest) error {
	return s.store.Rename(req.OldPath, req.NewPath)
}

func (s *service) ProjectFiles(ctx context.Context, req schema.ProjectFilesRequest) (schema.ProjectFilesResponse, error) {
	paths, err := s.store.ProjectFiles(req.MaxFiles)
	if err != nil {
		return schema.ProjectFilesResponse{}, err
	}
	return schema.ProjectFilesResponse{Paths: paths}, nil
}

func (s *service) ExecuteCommand(ctx context.Context, req schema.ExecuteCommandRequest) (schema.ExecuteCommandResponse, error) {
	log := logx.WithSession(ctx, req.SessionID)
	ctx = logx.ContextWithSessionLogger(ctx, log, req.SessionID)
	result := s.sandbox.Execute(ctx, req.SessionID, req.Command)
	if result.ExitCode != schema.ExitOK {
		log.Debug("command finished", "exit_code", result.ExitCode)
	}
	return schema.ExecuteCommandResponse{Result: result}, nil
}

func (s *service) ResizeTerminal(ctx context.Context, req schema.ResizeTerminalRequest) error {
	s.sandbox.Registry().Resize(req.SessionID, req.Rows, req.Cols)
	return nil
}

func (s *service) RepoStatus(ctx context.Context) (schema.RepoStatusResponse, error) {
	status, err := s.repo.Status(ctx)
	if err != nil {
		return schema.RepoStatusResponse{}, err
	}
	return schema.RepoStatusResponse{Status: status}, nil
}

func (s *service) Commit(ctx context.Context, req schema.CommitRequest) error {
	return s.repo.Commit(ctx, req.Message, req.Files)
}

func (s *service) Push(ctx context.Context, req schema.PushRequest) error {
	return s.repo.Push(ctx, req.Remote, req.Branch)
}

func (s *service) Pull(ctx context.Context, req schema.PullRequest) error {
	return s.repo.Pull(ctx, req.Remote, req.Branch)
}

func (s *service) Diff(ctx context.Context, req schema.DiffRequest) (schema.DiffResponse, error) {
	diff, err := s.repo.Diff(ctx, req.Path)
	if err != nil {
		return schema.DiffResponse{}, err
	}
	return schema.DiffResponse{Diff: diff}, nil
}

func (s *service) Chat(ctx context.Context, req schema.ChatRequest) (schema.AIResponse, error) {
	return s.assistantResponse(ctx, func(a *ai.Assistant) schema.AIResponse {
		return a.Chat(ctx, req.Message, req.Context)
	})
}

func (s *service) Refactor(ctx context.Context, req schema.RefactorRequest) (schema.AIResponse, error) {
	return s.assistantResponse(ctx, func(a *ai.Assistant) schema.AIResponse {
		return a.Refactor(ctx, req.Code, req.Language, req.Instruction)
	})
}

func (s *service) GenerateTests(ctx context.Context, req schema.GenerateTestsRequest) (schema.AIResponse, error) {
	return s.assistantResponse(ctx, func(a *ai.Assistant) schema.AIResponse {
		return a.GenerateTests(ctx, req.Code, req.Language)
	})
}

// assistantResponse delegates to the assistant, which degrades to an
// unavailable response when no credential is configured (nil receiver
// included).
func (s *service) assistantResponse(ctx context.Context, call func(*ai.Assistant) schema.AIResponse) (schema.AIResponse, error) {
	return call(s.assistant), nil
}
