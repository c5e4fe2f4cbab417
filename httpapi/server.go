// Package httpapi exposes the core service as a JSON HTTP API. This is
// the surface the desktop editor shell consumes; it has no UI of its
// own.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"pkt.systems/pslog"

	"github.com/RyomenPanda/PandaCode/core"
	"github.com/RyomenPanda/PandaCode/schema"
)

// Server serves the HTTP API.
type Server struct {
	service core.Service
}

// NewServer constructs an HTTP server over the core service.
func NewServer(service core.Service) *Server {
	return &Server{service: service}
}

// Handler returns an http.Handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/files", s.handleListFiles)
	mux.HandleFunc("GET /api/file", s.handleReadFile)
	mux.HandleFunc("PUT /api/file", s.handleWriteFile)
	mux.HandleFunc("DELETE /api/file", s.handleDeletePath)
	mux.HandleFunc("POST /api/file/create", s.handleCreateFile)
	mux.HandleFunc("POST /api/file/rename", s.handleRenamePath)
	mux.HandleFunc("POST /api/directory", s.handleCreateDirectory)
	mux.HandleFunc("GET /api/project/files", s.handleProjectFiles)

	mux.HandleFunc("POST /api/terminal/session", s.handleNewSession)
	mux.HandleFunc("POST /api/terminal/execute", s.handleExecute)
	mux.HandleFunc("POST /api/terminal/resize", s.handleResize)

	mux.HandleFunc("GET /api/git/status", s.handleGitStatus)
	mux.HandleFunc("POST /api/git/commit", s.handleGitCommit)
	mux.HandleFunc("POST /api/git/push", s.handleGitPush)
	mux.HandleFunc("POST /api/git/pull", s.handleGitPull)
	mux.HandleFunc("GET /api/git/diff", s.handleGitDiff)

	mux.HandleFunc("POST /api/ai/chat", s.handleChat)
	mux.HandleFunc("POST /api/ai/refactor", s.handleRefactor)
	mux.HandleFunc("POST /api/ai/tests", s.handleGenerateTests)

	return withRequestLogging(mux)
}

func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.ListFiles(r.Context(), schema.ListFilesRequest{Path: r.URL.Query().Get("path")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReadFile(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.ReadFile(r.Context(), schema.ReadFileRequest{Path: r.URL.Query().Get("path")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWriteFile(w http.ResponseWriter, r *http.Request) {
	var req schema.WriteFileRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.service.WriteFile(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleCreateFile(w http.ResponseWriter, r *http.Request) {
	var req schema.CreateFileRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.service.CreateFile(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleCreateDirectory(w http.ResponseWriter, r *http.Request) {
	var req schema.CreateDirectoryRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.service.CreateDirectory(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleDeletePath(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeletePath(r.Context(), schema.DeletePathRequest{Path: r.URL.Query().Get("path")}); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleRenamePath(w http.ResponseWriter, r *http.Request) {
	var req schema.RenamePathRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.service.RenamePath(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleProjectFiles(w http.ResponseWriter, r *http.Request) {
	max, _ := strconv.Atoi(r.URL.Query().Get("max"))
	resp, err := s.service.ProjectFiles(r.Context(), schema.ProjectFilesRequest{MaxFiles: max})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"session_id": uuid.NewString()})
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req schema.ExecuteCommandRequest
	if !readJSON(w, r, &req) {
		return
	}
	// Command failures ride inside the result; HTTP errors are reserved
	// for transport problems.
	resp, err := s.service.ExecuteCommand(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Result)
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req schema.ResizeTerminalRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.service.ResizeTerminal(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleGitStatus(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.RepoStatus(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp.Status)
}

func (s *Server) handleGitCommit(w http.ResponseWriter, r *http.Request) {
	var req schema.CommitRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.service.Commit(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleGitPush(w http.ResponseWriter, r *http.Request) {
	var req schema.PushRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.service.Push(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleGitPull(w http.ResponseWriter, r *http.Request) {
	var req schema.PullRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.service.Pull(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	writeOK(w)
}

func (s *Server) handleGitDiff(w http.ResponseWriter, r *http.Request) {
	resp, err := s.service.Diff(r.Context(), schema.DiffRequest{Path: r.URL.Query().Get("path")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req schema.ChatRequest
	if !readJSON(w, r, &req) {
		return
	}
	resp, err := s.service.Chat(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRefactor(w http.ResponseWriter, r *http.Request) {
	var req schema.RefactorRequest
	if !readJSON(w, r, &req) {
		return
	}
	resp, err := s.service.Refactor(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGenerateTests(w http.ResponseWriter, r *http.Request) {
	var req schema.GenerateTestsRequest
	if !readJSON(w, r, &req) {
		return
	}
	resp, err := s.service.GenerateTests(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 10<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("request too large"))
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON payload"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// writeError maps service sentinel errors onto HTTP statuses. The
// diagnostic text is passed through for the UI to display.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, schema.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, schema.ErrAlreadyExists), errors.Is(err, schema.ErrNothingToCommit):
		status = http.StatusConflict
	case errors.Is(err, schema.ErrPathEscape):
		status = http.StatusForbidden
	case errors.Is(err, schema.ErrIsDirectory), errors.Is(err, schema.ErrBinaryFile), errors.Is(err, schema.ErrNotARepository):
		status = http.StatusBadRequest
	case errors.Is(err, schema.ErrCommitFailed), errors.Is(err, schema.ErrPushFailed), errors.Is(err, schema.ErrPullFailed):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		pslog.Ctx(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody(err.Error()))
}
