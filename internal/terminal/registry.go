// Package terminal implements the workspace-scoped command sandbox: a
// registry of named sessions carrying working directory and environment,
// and an executor with shell builtins, a deny-list, and a wall-clock
// timeout. Command failures are always folded into a CommandResult so
// the calling UI gets a displayable outcome rather than an error.
package terminal

import (
	"os"
	"sync"

	"github.com/RyomenPanda/PandaCode/schema"
)

// Session is one terminal execution context. It lives for the process
// lifetime; there is no eviction. All fields are guarded by the owning
// registry's mutex.
type Session struct {
	Cwd  string
	Env  []string
	Rows int
	Cols int
}

// Info is a read-only snapshot of a session.
type Info struct {
	Cwd  string `json:"cwd"`
	Rows int    `json:"rows,omitempty"`
	Cols int    `json:"cols,omitempty"`
}

// Registry maps session identifiers to session state. Sessions are
// created lazily on first reference. The mutex guards the map and the
// fields of every session it holds, because the HTTP surface brings
// concurrent callers to the same session.
type Registry struct {
	root     string
	mu       sync.Mutex
	sessions map[schema.SessionID]*Session
}

// NewRegistry constructs a registry rooted at the workspace directory.
func NewRegistry(root string) *Registry {
	return &Registry{
		root:     root,
		sessions: make(map[schema.SessionID]*Session),
	}
}

// sessionLocked returns the named session, materializing it if unseen.
// The environment is copied from the process at creation. Callers must
// hold r.mu.
func (r *Registry) sessionLocked(id schema.SessionID) *Session {
	if id == "" {
		id = schema.DefaultSessionID
	}
	if sess, ok := r.sessions[id]; ok {
		return sess
	}
	sess := &Session{
		Cwd: r.root,
		Env: os.Environ(),
	}
	r.sessions[id] = sess
	return sess
}

// execState snapshots a session's working directory and environment for
// one command execution.
func (r *Registry) execState(id schema.SessionID) (cwd string, env []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess := r.sessionLocked(id)
	env = make([]string, len(sess.Env))
	copy(env, sess.Env)
	return sess.Cwd, env
}

// setCwd records a new working directory for a session.
func (r *Registry) setCwd(id schema.SessionID, cwd string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessionLocked(id).Cwd = cwd
}

// Resize records terminal geometry for a session. Purely informational;
// no pseudo-terminal backs the sandbox, so geometry does not affect
// command execution.
func (r *Registry) Resize(id schema.SessionID, rows, cols int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess := r.sessionLocked(id)
	sess.Rows = rows
	sess.Cols = cols
}

// SessionInfo returns a snapshot of the named session, creating it if
// needed.
func (r *Registry) SessionInfo(id schema.SessionID) Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess := r.sessionLocked(id)
	return Info{Cwd: sess.Cwd, Rows: sess.Rows, Cols: sess.Cols}
}
