// Package pathguard confines relative paths to a fixed workspace root.
//
// Containment is checked on the cleaned path text via filepath.Rel, so a
// sibling directory whose name merely extends the root's name does not
// pass. Symlinks are not resolved; this is a textual check, not a
// realpath jail.
package pathguard

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/RyomenPanda/PandaCode/schema"
)

// Guard resolves user-supplied paths against a workspace root.
type Guard struct {
	root string
}

// New constructs a guard for the given root. The root is made absolute
// once at construction; it is the invariant prefix of every resolved path.
func New(root string) (*Guard, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("workspace root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	return &Guard{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute workspace root.
func (g *Guard) Root() string {
	return g.root
}

// Resolve maps a workspace-relative path to an absolute one. An empty
// path resolves to the root itself. Paths that normalize outside the
// root fail with schema.ErrPathEscape.
func (g *Guard) Resolve(rel string) (string, error) {
	if strings.TrimSpace(rel) == "" {
		return g.root, nil
	}
	full := filepath.Clean(filepath.Join(g.root, rel))
	if err := g.Contains(full); err != nil {
		return "", err
	}
	return full, nil
}

// Contains reports whether an absolute path stays inside the root.
// Used directly by the cd builtin so both checks share one normalization.
func (g *Guard) Contains(abs string) error {
	rel, err := filepath.Rel(g.root, filepath.Clean(abs))
	if err != nil {
		return schema.ErrPathEscape
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return schema.ErrPathEscape
	}
	return nil
}

// Rel converts an absolute path back to its workspace-relative form.
func (g *Guard) Rel(abs string) (string, error) {
	if err := g.Contains(abs); err != nil {
		return "", err
	}
	return filepath.Rel(g.root, filepath.Clean(abs))
}
