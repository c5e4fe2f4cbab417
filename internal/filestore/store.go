// Package filestore provides workspace-confined file operations for the
// editor: listing, CRUD, language detection, and the project file walk
// used to build assistant context.
package filestore

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"pkt.systems/pslog"

	"github.com/RyomenPanda/PandaCode/internal/pathguard"
	"github.com/RyomenPanda/PandaCode/schema"
)

// Store performs file operations inside the workspace. Every path is
// routed through the guard before it touches the filesystem.
type Store struct {
	guard *pathguard.Guard
	log   pslog.Logger
}

// New constructs a store over the given guard.
func New(guard *pathguard.Guard) *Store {
	return NewWithLogger(guard, nil)
}

// NewWithLogger constructs a store with logging.
func NewWithLogger(guard *pathguard.Guard, logger pslog.Logger) *Store {
	if logger != nil {
		logger = logger.With("workspace", guard.Root())
	}
	return &Store{guard: guard, log: logger}
}

// Root returns the absolute workspace root.
func (s *Store) Root() string {
	return s.guard.Root()
}

// List returns the entries of a directory, alphabetically sorted.
// Hidden entries are skipped except .git and .gitignore. A missing
// directory yields an empty listing, not an error.
func (s *Store) List(relPath string) ([]schema.FileEntry, error) {
	full, err := s.guard.Resolve(relPath)
	if err != nil {
		return nil, err
	}
	dirEntries, err := os.ReadDir(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []schema.FileEntry{}, nil
		}
		return nil, err
	}
	entries := make([]schema.FileEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if strings.HasPrefix(name, ".") && name != ".git" && name != ".gitignore" {
			continue
		}
		info, err := de.Info()
		if err != nil {
			if s.log != nil {
				s.log.Warn("stat failed during list", "name", name, "err", err)
			}
			continue
		}
		rel, err := s.guard.Rel(filepath.Join(full, name))
		if err != nil {
			continue
		}
		entry := schema.FileEntry{
			Name:    name,
			Path:    rel,
			IsDir:   de.IsDir(),
			ModTime: info.ModTime(),
		}
		if !de.IsDir() {
			size := info.Size()
			entry.Size = &size
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Read returns the text content of a file. Image files are refused;
// invalid UTF-8 byte sequences are dropped rather than failing.
func (s *Store) Read(relPath string) (string, error) {
	full, err := s.guard.Resolve(relPath)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", schema.ErrNotFound, relPath)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", schema.ErrIsDirectory, relPath)
	}
	if mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(full))); strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%w: %s", schema.ErrBinaryFile, relPath)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return text, nil
}

// Write stores text content, creating parent directories as needed and
// overwriting unconditionally.
func (s *Store) Write(relPath, content string) error {
	full, err := s.guard.Resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return err
	}
	if s.log != nil {
		s.log.Debug("file written", "path", relPath, "bytes", len(content))
	}
	return nil
}

// Create makes a new empty file, failing if the path already exists.
func (s *Store) Create(relPath string) error {
	full, err := s.guard.Resolve(relPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(full); err == nil {
		return fmt.Errorf("%w: %s", schema.ErrAlreadyExists, relPath)
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, nil, 0o644)
}

// Mkdir makes a new directory, failing if the path already exists.
func (s *Store) Mkdir(relPath string) error {
	full, err := s.guard.Resolve(relPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(full); err == nil {
		return fmt.Errorf("%w: %s", schema.ErrAlreadyExists, relPath)
	}
	return os.MkdirAll(full, 0o755)
}

// Delete removes a file, or a directory tree recursively.
func (s *Store) Delete(relPath string) error {
	full, err := s.guard.Resolve(relPath)
	if err != nil {
		return err
	}
	info, err := os.Stat(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", schema.ErrNotFound, relPath)
		}
		return err
	}
	if s.log != nil {
		s.log.Debug("deleting path", "path", relPath, "dir", info.IsDir())
	}
	if info.IsDir() {
		return os.RemoveAll(full)
	}
	return os.Remove(full)
}

// Rename moves a file or directory, creating destination parents.
func (s *Store) Rename(oldPath, newPath string) error {
	oldFull, err := s.guard.Resolve(oldPath)
	if err != nil {
		return err
	}
	newFull, err := s.guard.Resolve(newPath)
	if err != nil {
		return err
	}
	if _, err := os.Stat(oldFull); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", schema.ErrNotFound, oldPath)
		}
		return err
	}
	if _, err := os.Stat(newFull); err == nil {
		return fmt.Errorf("%w: %s", schema.ErrAlreadyExists, newPath)
	}
	if err := os.MkdirAll(filepath.Dir(newFull), 0o755); err != nil {
		return err
	}
	return os.Rename(oldFull, newFull)
}

// ProjectFiles walks the workspace and returns up to max relative file
// paths. Hidden directories are skipped except .git; hidden files are
// skipped. Order is the lexical walk order, so it is deterministic for
// an unchanged tree.
func (s *Store) ProjectFiles(max int) ([]string, error) {
	if max <= 0 {
		max = 100
	}
	root := s.guard.Root()
	files := make([]string, 0, max)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") && name != ".git" {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		files = append(files, rel)
		if len(files) >= max {
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		if s.log != nil {
			s.log.Warn("project file walk failed", "err", err)
		}
		return nil, err
	}
	return files, nil
}
