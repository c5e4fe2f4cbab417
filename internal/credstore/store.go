// Package credstore persists the AI provider credential across
// restarts as a small JSON object, the file the settings dialog edits.
package credstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"pkt.systems/pslog"
)

// Credentials is the persisted settings payload.
type Credentials struct {
	GeminiAPIKey string `json:"gemini_api_key"`
}

// Store reads and writes the credentials file.
type Store struct {
	path string
	log  pslog.Logger
}

// NewStore constructs a store at the given file path.
func NewStore(path string) (*Store, error) {
	return NewStoreWithLogger(path, nil)
}

// NewStoreWithLogger constructs a store with logging.
func NewStoreWithLogger(path string, logger pslog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("credentials path is required")
	}
	if logger != nil {
		logger = logger.With("credentials_path", path)
	}
	return &Store{path: path, log: logger}, nil
}

// Load reads the credentials. A missing file is not an error; the
// second return reports whether anything was found.
func (s *Store) Load() (Credentials, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if s.log != nil {
				s.log.Debug("credentials load miss")
			}
			return Credentials{}, false, nil
		}
		if s.log != nil {
			s.log.Warn("credentials load failed", "err", err)
		}
		return Credentials{}, false, err
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		if s.log != nil {
			s.log.Warn("credentials load failed", "err", err)
		}
		return Credentials{}, false, err
	}
	return creds, true, nil
}

// Save writes the credentials with owner-only permissions.
func (s *Store) Save(creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(creds, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		if s.log != nil {
			s.log.Warn("credentials save failed", "err", err)
		}
		return err
	}
	if s.log != nil {
		s.log.Debug("credentials saved")
	}
	return nil
}
