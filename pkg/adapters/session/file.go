package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/ramysh/linkylink/pkg/core/domain"
)

// fileSession is the on-disk shape: the same two fixed keys the browser
// store uses.
type fileSession struct {
	Token string              `json:"linkylink_token"`
	User  *domain.SessionUser `json:"linkylink_user"`
}

// FileStore keeps the CLI session in a single JSON file. Same contract as
// the cookie store: both entries or nothing, corrupt file reads as no
// session.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath is where linkctl keeps its session.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "linkylink", "session.json"), nil
}

// Load reads the stored session. Absent or corrupt storage yields nil.
func (s *FileStore) Load() *domain.Session {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var stored fileSession
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil
	}
	if stored.Token == "" || stored.User == nil || stored.User.Username == "" || !stored.User.Role.Valid() {
		return nil
	}
	return &domain.Session{User: *stored.User, Credential: stored.Token}
}

// Login writes both entries in one atomic file write.
func (s *FileStore) Login(credential string, user domain.SessionUser) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(fileSession{Token: credential, User: &user}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Logout removes the file; a missing file is already logged out.
func (s *FileStore) Logout() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
