package client

import (
	"encoding/json"
	"errors"
	"os"
	"sync"
)

// SessionStore is the single source of truth for the bearer token and the
// denormalized user record. The client writes it on sign-in and wipes it
// on sign-out or whenever the server answers 401.
type SessionStore interface {
	Load() (token string, user *User, err error)
	Save(token string, user *User) error
	Clear() error
}

// MemorySession keeps the session in process memory.
type MemorySession struct {
	mu    sync.Mutex
	token string
	user  *User
}

func NewMemorySession() *MemorySession { return &MemorySession{} }

func (s *MemorySession) Load() (string, *User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.user, nil
}

func (s *MemorySession) Save(token string, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = token, user
	return nil
}

func (s *MemorySession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	return nil
}

// FileSession persists the session as a JSON file, the CLI analogue of
// the browser's local storage.
type FileSession struct {
	mu   sync.Mutex
	path string
}

func NewFileSession(path string) *FileSession { return &FileSession{path: path} }

type sessionFile struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

func (s *FileSession) Load() (string, *User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	var f sessionFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return "", nil, err
	}
	return f.Token, f.User, nil
}

func (s *FileSession) Save(token string, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(sessionFile{Token: token, User: user})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func (s *FileSession) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
