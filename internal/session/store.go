package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the session file inside the config directory.
const FileName = "session.json"

const maskedPrefix = 8

// State is the persisted login.
type State struct {
	Token      string    `json:"token"`
	Username   string    `json:"username"`
	BaseURL    string    `json:"base_url,omitempty"`
	LoggedInAt time.Time `json:"logged_in_at"`
}

// Empty reports whether no one is logged in.
func (s State) Empty() bool { return s.Token == "" }

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore returns a Store for dir/session.json.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, FileName)}
}

// Path returns the session file path.
func (s *Store) Path() string { return s.path }

// Load reads the saved state. A missing file is an empty state.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("reading session file: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parsing session file %s: %w", s.path, err)
	}
	return st, nil
}

// Save writes st with owner-only permissions.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session file: %w", err)
	}
	return nil
}

// Clear removes the session file.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// MaskToken keeps the first characters of token and stars out the rest.
func MaskToken(token string) string {
	if len(token) <= maskedPrefix {
		return token
	}
	return token[:maskedPrefix] + strings.Repeat("*", len(token)-maskedPrefix)
}
