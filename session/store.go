// File: travelgo/session/store.go
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CredentialStore persists the one piece of durable client state: the
// bearer credential, a single string under a fixed path.
type CredentialStore struct {
	path string
}

// NewCredentialStore builds a store at the given path; an empty path
// falls back to ~/.travelgo/access-token.
func NewCredentialStore(path string) (*CredentialStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve credential path: %w", err)
		}
		path = filepath.Join(home, ".travelgo", "access-token")
	}
	return &CredentialStore{path: path}, nil
}

// Read returns the persisted credential, or "" when none exists.
func (s *CredentialStore) Read() (string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}

// Write persists the credential, creating the parent directory on first use.
func (s *CredentialStore) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}

// Remove deletes the persisted credential. Absence is not an error.
func (s *CredentialStore) Remove() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credential: %w", err)
	}
	return nil
}
