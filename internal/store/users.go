package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dashab/portumem/internal/models"
)

// ErrUsernameExists is returned by UserStore.Create for a duplicate username.
var ErrUsernameExists = errors.New("username already exists")

type userFile struct {
	Users map[string]models.Credential `json:"users"`
}

// UserStore persists credentials in a single JSON file. Writes go through a
// temp file plus rename so a concurrent reader never sees a partial file,
// and a mutex serializes read-modify-write cycles.
type UserStore struct {
	path string
	mu   sync.Mutex
}

func NewUserStore(path string) *UserStore {
	return &UserStore{path: path}
}

// Create adds a credential record, enforcing username uniqueness.
func (s *UserStore) Create(username string, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	if _, exists := data.Users[username]; exists {
		return ErrUsernameExists
	}
	data.Users[username] = cred
	return s.save(data)
}

// Get returns the credential record for a username, or nil if absent.
func (s *UserStore) Get(username string) (*models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.load()
	cred, ok := data.Users[username]
	if !ok {
		return nil, nil
	}
	return &cred, nil
}

// load falls back to an empty map when the file is missing or unparsable.
func (s *UserStore) load() userFile {
	data := userFile{Users: map[string]models.Credential{}}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return data
	}
	if err := json.Unmarshal(raw, &data); err != nil || data.Users == nil {
		return userFile{Users: map[string]models.Credential{}}
	}
	return data
}

func (s *UserStore) save(data userFile) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	return atomicWrite(s.path, raw)
}

// atomicWrite writes to a temp file in the target directory and renames it
// into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
