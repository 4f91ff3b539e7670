package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileName = "storage.json"

// Store is a file-based implementation of domain.ClientStorage. All keys live
// in a single JSON object under dir.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates a store rooted at dir. Nothing is written until the first Set.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Get returns the value stored under key. A missing file or key is not an error.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set writes value under key, creating directories as needed.
func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating storage dir: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	// Write then rename so readers never observe a partial file.
	tmp := s.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing storage: %w", err)
	}
	return os.Rename(tmp, s.Path())
}

func (s *Store) load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading storage: %w", err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.Path(), err)
	}
	return values, nil
}
