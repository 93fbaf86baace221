package kvstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Storage is the browser-storage analogue used by local-mode auth: a flat
// string key/value space. Reads fail open (a missing or unreadable key is
// simply absent); writes fail closed.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string)
}

// DirStorage persists each key as a file in a directory. It is the
// localStorage analogue: values survive process restarts.
type DirStorage struct {
	mu  sync.Mutex
	dir string
}

func NewDirStorage(dir string) (*DirStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: %w", err)
	}
	return &DirStorage{dir: dir}, nil
}

func (s *DirStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *DirStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(raw), true
}

func (s *DirStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.path(key), []byte(value), 0o644); err != nil {
		return fmt.Errorf("kvstore: %w", err)
	}
	return nil
}

func (s *DirStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	os.Remove(s.path(key))
}

// MemStorage holds values in memory only. It is the sessionStorage
// analogue: values are scoped to the process lifetime.
type MemStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemStorage() *MemStorage {
	return &MemStorage{values: make(map[string]string)}
}

func (s *MemStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStorage) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemStorage) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}
