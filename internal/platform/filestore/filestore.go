package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"telco_dash/internal/domain/model"
)

// Data is the whole persisted collection. The file is read and rewritten
// in full on every mutation.
type Data struct {
	Users []model.User `json:"users"`
}

// Store is a whole-file JSON record store. An in-process mutex serializes
// load-modify-save cycles; the store is not safe for concurrent
// multi-process writers to the same file.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the full collection. A missing or unreadable file is treated
// as an empty collection: the demo deliberately fails open to "no users
// yet" on read.
func (s *Store) Load() *Data {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return &Data{}
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return &Data{}
	}
	return &data
}

// Save rewrites the full collection. Write failures propagate to the
// caller; a dropped mutation must never be silent. The write goes through
// a temp file and rename so a crash mid-write cannot truncate the store.
func (s *Store) Save(data *Data) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("filestore.Save: marshal: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".data-*.json")
	if err != nil {
		return fmt.Errorf("filestore.Save: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("filestore.Save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("filestore.Save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("filestore.Save: %w", err)
	}
	return nil
}

// Update runs one load-modify-save cycle under the store lock.
func (s *Store) Update(fn func(*Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.Load()
	if err := fn(data); err != nil {
		return err
	}
	return s.Save(data)
}

// View runs a read-only function over the current collection under the
// store lock. It never writes, so there is nothing to fail: reads of a
// missing or broken file already degrade to the empty collection.
func (s *Store) View(fn func(*Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.Load())
}
