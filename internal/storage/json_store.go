package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// fileStore is the on-disk layout of a JSONStore. Values are kept as strings
// so that one unreadable blob never prevents reading the others.
type fileStore struct {
	Version int               `json:"version"`
	Blobs   map[string]string `json:"blobs"`
}

// JSONStore keeps every blob in a single JSON file
type JSONStore struct {
	path  string
	store *fileStore
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.store = &fileStore{
		Version: 1,
		Blobs:   make(map[string]string),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'dayly init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	store := &fileStore{}
	if err := json.Unmarshal(data, store); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if store.Blobs == nil {
		store.Blobs = make(map[string]string)
	}
	s.store = store
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	// Write to a sibling file first so a crash never leaves a half-written store
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	v, ok := s.store.Blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	if s.store == nil {
		return ErrNotLoaded
	}
	s.store.Blobs[key] = string(value)
	return s.save()
}

func (s *JSONStore) Keys() ([]string, error) {
	if s.store == nil {
		return nil, ErrNotLoaded
	}
	keys := make([]string, 0, len(s.store.Blobs))
	for k := range s.store.Blobs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
