package order

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps each saved order as one JSON file in a state directory,
// the local key-value store for this app.
type FileStore struct {
	dir string
}

// NewFileStore creates the state directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Save(key string, items map[string]int) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode order: %w", err)
	}
	if err := os.WriteFile(s.path(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write order file: %w", err)
	}
	return nil
}

func (s *FileStore) Load(key string) (map[string]int, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read order file: %w", err)
	}
	var items map[string]int
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode saved order: %w", err)
	}
	return items, nil
}

func (s *FileStore) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove order file: %w", err)
	}
	return nil
}
