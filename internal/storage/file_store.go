package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore keeps every key in a single JSON object on disk. Writes go
// through a temp file and rename so a crash never leaves a torn document.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("storage: state file path is required")
	}
	return &FileStore{path: trimmed}, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	doc, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := doc[key]
	return value, ok, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	doc, err := s.load()
	if err != nil {
		// A corrupt document is replaced rather than blocking every write.
		doc = make(map[string]string)
	}
	doc[key] = value
	return s.write(doc)
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := doc[key]; !ok {
		return ErrNotFound
	}
	delete(doc, key)
	return s.write(doc)
}

func (s *FileStore) load() (map[string]string, error) {
	out := make(map[string]string)
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode state file %s: %w", s.path, err)
	}
	return out, nil
}

func (s *FileStore) write(doc map[string]string) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
