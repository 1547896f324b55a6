package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Current data format version for migration support.
const dataVersion = 1

// fileData is the on-disk shape of a File store.
type fileData struct {
	Version int                        `json:"version"`
	Entries map[string]json.RawMessage `json:"entries"`
}

// File is a KeyValue implementation persisted as a single JSON file.
// Every Set rewrites the file atomically (temp file + rename), so a
// crash never exposes a partial write.
type File struct {
	path string
	mu   sync.RWMutex
	data *fileData
}

// NewFile creates a file-backed store at path, loading existing data
// if the file is present. Parent directories are created on first
// write.
func NewFile(path string) (*File, error) {
	f := &File{
		path: path,
		data: &fileData{Version: dataVersion, Entries: make(map[string]json.RawMessage)},
	}
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(raw) == 0 {
		return f, nil
	}
	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse store file %s: %w", path, err)
	}
	if data.Entries == nil {
		data.Entries = make(map[string]json.RawMessage)
	}
	f.data = &data
	return f, nil
}

// Get retrieves the value stored under key.
func (f *File) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data.Entries[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores or replaces the value under key and saves to disk.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for key %q is not valid JSON", key)
	}
	v := make(json.RawMessage, len(value))
	copy(v, value)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data.Entries[key] = v
	return f.save()
}

// Delete removes a key and saves to disk.
func (f *File) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data.Entries[key]; !ok {
		return nil
	}
	delete(f.data.Entries, key)
	return f.save()
}

// save writes the store to disk. Caller must hold the write lock.
func (f *File) save() error {
	data, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store data: %w", err)
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".store-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write store data: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}

var _ KeyValue = (*File)(nil)
