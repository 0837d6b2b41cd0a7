package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"skyfare/internal/domain/repository"
)

// FileKVRepository keeps every key in one JSON document on disk.
// Every call re-reads the document, so writes made through other handles
// or processes are kept; mutations rewrite it atomically.
type FileKVRepository struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// NewFileKVRepository creates a file-backed key/value repository
func NewFileKVRepository(path string) repository.KeyValueRepository {
	return &FileKVRepository{
		path: path,
	}
}

// Get returns the stored value or nil when absent
func (r *FileKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return nil, err
	}
	value, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return []byte(value), nil
}

// Set stores value under key
func (r *FileKVRepository) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return err
	}
	r.values[key] = string(value)
	return r.flush()
}

// Delete removes key; deleting an absent key is not an error
func (r *FileKVRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return err
	}
	if _, existed := r.values[key]; !existed {
		return nil
	}
	delete(r.values, key)
	return r.flush()
}

// load replaces the in-memory copy with the current file contents;
// callers hold the lock
func (r *FileKVRepository) load() error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		r.values = make(map[string]string)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read storage file: %w", err)
	}

	values := make(map[string]string)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("failed to decode storage file: %w", err)
		}
	}

	r.values = values
	return nil
}

func (r *FileKVRepository) flush() error {
	data, err := json.MarshalIndent(r.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	return atomicWriteFile(r.path, data, 0o600)
}

// atomicWriteFile writes data to a temporary file and then renames it to the
// target path so a crash mid-write never leaves a truncated file behind.
func atomicWriteFile(path string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()

	if err = os.Chmod(tmpPath, perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set temp file permissions: %w", err)
	}

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
