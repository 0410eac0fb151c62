package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FileStore persists all keys as one JSON object on disk. Writes re-read the
// file first so keys written by another process survive; for the same key
// the last writer wins.
type FileStore struct {
	path string

	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// OpenFileStore loads path if it exists. A missing or unreadable document is
// treated as an empty store.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	fs := &FileStore{
		path: path,
		data: make(map[string]json.RawMessage),
	}
	fs.mu.Lock()
	fs.reloadLocked()
	fs.mu.Unlock()

	return fs, nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(key string) ([]byte, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	raw, ok := f.data[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), raw...), true
}

func (f *FileStore) Save(key string, raw []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reloadLocked()
	f.data[key] = append(json.RawMessage(nil), raw...)
	return f.flushLocked()
}

func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reloadLocked()
	if _, ok := f.data[key]; !ok {
		return nil
	}
	delete(f.data, key)
	return f.flushLocked()
}

// Reload re-reads the document from disk.
func (f *FileStore) Reload() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloadLocked()
}

// Watch reloads the store whenever the file is replaced or rewritten by
// anyone, including other client processes, and calls onChange afterwards.
// It blocks until ctx is cancelled.
func (f *FileStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// The file is replaced by rename on every write, so watch the directory.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(f.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			f.Reload()
			if onChange != nil {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher: %w", err)
		}
	}
}

func (f *FileStore) reloadLocked() {
	content, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			f.data = make(map[string]json.RawMessage)
		}
		return
	}

	data := make(map[string]json.RawMessage)
	if err := json.Unmarshal(content, &data); err != nil {
		// A corrupt document is replaced on the next write.
		f.data = make(map[string]json.RawMessage)
		return
	}
	f.data = data
}

func (f *FileStore) flushLocked() error {
	content, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
