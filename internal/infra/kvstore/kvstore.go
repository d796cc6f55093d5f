// Package kvstore provides a small key-value persistence abstraction with a
// file-backed default implementation.
package kvstore

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/cockroachdb/errors"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// Store is the persistence interface used by the engine.
// Implementations may be file-based, embedded KV stores, or remote services.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
}

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// FileStore persists each key as a JSON file under a base directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("store directory is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create store directory")
	}
	return &FileStore{dir: dir}, nil
}

// Load reads the value stored for key.
func (s *FileStore) Load(key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to read key %s", key)
	}
	return data, nil
}

// Save writes the value for key. The write goes through a temp file and a
// rename so a crash cannot leave a half-written value behind.
func (s *FileStore) Save(key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return errors.Wrapf(err, "failed to write key %s", key)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "failed to commit key %s", key)
	}
	return nil
}

func (s *FileStore) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", errors.Newf("invalid store key: %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
