// Package cache holds the key-value stores the session cache persists into.
package cache

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BerryBytes/rolectl/models"
	"github.com/spf13/afero"
)

// ErrCacheMiss is returned by a Store when the key has never been written.
var ErrCacheMiss = errors.New("cache miss")

type Store interface {
	Get(key string) (*models.CachedSession, error)
	Set(key string, session *models.CachedSession) error
	Contains(key string) bool
}

const (
	BackendFile    = "file"
	BackendKeyring = "keyring"
	BackendMemory  = "memory"
)

// validateKey rejects keys that would escape a file store's directory.
func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("cache key cannot be empty")
	}
	if strings.ContainsAny(key, `/\`) || key != filepath.Base(key) || key == "." || key == ".." {
		return fmt.Errorf("invalid cache key %q", key)
	}
	return nil
}

// New builds the store named by backend. dir is only used by the file backend.
func New(backend string, fs afero.Fs, dir string) (Store, error) {
	switch backend {
	case "", BackendFile:
		if dir == "" {
			defaultDir, err := DefaultFileCacheDir()
			if err != nil {
				return nil, err
			}
			dir = defaultDir
		}
		return NewFileStore(fs, dir), nil
	case BackendKeyring:
		return OpenKeyringStore()
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}
}
