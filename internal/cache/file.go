package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BerryBytes/rolectl/models"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// FileStore keeps one JSON document per key in a directory, the same layout
// botocore's JSONFileCache uses.
type FileStore struct {
	Fs  afero.Fs
	Dir string
}

func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{Fs: fs, Dir: dir}
}

// DefaultFileCacheDir is shared with boto3 so sessions cached by either tool are reused.
func DefaultFileCacheDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".aws", "boto", "cache"), nil
}

func (s *FileStore) path(key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, key+".json"), nil
}

func (s *FileStore) Get(key string) (*models.CachedSession, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("get %q: %w", key, ErrCacheMiss)
		}
		return nil, fmt.Errorf("failed to read cache file %s: %w", path, err)
	}

	var session models.CachedSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse cache file %s: %w", path, err)
	}
	return &session, nil
}

func (s *FileStore) Set(key string, session *models.CachedSession) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session for %q: %w", key, err)
	}
	if err := s.Fs.MkdirAll(s.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create cache directory %s: %w", s.Dir, err)
	}
	if err := afero.WriteFile(s.Fs, path, data, 0600); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", path, err)
	}

	log.Debugf("cache put `%s`: %s", key, path)
	return nil
}

func (s *FileStore) Contains(key string) bool {
	path, err := s.path(key)
	if err != nil {
		return false
	}
	exists, err := afero.Exists(s.Fs, path)
	return err == nil && exists
}
