package sso

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BerryBytes/rolectl/models"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var ErrNoToken = errors.New("no valid SSO token found")

// TokenCache reads and writes access tokens in the directory layout shared
// with `aws sso login`.
type TokenCache struct {
	Fs  afero.Fs
	Dir string
	now func() time.Time
}

func NewTokenCache(fs afero.Fs, dir string) *TokenCache {
	return &TokenCache{Fs: fs, Dir: dir, now: time.Now}
}

func DefaultTokenCacheDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".aws", "sso", "cache"), nil
}

func sameStartURL(a, b string) bool {
	return strings.TrimSuffix(a, "#") == strings.TrimSuffix(b, "#")
}

// Load returns the most recently written unexpired token for startURL.
func (c *TokenCache) Load(startURL string) (*models.SSOToken, error) {
	files, err := afero.ReadDir(c.Fs, c.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("failed to read SSO cache directory: %w", err)
	}

	var selected *models.SSOToken
	var latestModTime time.Time

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		data, err := afero.ReadFile(c.Fs, filepath.Join(c.Dir, file.Name()))
		if err != nil {
			continue
		}

		var token models.SSOToken
		if err := json.Unmarshal(data, &token); err != nil || token.AccessToken == "" {
			continue
		}
		if !sameStartURL(token.StartURL, startURL) || c.expired(&token) {
			continue
		}

		if selected == nil || file.ModTime().After(latestModTime) {
			latestModTime = file.ModTime()
			selected = &token
		}
	}

	if selected == nil {
		return nil, ErrNoToken
	}
	return selected, nil
}

func (c *TokenCache) expired(token *models.SSOToken) bool {
	expiresAt, err := models.RawTimestamp(token.ExpiresAt).Time()
	if err != nil {
		log.Debugf("Ignoring SSO token with unreadable expiry %q", token.ExpiresAt)
		return true
	}
	return !expiresAt.After(c.now().UTC())
}

// Save writes token to <sha1(startURL)>.json.
func (c *TokenCache) Save(token *models.SSOToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode SSO token: %w", err)
	}

	if err := c.Fs.MkdirAll(c.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create SSO cache directory: %w", err)
	}

	path := filepath.Join(c.Dir, cacheFileName(token.StartURL))
	if err := afero.WriteFile(c.Fs, path, data, 0600); err != nil {
		return fmt.Errorf("failed to write SSO token: %w", err)
	}
	log.Debugf("Saved SSO token to %s", path)
	return nil
}

func cacheFileName(startURL string) string {
	sum := sha1.Sum([]byte(startURL))
	return hex.EncodeToString(sum[:]) + ".json"
}
