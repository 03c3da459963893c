package cache

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/99designs/keyring"
	"github.com/BerryBytes/rolectl/models"
	log "github.com/sirupsen/logrus"
)

const KeyringServiceName = "rolectl"

// KeyringStore keeps each session as its own item in the OS keychain.
type KeyringStore struct {
	Keyring keyring.Keyring
}

func OpenKeyringStore() (*KeyringStore, error) {
	kr, err := keyring.Open(keyring.Config{
		ServiceName:              KeyringServiceName,
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return &KeyringStore{Keyring: kr}, nil
}

func (s *KeyringStore) Get(key string) (*models.CachedSession, error) {
	item, err := s.Keyring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, fmt.Errorf("get %q: %w", key, ErrCacheMiss)
		}
		return nil, fmt.Errorf("failed keyring get %q: %w", key, err)
	}

	var session models.CachedSession
	if err := json.Unmarshal(item.Data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse keyring item %q: %w", key, err)
	}
	return &session, nil
}

func (s *KeyringStore) Set(key string, session *models.CachedSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session for %q: %w", key, err)
	}

	err = s.Keyring.Set(keyring.Item{
		Key:   key,
		Label: "rolectl session cache: " + key,
		Data:  data,
	})
	if err != nil {
		return fmt.Errorf("failed keyring set %q: %w", key, err)
	}

	log.Debugf("cache put `%s`: keyring", key)
	return nil
}

func (s *KeyringStore) Contains(key string) bool {
	_, err := s.Keyring.Get(key)
	return err == nil
}
