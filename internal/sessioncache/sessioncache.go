// Package sessioncache adds expiry awareness on top of a cache.Store.
package sessioncache

import (
	"time"

	"github.com/BerryBytes/rolectl/internal/cache"
	"github.com/BerryBytes/rolectl/models"
	log "github.com/sirupsen/logrus"
)

type SessionCache struct {
	store cache.Store
	now   func() time.Time
}

type Option func(*SessionCache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *SessionCache) {
		c.now = now
	}
}

func New(store cache.Store, opts ...Option) *SessionCache {
	c := &SessionCache{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSessionToken returns the session stored under key if it has not expired.
// Missing, unreadable and expired entries are all reported as a miss; expired
// entries are left in place until the next CacheSession overwrites them.
func (c *SessionCache) GetSessionToken(key string) (*models.CachedSession, bool) {
	session, err := c.store.Get(key)
	if err != nil {
		log.Infof("No session found in cache for %s: %v", key, err)
		return nil, false
	}

	if c.isExpired(session) {
		log.Info("No session cache (or existing has expired)")
		return nil, false
	}

	log.Infof("Found unexpired session data in cache: %s", key)
	return session, true
}

func (c *SessionCache) isExpired(session *models.CachedSession) bool {
	expiration, err := session.Credentials.Expiration.Time()
	if err != nil {
		log.Warnf("Cached session has an unusable expiration: %v", err)
		return true
	}

	now := c.now().UTC()
	expired := !expiration.After(now)
	log.WithFields(log.Fields{
		"expiration": expiration,
		"now":        now,
		"expired":    expired,
	}).Info("Checked cached session expiry")
	return expired
}

// CacheSession stores data under key unconditionally.
func (c *SessionCache) CacheSession(key string, data *models.CachedSession) error {
	return c.store.Set(key, data)
}
