// Package mfa obtains the MFA authenticated base session, reusing the cached
// one while it is still valid.
package mfa

import (
	"context"
	"fmt"
	"time"

	"github.com/BerryBytes/rolectl/internal/arn"
	"github.com/BerryBytes/rolectl/internal/identity"
	"github.com/BerryBytes/rolectl/internal/sessioncache"
	"github.com/BerryBytes/rolectl/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	log "github.com/sirupsen/logrus"
)

const (
	SessionKey      = "temporary_session"
	SessionDuration = 12 * time.Hour
)

type CachedSessionFactory struct {
	stsClient    identity.STSAPI
	sessionCache *sessioncache.SessionCache
	prompter     TokenPrompter
	mfaSerial    string
}

type Option func(*CachedSessionFactory)

// WithMFASerial pins the MFA device instead of deriving it from the caller identity.
func WithMFASerial(serial string) Option {
	return func(f *CachedSessionFactory) {
		f.mfaSerial = serial
	}
}

func NewCachedSessionFactory(stsClient identity.STSAPI, sessionCache *sessioncache.SessionCache, prompter TokenPrompter, opts ...Option) *CachedSessionFactory {
	f := &CachedSessionFactory{
		stsClient:    stsClient,
		sessionCache: sessionCache,
		prompter:     prompter,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetSessionToken returns the cached MFA session, or exchanges the long-lived
// credentials plus an MFA code for a new one. When mfaCode is empty and a new
// session is needed, the prompter is asked for it.
func (f *CachedSessionFactory) GetSessionToken(ctx context.Context, mfaCode string) (*models.CachedSession, error) {
	if session, ok := f.sessionCache.GetSessionToken(SessionKey); ok {
		return session, nil
	}
	return f.createSession(ctx, mfaCode)
}

func (f *CachedSessionFactory) createSession(ctx context.Context, mfaCode string) (*models.CachedSession, error) {
	if mfaCode == "" {
		if f.prompter == nil {
			return nil, fmt.Errorf("no MFA code supplied and no prompter configured")
		}
		log.Infof("No session for:%s, prompt for MFA", SessionKey)
		code, err := f.prompter.PromptForMFACode()
		if err != nil {
			return nil, err
		}
		mfaCode = code
	}

	serial, err := f.serialNumber(ctx)
	if err != nil {
		return nil, err
	}

	out, err := f.stsClient.GetSessionToken(ctx, &sts.GetSessionTokenInput{
		DurationSeconds: aws.Int32(int32(SessionDuration.Seconds())),
		SerialNumber:    aws.String(serial),
		TokenCode:       aws.String(mfaCode),
	})
	if err != nil {
		return nil, err
	}

	session, err := identity.ToCachedSession(out)
	if err != nil {
		return nil, err
	}
	if err := f.sessionCache.CacheSession(SessionKey, session); err != nil {
		return nil, fmt.Errorf("failed to cache MFA session: %w", err)
	}

	log.Debugf("Created MFA session with %s, expires %s", serial, session.Credentials.Expiration)
	return session, nil
}

func (f *CachedSessionFactory) serialNumber(ctx context.Context) (string, error) {
	if f.mfaSerial != "" {
		return f.mfaSerial, nil
	}
	account, user, err := identity.AccountAndUser(ctx, f.stsClient)
	if err != nil {
		return "", err
	}
	return arn.MFASerial(account, user), nil
}
