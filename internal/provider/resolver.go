package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerryBytes/rolectl/internal/cache"
	"github.com/BerryBytes/rolectl/internal/identity"
	"github.com/BerryBytes/rolectl/internal/mfa"
	"github.com/BerryBytes/rolectl/models"
)

var ErrSSONotConfigured = errors.New("SSO start URL and region are not configured")

// DefaultResolver builds providers from the loaded settings.
type DefaultResolver struct {
	Profile       string
	DefaultRegion string
	MFASerial     string
	Store         cache.Store
	Prompter      mfa.TokenPrompter

	SSOStartURL string
	SSORegion   string
	Exchange    SSOExchange

	Loader  identity.ConfigLoader
	Clients identity.ClientFactory
}

func (r *DefaultResolver) Resolve(ctx context.Context, useSSO bool, mfaCode string) (SessionProvider, error) {
	if useSSO {
		if err := r.checkSSO(); err != nil {
			return nil, err
		}
		var opts []SSOOption
		if r.DefaultRegion != "" {
			opts = append(opts, WithSSODefaultRegion(r.DefaultRegion))
		}
		if r.Clients != nil {
			opts = append(opts, WithSSOClientFactory(r.Clients))
		}
		return NewSSOSessionProvider(r.SSOStartURL, r.SSORegion, r.Exchange, opts...), nil
	}

	return NewMFAProviderFromProfile(ctx, ProfileOptions{
		Profile:       r.Profile,
		DefaultRegion: r.DefaultRegion,
		MFASerial:     r.MFASerial,
		MFACode:       mfaCode,
		Store:         r.Store,
		Prompter:      r.Prompter,
		Loader:        r.Loader,
		Clients:       r.Clients,
	})
}

func (r *DefaultResolver) ListSSORoles(ctx context.Context) ([]models.SSORole, error) {
	if err := r.checkSSO(); err != nil {
		return nil, err
	}
	return r.Exchange.ListAvailableRoles(ctx, r.SSORegion, r.SSOStartURL)
}

func (r *DefaultResolver) checkSSO() error {
	if r.SSOStartURL == "" || r.SSORegion == "" {
		return ErrSSONotConfigured
	}
	if r.Exchange == nil {
		return fmt.Errorf("no SSO exchange configured")
	}
	return nil
}
