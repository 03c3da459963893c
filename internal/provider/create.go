package provider

import (
	"context"
	"fmt"

	"github.com/BerryBytes/rolectl/internal/cache"
	"github.com/BerryBytes/rolectl/internal/identity"
	"github.com/BerryBytes/rolectl/internal/mfa"
	"github.com/BerryBytes/rolectl/internal/sessioncache"
	"github.com/aws/aws-sdk-go-v2/config"
)

// ProfileOptions describes how to build an MFA provider from a shared config profile.
type ProfileOptions struct {
	Profile       string
	DefaultRegion string
	MFASerial     string
	MFACode       string
	Store         cache.Store
	Prompter      mfa.TokenPrompter
	Loader        identity.ConfigLoader
	Clients       identity.ClientFactory
}

// NewMFAProviderFromProfile loads the long-lived credentials of the named
// profile, obtains the MFA session through the session cache and returns a
// provider built on it.
func NewMFAProviderFromProfile(ctx context.Context, opts ProfileOptions) (*MFASessionProvider, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("no cache store configured")
	}
	if opts.Loader == nil {
		opts.Loader = identity.DefaultConfigLoader{}
	}
	if opts.Clients == nil {
		opts.Clients = identity.DefaultClientFactory{}
	}
	if opts.DefaultRegion == "" {
		opts.DefaultRegion = DefaultRegion
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	loadOpts = append(loadOpts, config.WithRegion(opts.DefaultRegion))

	cfg, err := opts.Loader.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS profile %q: %w", opts.Profile, err)
	}

	var factoryOpts []mfa.Option
	if opts.MFASerial != "" {
		factoryOpts = append(factoryOpts, mfa.WithMFASerial(opts.MFASerial))
	}
	factory := mfa.NewCachedSessionFactory(
		opts.Clients.NewSTSClient(cfg),
		sessioncache.New(opts.Store),
		opts.Prompter,
		factoryOpts...,
	)

	session, err := factory.GetSessionToken(ctx, opts.MFACode)
	if err != nil {
		return nil, err
	}

	return NewMFASessionProvider(session,
		WithMFAConfigLoader(opts.Loader),
		WithMFAClientFactory(opts.Clients),
		WithMFADefaultRegion(opts.DefaultRegion),
	), nil
}
