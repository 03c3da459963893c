package provider

import (
	"context"
	"time"

	"github.com/BerryBytes/rolectl/internal/identity"
	"github.com/BerryBytes/rolectl/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	log "github.com/sirupsen/logrus"
)

const AssumeRoleSessionDuration = time.Hour

// MFASessionProvider assumes roles with the credentials of a cached MFA session.
type MFASessionProvider struct {
	session       *models.CachedSession
	loader        identity.ConfigLoader
	clients       identity.ClientFactory
	defaultRegion string
}

type MFAOption func(*MFASessionProvider)

func WithMFAConfigLoader(loader identity.ConfigLoader) MFAOption {
	return func(p *MFASessionProvider) {
		p.loader = loader
	}
}

func WithMFAClientFactory(clients identity.ClientFactory) MFAOption {
	return func(p *MFASessionProvider) {
		p.clients = clients
	}
}

// WithMFADefaultRegion sets the region used by GetUser.
func WithMFADefaultRegion(region string) MFAOption {
	return func(p *MFASessionProvider) {
		p.defaultRegion = region
	}
}

func NewMFASessionProvider(session *models.CachedSession, opts ...MFAOption) *MFASessionProvider {
	p := &MFASessionProvider{
		session:       session,
		loader:        identity.DefaultConfigLoader{},
		clients:       identity.DefaultClientFactory{},
		defaultRegion: DefaultRegion,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *MFASessionProvider) TemporaryCredentials() (models.Credentials, error) {
	return p.session.Credentials, nil
}

func (p *MFASessionProvider) temporaryClient(ctx context.Context, region string) (identity.STSAPI, error) {
	creds := p.session.Credentials
	cfg, err := identity.StaticConfig(ctx, p.loader, region, creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
	if err != nil {
		return nil, err
	}
	return p.clients.NewSTSClient(cfg), nil
}

func (p *MFASessionProvider) AssumeRoleCredentials(ctx context.Context, roleArn, region, sessionName string) (*models.RoleCredentials, error) {
	client, err := p.temporaryClient(ctx, region)
	if err != nil {
		return nil, err
	}

	out, err := client.AssumeRole(ctx, &sts.AssumeRoleInput{
		RoleArn:         aws.String(roleArn),
		RoleSessionName: aws.String(sessionName),
		DurationSeconds: aws.Int32(int32(AssumeRoleSessionDuration.Seconds())),
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("Assumed %s as %s", roleArn, sessionName)
	return identity.ToRoleCredentials(out)
}

func (p *MFASessionProvider) AssumeRoleSession(ctx context.Context, roleArn, region, sessionName string) (aws.Config, error) {
	creds, err := p.AssumeRoleCredentials(ctx, roleArn, region, sessionName)
	if err != nil {
		return aws.Config{}, err
	}
	return identity.StaticConfig(ctx, p.loader, region, creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
}

func (p *MFASessionProvider) GetUser(ctx context.Context) (string, error) {
	client, err := p.temporaryClient(ctx, p.defaultRegion)
	if err != nil {
		return "", err
	}
	_, user, err := identity.AccountAndUser(ctx, client)
	return user, err
}
