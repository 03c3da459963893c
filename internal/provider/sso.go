package provider

import (
	"context"

	"github.com/BerryBytes/rolectl/internal/arn"
	"github.com/BerryBytes/rolectl/internal/identity"
	"github.com/BerryBytes/rolectl/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	log "github.com/sirupsen/logrus"
)

// probeSessionName names the throwaway session GetUser assumes.
const probeSessionName = "whoami"

// SSOSessionProvider assumes roles through an IAM Identity Center login. It
// holds no credentials of its own; every call goes through the SSO exchange.
type SSOSessionProvider struct {
	startURL      string
	ssoRegion     string
	exchange      SSOExchange
	clients       identity.ClientFactory
	defaultRegion string
}

type SSOOption func(*SSOSessionProvider)

func WithSSOClientFactory(clients identity.ClientFactory) SSOOption {
	return func(p *SSOSessionProvider) {
		p.clients = clients
	}
}

// WithSSODefaultRegion sets the region used by GetUser.
func WithSSODefaultRegion(region string) SSOOption {
	return func(p *SSOSessionProvider) {
		p.defaultRegion = region
	}
}

func NewSSOSessionProvider(startURL, ssoRegion string, exchange SSOExchange, opts ...SSOOption) *SSOSessionProvider {
	p := &SSOSessionProvider{
		startURL:      startURL,
		ssoRegion:     ssoRegion,
		exchange:      exchange,
		clients:       identity.DefaultClientFactory{},
		defaultRegion: DefaultRegion,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// TemporaryCredentials always fails: an SSO session carries a bearer token, not keys.
func (p *SSOSessionProvider) TemporaryCredentials() (models.Credentials, error) {
	return models.Credentials{}, ErrUnsupportedOperation
}

// AssumeRoleSession logs in for the role's account and role name. sessionName
// is ignored; SSO names the session after the signed in user.
func (p *SSOSessionProvider) AssumeRoleSession(ctx context.Context, roleArn, region, sessionName string) (aws.Config, error) {
	role, err := arn.Parse(roleArn)
	if err != nil {
		return aws.Config{}, err
	}
	return p.exchange.GetSession(ctx, p.startURL, p.ssoRegion, role.Account, role.Resource, region, true)
}

func (p *SSOSessionProvider) AssumeRoleCredentials(ctx context.Context, roleArn, region, sessionName string) (*models.RoleCredentials, error) {
	cfg, err := p.AssumeRoleSession(ctx, roleArn, region, sessionName)
	if err != nil {
		return nil, err
	}

	creds, err := cfg.Credentials.Retrieve(ctx)
	if err != nil {
		return nil, err
	}

	roleCreds := &models.RoleCredentials{
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
	}
	if creds.CanExpire {
		roleCreds.Expiration = creds.Expires
	}
	return roleCreds, nil
}

// GetUser assumes whichever role the directory lists first and reads the user
// name out of the caller identity. The listing order is not guaranteed.
func (p *SSOSessionProvider) GetUser(ctx context.Context) (string, error) {
	roleArn, err := p.anyRole(ctx)
	if err != nil {
		return "", err
	}

	cfg, err := p.AssumeRoleSession(ctx, roleArn, p.defaultRegion, probeSessionName)
	if err != nil {
		return "", err
	}

	out, err := p.clients.NewSTSClient(cfg).GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", err
	}
	return identity.UserFromUserID(aws.ToString(out.UserId))
}

func (p *SSOSessionProvider) anyRole(ctx context.Context) (string, error) {
	roles, err := p.exchange.ListAvailableRoles(ctx, p.ssoRegion, p.startURL)
	if err != nil {
		return "", err
	}
	if len(roles) == 0 {
		return "", ErrNoAccessibleRoles
	}

	role := roles[0]
	log.Debugf("Using %s in %s to resolve the SSO user", role.RoleName, role.AccountID)
	return arn.RoleARN(role.AccountID, role.RoleName), nil
}
