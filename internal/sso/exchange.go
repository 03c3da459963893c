// Package sso signs in to IAM Identity Center and exchanges its access token
// for role credentials.
package sso

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/BerryBytes/rolectl/internal/identity"
	"github.com/BerryBytes/rolectl/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	"github.com/pkg/browser"
	log "github.com/sirupsen/logrus"
)

// Exchange implements provider.SSOExchange on the SSO portal and OIDC APIs.
type Exchange struct {
	tokens    *TokenCache
	apis      APIFactory
	loader    identity.ConfigLoader
	out       io.Writer
	noBrowser bool
	openURL   func(string) error
	now       func() time.Time
	after     func(time.Duration) <-chan time.Time
}

type Option func(*Exchange)

func WithAPIFactory(apis APIFactory) Option {
	return func(e *Exchange) {
		e.apis = apis
	}
}

func WithConfigLoader(loader identity.ConfigLoader) Option {
	return func(e *Exchange) {
		e.loader = loader
	}
}

// WithOutput sets where login instructions are printed.
func WithOutput(w io.Writer) Option {
	return func(e *Exchange) {
		e.out = w
	}
}

// WithNoBrowser prints the verification URL without opening a browser.
func WithNoBrowser(noBrowser bool) Option {
	return func(e *Exchange) {
		e.noBrowser = noBrowser
	}
}

func NewExchange(tokens *TokenCache, opts ...Option) *Exchange {
	e := &Exchange{
		tokens:  tokens,
		apis:    DefaultAPIFactory{},
		loader:  identity.DefaultConfigLoader{},
		out:     os.Stderr,
		openURL: browser.OpenURL,
		now:     time.Now,
		after:   time.After,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exchange) regionConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := e.loader.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for %s: %w", region, err)
	}
	return cfg, nil
}

// accessToken returns a cached token for startURL, signing in when none is
// usable and login is allowed.
func (e *Exchange) accessToken(ctx context.Context, ssoRegion, startURL string, login bool) (string, error) {
	token, err := e.tokens.Load(startURL)
	if err == nil {
		return token.AccessToken, nil
	}
	if !errors.Is(err, ErrNoToken) {
		return "", err
	}
	if !login {
		return "", fmt.Errorf("%w for %s", ErrNoToken, startURL)
	}

	log.Infof("No SSO token for %s, starting login", startURL)
	cfg, err := e.regionConfig(ctx, ssoRegion)
	if err != nil {
		return "", err
	}

	token, err = e.login(ctx, e.apis.NewOIDCClient(cfg), ssoRegion, startURL)
	if err != nil {
		return "", err
	}
	if err := e.tokens.Save(token); err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

// ListAvailableRoles enumerates every (account, role) pair, in the order the
// portal returns them.
func (e *Exchange) ListAvailableRoles(ctx context.Context, ssoRegion, startURL string) ([]models.SSORole, error) {
	token, err := e.accessToken(ctx, ssoRegion, startURL, true)
	if err != nil {
		return nil, err
	}

	cfg, err := e.regionConfig(ctx, ssoRegion)
	if err != nil {
		return nil, err
	}
	client := e.apis.NewPortalClient(cfg)

	var roles []models.SSORole
	accounts := sso.NewListAccountsPaginator(client, &sso.ListAccountsInput{AccessToken: aws.String(token)})
	for accounts.HasMorePages() {
		page, err := accounts.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		for _, account := range page.AccountList {
			accountRoles := sso.NewListAccountRolesPaginator(client, &sso.ListAccountRolesInput{
				AccessToken: aws.String(token),
				AccountId:   account.AccountId,
			})
			for accountRoles.HasMorePages() {
				rolePage, err := accountRoles.NextPage(ctx)
				if err != nil {
					return nil, err
				}
				for _, role := range rolePage.RoleList {
					roles = append(roles, models.SSORole{
						AccountID:   aws.ToString(account.AccountId),
						AccountName: aws.ToString(account.AccountName),
						RoleName:    aws.ToString(role.RoleName),
					})
				}
			}
		}
	}

	log.Debugf("Found %d SSO roles", len(roles))
	return roles, nil
}

// GetSession exchanges the SSO token for the role's credentials and returns a
// config bound to region that signs with them.
func (e *Exchange) GetSession(ctx context.Context, startURL, ssoRegion, accountID, roleName, region string, login bool) (aws.Config, error) {
	token, err := e.accessToken(ctx, ssoRegion, startURL, login)
	if err != nil {
		return aws.Config{}, err
	}

	cfg, err := e.regionConfig(ctx, ssoRegion)
	if err != nil {
		return aws.Config{}, err
	}

	out, err := e.apis.NewPortalClient(cfg).GetRoleCredentials(ctx, &sso.GetRoleCredentialsInput{
		AccessToken: aws.String(token),
		AccountId:   aws.String(accountID),
		RoleName:    aws.String(roleName),
	})
	if err != nil {
		return aws.Config{}, err
	}
	if out.RoleCredentials == nil {
		return aws.Config{}, fmt.Errorf("GetRoleCredentials returned no credentials")
	}

	creds := out.RoleCredentials
	provider := credentials.StaticCredentialsProvider{Value: aws.Credentials{
		AccessKeyID:     aws.ToString(creds.AccessKeyId),
		SecretAccessKey: aws.ToString(creds.SecretAccessKey),
		SessionToken:    aws.ToString(creds.SessionToken),
		Source:          "SSO",
		CanExpire:       creds.Expiration != 0,
		Expires:         time.UnixMilli(creds.Expiration).UTC(),
	}}

	return e.loader.LoadDefaultConfig(ctx, config.WithRegion(region), config.WithCredentialsProvider(provider))
}
