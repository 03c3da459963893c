package sso

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	"github.com/aws/aws-sdk-go-v2/service/ssooidc"
)

// PortalAPI is the part of the SSO portal API used to enumerate roles and
// fetch role credentials with an access token.
type PortalAPI interface {
	ListAccounts(ctx context.Context, params *sso.ListAccountsInput, optFns ...func(*sso.Options)) (*sso.ListAccountsOutput, error)
	ListAccountRoles(ctx context.Context, params *sso.ListAccountRolesInput, optFns ...func(*sso.Options)) (*sso.ListAccountRolesOutput, error)
	GetRoleCredentials(ctx context.Context, params *sso.GetRoleCredentialsInput, optFns ...func(*sso.Options)) (*sso.GetRoleCredentialsOutput, error)
}

// OIDCAPI drives the device authorization login.
type OIDCAPI interface {
	RegisterClient(ctx context.Context, params *ssooidc.RegisterClientInput, optFns ...func(*ssooidc.Options)) (*ssooidc.RegisterClientOutput, error)
	StartDeviceAuthorization(ctx context.Context, params *ssooidc.StartDeviceAuthorizationInput, optFns ...func(*ssooidc.Options)) (*ssooidc.StartDeviceAuthorizationOutput, error)
	CreateToken(ctx context.Context, params *ssooidc.CreateTokenInput, optFns ...func(*ssooidc.Options)) (*ssooidc.CreateTokenOutput, error)
}

type APIFactory interface {
	NewPortalClient(cfg aws.Config) PortalAPI
	NewOIDCClient(cfg aws.Config) OIDCAPI
}

type DefaultAPIFactory struct{}

func (DefaultAPIFactory) NewPortalClient(cfg aws.Config) PortalAPI {
	return sso.NewFromConfig(cfg)
}

func (DefaultAPIFactory) NewOIDCClient(cfg aws.Config) OIDCAPI {
	return ssooidc.NewFromConfig(cfg)
}
