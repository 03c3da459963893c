package provider

import (
	"context"
	"errors"

	"github.com/BerryBytes/rolectl/models"
	"github.com/aws/aws-sdk-go-v2/aws"
)

var (
	// ErrUnsupportedOperation is returned when a provider cannot serve a call,
	// e.g. static credentials from a token based SSO session.
	ErrUnsupportedOperation = errors.New("operation not supported by this session provider")
	ErrNoAccessibleRoles    = errors.New("no accessible roles found")
)

const DefaultRegion = "eu-west-1"

// SessionProvider derives role scoped credentials from a base session.
type SessionProvider interface {
	// TemporaryCredentials returns the credentials held by the base session.
	TemporaryCredentials() (models.Credentials, error)
	AssumeRoleCredentials(ctx context.Context, roleArn, region, sessionName string) (*models.RoleCredentials, error)
	// AssumeRoleSession returns a config bound to region that signs as the assumed role.
	AssumeRoleSession(ctx context.Context, roleArn, region, sessionName string) (aws.Config, error)
	GetUser(ctx context.Context) (string, error)
}

// SSOExchange is the login and role credential surface of IAM Identity Center.
type SSOExchange interface {
	ListAvailableRoles(ctx context.Context, ssoRegion, startURL string) ([]models.SSORole, error)
	GetSession(ctx context.Context, startURL, ssoRegion, accountID, roleName, region string, login bool) (aws.Config, error)
}

// Resolver picks the session provider a command runs with.
type Resolver interface {
	Resolve(ctx context.Context, useSSO bool, mfaCode string) (SessionProvider, error)
	ListSSORoles(ctx context.Context) ([]models.SSORole, error)
}
