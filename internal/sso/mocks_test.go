package sso

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sso"
	"github.com/aws/aws-sdk-go-v2/service/ssooidc"
	"github.com/stretchr/testify/mock"
)

type MockPortalAPI struct {
	mock.Mock
}

func (m *MockPortalAPI) ListAccounts(ctx context.Context, params *sso.ListAccountsInput, optFns ...func(*sso.Options)) (*sso.ListAccountsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sso.ListAccountsOutput)
	return out, args.Error(1)
}

func (m *MockPortalAPI) ListAccountRoles(ctx context.Context, params *sso.ListAccountRolesInput, optFns ...func(*sso.Options)) (*sso.ListAccountRolesOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sso.ListAccountRolesOutput)
	return out, args.Error(1)
}

func (m *MockPortalAPI) GetRoleCredentials(ctx context.Context, params *sso.GetRoleCredentialsInput, optFns ...func(*sso.Options)) (*sso.GetRoleCredentialsOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*sso.GetRoleCredentialsOutput)
	return out, args.Error(1)
}

type MockOIDCAPI struct {
	mock.Mock
}

func (m *MockOIDCAPI) RegisterClient(ctx context.Context, params *ssooidc.RegisterClientInput, optFns ...func(*ssooidc.Options)) (*ssooidc.RegisterClientOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ssooidc.RegisterClientOutput)
	return out, args.Error(1)
}

func (m *MockOIDCAPI) StartDeviceAuthorization(ctx context.Context, params *ssooidc.StartDeviceAuthorizationInput, optFns ...func(*ssooidc.Options)) (*ssooidc.StartDeviceAuthorizationOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ssooidc.StartDeviceAuthorizationOutput)
	return out, args.Error(1)
}

func (m *MockOIDCAPI) CreateToken(ctx context.Context, params *ssooidc.CreateTokenInput, optFns ...func(*ssooidc.Options)) (*ssooidc.CreateTokenOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*ssooidc.CreateTokenOutput)
	return out, args.Error(1)
}

type fakeAPIs struct {
	portal *MockPortalAPI
	oidc   *MockOIDCAPI
}

func (f fakeAPIs) NewPortalClient(cfg aws.Config) PortalAPI {
	return f.portal
}

func (f fakeAPIs) NewOIDCClient(cfg aws.Config) OIDCAPI {
	return f.oidc
}

type fakeLoader struct {
	mu      sync.Mutex
	regions []string
}

func (l *fakeLoader) LoadDefaultConfig(ctx context.Context, opts ...func(*config.LoadOptions) error) (aws.Config, error) {
	var o config.LoadOptions
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return aws.Config{}, err
		}
	}
	l.mu.Lock()
	l.regions = append(l.regions, o.Region)
	l.mu.Unlock()
	return aws.Config{Region: o.Region, Credentials: o.Credentials}, nil
}

// fixedClock returns now, and an after func that fires at once while
// recording each requested wait.
func fixedClock(now time.Time) (func() time.Time, func(time.Duration) <-chan time.Time, *[]time.Duration) {
	var waits []time.Duration
	after := func(d time.Duration) <-chan time.Time {
		waits = append(waits, d)
		ch := make(chan time.Time, 1)
		ch <- now.Add(d)
		return ch
	}
	return func() time.Time { return now }, after, &waits
}
